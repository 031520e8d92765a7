package errors

import (
	"errors"

	"github.com/gin-gonic/gin"
)

// ContentTypeProblemJSON is the media type for Problem Details responses.
const ContentTypeProblemJSON = "application/problem+json"

// Responder writes Problem Details responses.
type Responder struct {
	// BaseURI is prepended to relative problem types.
	BaseURI string
}

// DefaultResponder uses relative problem types.
var DefaultResponder = &Responder{}

// Respond writes the problem with its status. Instance defaults to the request path.
func (r *Responder) Respond(c *gin.Context, problem ProblemDetail) {
	if r.BaseURI != "" && len(problem.Type) > 0 && problem.Type[0] == '/' {
		problem.Type = r.BaseURI + problem.Type
	}
	if problem.Instance == "" && c.Request != nil {
		problem.Instance = c.Request.URL.Path
	}
	c.Header("Content-Type", ContentTypeProblemJSON)
	c.AbortWithStatusJSON(problem.Status, problem)
}

// Respond writes the problem through the default responder.
func Respond(c *gin.Context, problem ProblemDetail) {
	DefaultResponder.Respond(c, problem)
}

// ErrorMapper maps an application error to a ProblemDetail.
type ErrorMapper func(err error) (ProblemDetail, bool)

// ChainedResponder resolves errors through an ordered list of mappers.
type ChainedResponder struct {
	*Responder
	mappers []ErrorMapper
}

// NewChainedResponder creates a responder with the given mappers, tried in order.
func NewChainedResponder(baseURI string, mappers ...ErrorMapper) *ChainedResponder {
	return &ChainedResponder{
		Responder: &Responder{BaseURI: baseURI},
		mappers:   mappers,
	}
}

// Resolve returns the problem for err. Errors no mapper claims become a bare 500
// so internal failure text never reaches the client.
func (r *ChainedResponder) Resolve(err error) (ProblemDetail, bool) {
	var problem ProblemDetail
	if errors.As(err, &problem) {
		return problem, true
	}
	for _, mapper := range r.mappers {
		if problem, ok := mapper(err); ok {
			return problem, true
		}
	}
	return ErrInternal, false
}

// RespondError writes the resolved problem. Unmapped errors are attached to the gin context
// so the tracing middleware records them.
func (r *ChainedResponder) RespondError(c *gin.Context, err error) {
	problem, mapped := r.Resolve(err)
	if !mapped {
		_ = c.Error(err)
	}
	r.Respond(c, problem)
}
