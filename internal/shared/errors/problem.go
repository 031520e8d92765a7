// Package errors renders API failures as RFC 7807 Problem Details.
package errors

import (
	"fmt"
	"net/http"
)

// ProblemDetail is an RFC 7807 problem document. It doubles as an error value.
type ProblemDetail struct {
	Type       string         `json:"type"`
	Title      string         `json:"title"`
	Status     int            `json:"status"`
	Detail     string         `json:"detail,omitempty"`
	Instance   string         `json:"instance,omitempty"`
	Extensions map[string]any `json:"extensions,omitempty"`
}

func (p ProblemDetail) Error() string {
	if p.Detail == "" {
		return p.Title
	}
	return fmt.Sprintf("%s: %s", p.Title, p.Detail)
}

// WithDetail returns a copy carrying the occurrence-specific message.
func (p ProblemDetail) WithDetail(detail string) ProblemDetail {
	p.Detail = detail
	return p
}

// WithExtension returns a copy with one more extension member. The receiver's map is not shared.
func (p ProblemDetail) WithExtension(key string, value any) ProblemDetail {
	ext := make(map[string]any, len(p.Extensions)+1)
	for k, v := range p.Extensions {
		ext[k] = v
	}
	ext[key] = value
	p.Extensions = ext
	return p
}

// Problem types returned by the marketplace API.
const (
	TypeValidation   = "/problems/validation-error"
	TypeNotFound     = "/problems/not-found"
	TypeInternal     = "/problems/internal-error"
	TypeUnauthorized = "/problems/unauthorized"
	TypeForbidden    = "/problems/forbidden"
	TypeBadRequest   = "/problems/bad-request"
	TypeInvalidToken = "/problems/invalid-token"
	TypePayloadSize  = "/problems/payload-too-large"
)

func newProblem(problemType string, status int) ProblemDetail {
	return ProblemDetail{Type: problemType, Title: http.StatusText(status), Status: status}
}

// Problem templates. Handlers copy them with WithDetail.
var (
	ErrValidation      = ProblemDetail{Type: TypeValidation, Title: "Validation Error", Status: http.StatusBadRequest}
	ErrInvalidToken    = ProblemDetail{Type: TypeInvalidToken, Title: "Invalid Token", Status: http.StatusBadRequest}
	ErrBadRequest      = newProblem(TypeBadRequest, http.StatusBadRequest)
	ErrNotFound        = newProblem(TypeNotFound, http.StatusNotFound)
	ErrUnauthorized    = newProblem(TypeUnauthorized, http.StatusUnauthorized)
	ErrForbidden       = newProblem(TypeForbidden, http.StatusForbidden)
	ErrPayloadTooLarge = newProblem(TypePayloadSize, http.StatusRequestEntityTooLarge)
	ErrInternal        = newProblem(TypeInternal, http.StatusInternalServerError)
)
