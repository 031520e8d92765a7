package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errMissing = errors.New("thing missing")

func mapMissing(err error) (ProblemDetail, bool) {
	if errors.Is(err, errMissing) {
		return ErrNotFound.WithDetail(err.Error()), true
	}
	return ProblemDetail{}, false
}

func respond(t *testing.T, r *ChainedResponder, err error) (*httptest.ResponseRecorder, ProblemDetail, *gin.Context) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/things/7", nil)
	r.RespondError(c, err)
	var problem ProblemDetail
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &problem))
	return w, problem, c
}

func TestChainedResponderUsesMapper(t *testing.T) {
	r := NewChainedResponder("", mapMissing)

	w, problem, c := respond(t, r, fmt.Errorf("load: %w", errMissing))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, ContentTypeProblemJSON, w.Header().Get("Content-Type"))
	assert.Equal(t, TypeNotFound, problem.Type)
	assert.Equal(t, "/things/7", problem.Instance)
	assert.Contains(t, problem.Detail, "thing missing")
	assert.Empty(t, c.Errors)
}

func TestChainedResponderHidesUnmappedErrors(t *testing.T) {
	r := NewChainedResponder("", mapMissing)

	w, problem, c := respond(t, r, errors.New("dial tcp 10.0.0.3:5432: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, TypeInternal, problem.Type)
	assert.Empty(t, problem.Detail)
	require.Len(t, c.Errors, 1)
}

func TestChainedResponderPassesProblemsThrough(t *testing.T) {
	r := NewChainedResponder("https://api.example.com")

	w, problem, _ := respond(t, r, ErrInvalidToken.WithDetail("expired"))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "https://api.example.com"+TypeInvalidToken, problem.Type)
	assert.Equal(t, "Invalid Token: expired", ErrInvalidToken.WithDetail("expired").Error())
}
