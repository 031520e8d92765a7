package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func newAdminRouter(v *Verifier) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin", RequireAdmin(v), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func call(r http.Handler, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAdmin(t *testing.T) {
	admin, err := IssueToken(testSecret, "1", RoleAdmin, time.Hour)
	require.NoError(t, err)
	user, err := IssueToken(testSecret, "2", "USER", time.Hour)
	require.NoError(t, err)
	expired, err := IssueToken(testSecret, "1", RoleAdmin, -time.Minute)
	require.NoError(t, err)
	foreign, err := IssueToken("other-secret", "1", RoleAdmin, time.Hour)
	require.NoError(t, err)

	r := newAdminRouter(NewVerifier(testSecret))

	tests := []struct {
		name   string
		token  string
		status int
	}{
		{"admin", admin, http.StatusNoContent},
		{"missing", "", http.StatusUnauthorized},
		{"non admin", user, http.StatusForbidden},
		{"expired", expired, http.StatusUnauthorized},
		{"wrong secret", foreign, http.StatusUnauthorized},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := call(r, tc.token)
			assert.Equal(t, tc.status, w.Code)
			if tc.status >= 400 {
				assert.Equal(t, "application/problem+json", w.Header().Get("Content-Type"))
			}
		})
	}
}

func TestRequireAdminDisabledWithoutVerifier(t *testing.T) {
	w := call(newAdminRouter(nil), "")
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestParseRejectsOtherAlgorithms(t *testing.T) {
	claims := Claims{Role: RoleAdmin, RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))}}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = NewVerifier(testSecret).Parse(signed)
	require.ErrorIs(t, err, ErrInvalidToken)
}
