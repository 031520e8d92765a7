package auth

import (
	"strings"

	"github.com/gin-gonic/gin"

	apierrors "github.com/Apurer/marketplace-api/internal/shared/errors"
)

// ClaimsKey is the gin context key holding the verified *Claims.
const ClaimsKey = "auth.claims"

// RequireAdmin rejects requests without a valid bearer token carrying the ADMIN role.
// A nil verifier disables the check.
func RequireAdmin(v *Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if v == nil {
			c.Next()
			return
		}
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			apierrors.Respond(c, apierrors.ErrUnauthorized.WithDetail("missing bearer token"))
			c.Abort()
			return
		}
		claims, err := v.Parse(strings.TrimSpace(strings.TrimPrefix(header, "Bearer ")))
		if err != nil {
			apierrors.Respond(c, apierrors.ErrUnauthorized.WithDetail("invalid bearer token"))
			c.Abort()
			return
		}
		if !claims.IsAdmin() {
			apierrors.Respond(c, apierrors.ErrForbidden.WithDetail("admin access only"))
			c.Abort()
			return
		}
		c.Set(ClaimsKey, claims)
		c.Next()
	}
}
