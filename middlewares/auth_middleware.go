package middlewares

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"resto-live/auth"
	"resto-live/utils"
)

var ErrUnauthorized = errors.New("missing or invalid credential")

// TokenFromRequest extracts the raw shared-secret credential. The
// Authorization header carries it verbatim; websocket clients may pass
// it as a query parameter instead, since browsers cannot set headers
// on an upgrade request.
func TokenFromRequest(c *gin.Context) string {
	if token := c.GetHeader("Authorization"); token != "" {
		return token
	}
	return c.Query("token")
}

// Authenticate resolves the request credential through the gate and
// stores the role on the context. It never rejects by itself; that is
// RequireRole's job.
func Authenticate(gate *auth.Gate) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("role", gate.Resolve(TokenFromRequest(c)))
		c.Next()
	}
}

// RequireRole aborts with 401 before the handler runs unless the
// resolved role is one of the allowed roles.
func RequireRole(allowed ...auth.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists || !auth.Satisfies(role.(auth.Role), allowed...) {
			utils.RespondError(c, http.StatusUnauthorized, ErrUnauthorized)
			c.Abort()
			return
		}
		c.Next()
	}
}
