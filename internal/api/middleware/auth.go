// internal/api/middleware/auth.go
package middleware

import (
	"net/http"
	"strings"

	"contingent-booking-api-server/internal/api/response"
	"contingent-booking-api-server/internal/auth"

	"github.com/gin-gonic/gin"
)

// Context keys set by Authenticate.
const (
	UserIDKey   = "user_id"
	UserRoleKey = "user_role"
)

// TokenParser is satisfied by auth.TokenManager.
type TokenParser interface {
	Parse(tokenString string) (*auth.JWTClaims, error)
}

// Authenticate validates the bearer token and puts the user into the context.
func Authenticate(tokens TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Abort(c, http.StatusUnauthorized, response.CodeUnauthorized, "Authorization header is required")
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			response.Abort(c, http.StatusUnauthorized, response.CodeUnauthorized, "Invalid token format")
			return
		}

		claims, err := tokens.Parse(tokenString)
		if err != nil {
			response.Abort(c, http.StatusUnauthorized, response.CodeUnauthorized, "Invalid or expired token")
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(UserRoleKey, claims.Role)

		c.Next()
	}
}

// Authorize allows the request through only for the given roles. It must run
// after Authenticate.
func Authorize(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole := c.GetString(UserRoleKey)
		if userRole == "" {
			response.Abort(c, http.StatusUnauthorized, response.CodeUnauthorized, "User role not found in context")
			return
		}

		for _, role := range allowedRoles {
			if role == userRole {
				c.Next()
				return
			}
		}

		response.Abort(c, http.StatusForbidden, response.CodeForbidden, "You do not have permission to access this resource")
	}
}
