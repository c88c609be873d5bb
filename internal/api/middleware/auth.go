package middleware

import (
	"net/http"
	"strings"

	"reviewhub/internal/api/models"
	"reviewhub/internal/api/service"

	"github.com/gin-gonic/gin"
)

// Context keys set by AuthMiddleware for handlers to read.
const (
	CtxUserID    = "userID"
	CtxUsername  = "username"
	CtxRole      = "role"
	CtxSuperuser = "superuser"
)

// AuthMiddleware checks for a valid bearer token and stores the caller's
// identity in the gin context. Requests without a valid token are rejected
// with 401 before any policy check runs.
func AuthMiddleware(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			c.Abort()
			return
		}

		// Extract token (format: "Bearer <token>")
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
			c.Abort()
			return
		}

		claims, err := authService.ValidateToken(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}

		c.Set(CtxUserID, claims.UserID)
		c.Set(CtxUsername, claims.Username)
		c.Set(CtxRole, claims.Role)
		c.Set(CtxSuperuser, claims.Superuser)

		c.Next()
	}
}

// RequireAdmin gates the catalog write endpoints: role must be admin. The
// response is the same 403 whatever the caller's actual role is.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := roleFromContext(c)
		if !ok || !role.IsAdmin() {
			c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAdministrator gates the user-management endpoints: admin role or the
// superuser flag.
func RequireAdministrator() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := roleFromContext(c)
		superuser := c.GetBool(CtxSuperuser)
		if !ok || (!role.IsAdmin() && !superuser) {
			c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			c.Abort()
			return
		}
		c.Next()
	}
}

func roleFromContext(c *gin.Context) (models.Role, bool) {
	value, exists := c.Get(CtxRole)
	if !exists {
		return "", false
	}
	role, ok := value.(models.Role)
	return role, ok
}
