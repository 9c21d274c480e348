package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/istl-web/auth-service/internal/auth"
	"github.com/istl-web/auth-service/internal/domain"
)

const (
	errUnauthorized = "Unauthorized"
	errForbidden    = "Forbidden"

	// SessionCookie carries the signed session token, HTTP-only.
	SessionCookie = "token"

	// Gin context keys set on successful authentication.
	UserIDKey   = "userID"
	UserRoleKey = "userRole"
)

// Auth is the session gate. It extracts the session token from the "token"
// cookie (or an Authorization Bearer header for non-browser clients),
// verifies it, and attaches the caller's identity to the gin context.
func Auth(tokens *auth.Tokens) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := extractToken(c)
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errUnauthorized})
			return
		}

		userID, role, err := tokens.VerifySession(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errUnauthorized})
			return
		}

		c.Set(UserIDKey, userID)
		c.Set(UserRoleKey, role)
		c.Next()
	}
}

// RequireAdmin runs after Auth and rejects anyone without the admin role.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := c.Get(UserRoleKey)
		if !ok || role.(domain.Role) != domain.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": errForbidden})
			return
		}
		c.Next()
	}
}

// UserID returns the authenticated caller's ID from the gin context.
func UserID(c *gin.Context) int64 {
	id, _ := c.Get(UserIDKey)
	v, _ := id.(int64)
	return v
}

func extractToken(c *gin.Context) string {
	if cookie, err := c.Cookie(SessionCookie); err == nil && cookie != "" {
		return cookie
	}
	if header := c.GetHeader("Authorization"); strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}
