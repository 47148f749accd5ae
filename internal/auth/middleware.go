package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/epochclub/club-api/internal/models"
)

// Gin context keys for the authenticated caller.
const (
	userIDCtxKey = "auth_user_id"
	emailCtxKey  = "auth_email"
	roleCtxKey   = "auth_role"
)

// RequireUser enforces a valid Authorization: Bearer token and stores the
// caller's identity in the request context.
func RequireUser(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := strings.TrimSpace(c.GetHeader("Authorization"))
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		claims, err := ParseToken(secret, strings.TrimSpace(raw))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		c.Set(userIDCtxKey, claims.Subject)
		c.Set(emailCtxKey, claims.Email)
		c.Set(roleCtxKey, claims.Role)
		c.Next()
	}
}

// RequireAdmin rejects callers whose token does not carry the admin role.
// Must run after RequireUser.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if Role(c) != models.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			return
		}
		c.Next()
	}
}

// UserID returns the authenticated caller's user id from the request context.
func UserID(c *gin.Context) string {
	v, _ := c.Get(userIDCtxKey)
	s, _ := v.(string)
	return s
}

// Email returns the authenticated caller's email from the request context.
func Email(c *gin.Context) string {
	v, _ := c.Get(emailCtxKey)
	s, _ := v.(string)
	return s
}

// Role returns the authenticated caller's role from the request context.
func Role(c *gin.Context) string {
	v, _ := c.Get(roleCtxKey)
	s, _ := v.(string)
	return s
}

// IsAdmin reports whether the caller holds the admin role.
func IsAdmin(c *gin.Context) bool {
	return Role(c) == models.RoleAdmin
}
