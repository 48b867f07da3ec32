package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/01moynul/storefront-golang/internal/auth"
	"github.com/01moynul/storefront-golang/internal/models"
)

// SessionCookie carries the admin token for browser clients.
const SessionCookie = "admin_session"

const (
	ctxAdminID   = "adminID"
	ctxAdminRole = "adminRole"
)

// RequireAdmin guards a route group. The token comes from the
// Authorization header or, failing that, the session cookie. A missing or
// invalid token and a non-admin role are both answered with 401.
func RequireAdmin(tokens *auth.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		claims, err := tokens.ValidateToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}
		if claims.Role != models.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Admin role required"})
			return
		}

		c.Set(ctxAdminID, claims.AdminID)
		c.Set(ctxAdminRole, claims.Role)
		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	if header := c.GetHeader("Authorization"); header != "" {
		scheme, token, found := strings.Cut(header, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			return "", false
		}
		return strings.TrimSpace(token), true
	}
	if cookie, err := c.Cookie(SessionCookie); err == nil && cookie != "" {
		return cookie, true
	}
	return "", false
}

// AdminID returns the id RequireAdmin stored on the context.
func AdminID(c *gin.Context) (int64, bool) {
	v, ok := c.Get(ctxAdminID)
	if !ok {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}
