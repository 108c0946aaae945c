package middleware

import (
	"context"
	"net/http"
	"strings"

	"hospital-queue/internal/apperr"
	"hospital-queue/internal/models"

	"github.com/gin-gonic/gin"
)

const (
	// SessionCookie and SessionQuery name the fallbacks to the bearer header.
	SessionCookie = "session_token"
	SessionQuery  = "session_token"

	userKey  = "current_user"
	tokenKey = "session_token"
)

// TokenVerifier resolves a session token to its user.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*models.User, error)
}

// ExtractToken reads the session token from the Authorization bearer header,
// then the session_token cookie, then the session_token query parameter.
func ExtractToken(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); h != "" {
		scheme, token, ok := strings.Cut(h, " ")
		if ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
	}
	if cookie, err := c.Cookie(SessionCookie); err == nil && cookie != "" {
		return cookie
	}
	return c.Query(SessionQuery)
}

// Auth rejects requests without a valid session and stores the user on the
// context for the handlers.
func Auth(v TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := ExtractToken(c)
		user, err := v.Verify(c.Request.Context(), token)
		if err != nil {
			status := apperr.HTTPStatus(err)
			msg := err.Error()
			if status == http.StatusInternalServerError {
				_ = c.Error(err)
				msg = "internal server error"
			}
			c.AbortWithStatusJSON(status, gin.H{"error": msg})
			return
		}
		c.Set(userKey, user)
		c.Set(tokenKey, token)
		c.Next()
	}
}

// RequireRoles lets through only users holding one of roles. It must run
// after Auth.
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		for _, r := range roles {
			if user.Role == r {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
	}
}

// RequireStaff admits doctors and admins.
func RequireStaff() gin.HandlerFunc {
	return RequireRoles(models.RoleDoctor, models.RoleAdmin)
}

// RequireAdmin admits admins only.
func RequireAdmin() gin.HandlerFunc {
	return RequireRoles(models.RoleAdmin)
}

// CurrentUser returns the user stored by Auth, or nil.
func CurrentUser(c *gin.Context) *models.User {
	v, ok := c.Get(userKey)
	if !ok {
		return nil
	}
	user, _ := v.(*models.User)
	return user
}

// SessionToken returns the token Auth accepted.
func SessionToken(c *gin.Context) string {
	return c.GetString(tokenKey)
}
