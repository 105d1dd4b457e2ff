// Package auth authenticates API requests with bearer tokens and enforces
// role capabilities.
package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/fozemdestaque/portal/internal/entities"
)

// Context keys for the authenticated principal.
const (
	ContextKeyUser   = "auth_user"
	ContextKeyUserID = "auth_user_id"
)

// TokenStore resolves API tokens to users.
type TokenStore interface {
	GetUserByToken(token string) (*entities.User, error)
}

// Middleware handles authentication for HTTP requests.
type Middleware struct {
	store TokenStore
}

// NewMiddleware creates a new authentication middleware.
func NewMiddleware(store TokenStore) *Middleware {
	return &Middleware{store: store}
}

// Handler resolves the Authorization bearer token, if any, and stores the
// matching user on the context. Requests without a valid token proceed
// unauthenticated; route-level guards decide what requires a principal.
func (m *Middleware) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if user := m.tryBearerAuth(c); user != nil {
			c.Set(ContextKeyUser, user)
			c.Set(ContextKeyUserID, user.ID)
		}
		c.Next()
	}
}

// RequireImportPermission refuses requests whose principal may not import
// posts, before any request body is read.
func RequireImportPermission() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := GetUser(c)
		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "authentication required",
			})
			return
		}
		if !user.Role.CanImportPosts() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "importing posts requires the editor or admin role",
			})
			return
		}
		c.Next()
	}
}

// GetUser returns the authenticated user from the Gin context, or nil.
func GetUser(c *gin.Context) *entities.User {
	value, exists := c.Get(ContextKeyUser)
	if !exists {
		return nil
	}
	user, ok := value.(*entities.User)
	if !ok {
		return nil
	}
	return user
}

// tryBearerAuth attempts to authenticate using the Authorization header.
func (m *Middleware) tryBearerAuth(c *gin.Context) *entities.User {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil
	}

	token, ok := strings.CutPrefix(authHeader, "Bearer ")
	if !ok || token == "" {
		return nil
	}

	user, err := m.store.GetUserByToken(token)
	if err != nil {
		return nil
	}
	return user
}
