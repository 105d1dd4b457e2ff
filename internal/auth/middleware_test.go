package auth

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/fozemdestaque/portal/internal/entities"
)

type stubTokenStore struct {
	users map[string]*entities.User
}

func (s *stubTokenStore) GetUserByToken(token string) (*entities.User, error) {
	if user, ok := s.users[token]; ok {
		return user, nil
	}
	return nil, fmt.Errorf("record not found")
}

func newTestRouter(store TokenStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(NewMiddleware(store).Handler())
	router.POST("/import", RequireImportPermission(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user": GetUser(c).Username})
	})
	return router
}

func TestRequireImportPermission(t *testing.T) {
	store := &stubTokenStore{users: map[string]*entities.User{
		"editor-token": {Username: "editor", Role: entities.RoleEditor},
		"admin-token":  {Username: "admin", Role: entities.RoleAdmin},
		"reader-token": {Username: "reader", Role: entities.RoleReader},
	}}
	router := newTestRouter(store)

	tests := []struct {
		name           string
		authHeader     string
		expectedStatus int
	}{
		{name: "no token", authHeader: "", expectedStatus: http.StatusUnauthorized},
		{name: "unknown token", authHeader: "Bearer nope", expectedStatus: http.StatusUnauthorized},
		{name: "malformed header", authHeader: "editor-token", expectedStatus: http.StatusUnauthorized},
		{name: "reader is forbidden", authHeader: "Bearer reader-token", expectedStatus: http.StatusForbidden},
		{name: "editor allowed", authHeader: "Bearer editor-token", expectedStatus: http.StatusOK},
		{name: "admin allowed", authHeader: "Bearer admin-token", expectedStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/import", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("segredo", 4)
	assert.NoError(t, err)
	assert.True(t, CheckPassword("segredo", hash))
	assert.False(t, CheckPassword("errado", hash))
}

func TestHashPassword_InvalidCostFallsBack(t *testing.T) {
	hash, err := HashPassword("segredo", 99)
	assert.NoError(t, err)
	assert.True(t, CheckPassword("segredo", hash))
}
