package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fozemdestaque/portal/internal/auth"
	"github.com/fozemdestaque/portal/internal/entities"
)

// UserStore looks up users for authentication.
type UserStore interface {
	GetUserByUsername(username string) (*entities.User, error)
}

// AuthController handles credential exchange for API tokens.
type AuthController struct {
	store UserStore
}

// NewAuthController creates a new AuthController.
func NewAuthController(store UserStore) *AuthController {
	return &AuthController{store: store}
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// Login handles POST /api/auth/login. Successful requests return the user's
// API token for use as a bearer credential.
func (controller *AuthController) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "username and password are required")
		return
	}

	user, err := controller.store.GetUserByUsername(req.Username)
	if err != nil || !auth.CheckPassword(req.Password, user.PasswordHash) {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid credentials"})
		return
	}

	c.JSON(http.StatusOK, loginResponse{
		Token:    user.Token,
		Username: user.Username,
		Role:     string(user.Role),
	})
}
