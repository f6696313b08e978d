package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/loopinhq/backend/internal/app/models/dto"
	"github.com/loopinhq/backend/internal/app/services"
	"github.com/loopinhq/backend/internal/middleware"
)

// AuthController handles admin authentication
type AuthController struct {
	authService *services.AuthService
	tokenExp    time.Duration
}

// NewAuthController creates a new AuthController
func NewAuthController(authService *services.AuthService, tokenExp time.Duration) *AuthController {
	return &AuthController{
		authService: authService,
		tokenExp:    tokenExp,
	}
}

// Login authenticates the admin
// @Summary Admin login
// @Description Verifies admin credentials and returns a session token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Admin credentials"
// @Success 200 {object} dto.APIResponse{data=dto.LoginResponse} "Login successful"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindingError(ctx, "Invalid login data", err)
		return
	}

	token, err := c.authService.Login(ctx, req.Username, req.Password)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success: true,
		Data: dto.LoginResponse{
			Token:     token,
			ExpiresIn: int64(c.tokenExp.Seconds()),
		},
		Timestamp: time.Now(),
	})
}
