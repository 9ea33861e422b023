package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/shopbill/billing-api/internal/application/service"
	"github.com/shopbill/billing-api/internal/presentation/http/dto/request"
	"github.com/shopbill/billing-api/internal/presentation/http/dto/response"
)

// AuthHandler handles owner authentication requests
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login handles the owner login request
func (h *AuthHandler) Login(c *gin.Context) {
	var req request.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Username and password are required")
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Login successful", result)
}
