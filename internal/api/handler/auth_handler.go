package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"vehicle_pms/internal/domain"
	"vehicle_pms/internal/service"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(as *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: as}
}

// POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var dto domain.LoginDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dữ liệu không hợp lệ: " + err.Error()})
		return
	}

	res, err := h.authService.Login(c.Request.Context(), dto)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "Không đăng nhập được", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": res})
}

// POST /auth/register
func (h *AuthHandler) Signup(c *gin.Context) {
	var dto domain.SignupDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dữ liệu không hợp lệ: " + err.Error()})
		return
	}

	user, err := h.authService.Signup(c.Request.Context(), dto)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Không đăng ký được", "details": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": gin.H{"user": user}})
}
