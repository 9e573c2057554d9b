package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"twofa-api/internal/service"
)

// AuthHandler mantiene dependencias para endpoints de autenticacion.
type AuthHandler struct {
	logger   *zap.Logger
	authServ *service.AuthService
}

// NewAuthHandler crea una instancia de AuthHandler con dependencias necesarias.
func NewAuthHandler(logger *zap.Logger, authServ *service.AuthService) *AuthHandler {
	return &AuthHandler{
		logger:   logger,
		authServ: authServ,
	}
}

// Register maneja POST /auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req struct {
		Email       string `json:"email" binding:"required,email"`
		Password    string `json:"password" binding:"required,min=8,max=128"`
		Name        string `json:"name" binding:"required,min=2,max=50"`
		Surname     string `json:"surname" binding:"required,min=2,max=50"`
		Requires2FA bool   `json:"requires_2fa"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid register request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	user, err := h.authServ.Register(c.Request.Context(), service.RegisterInput{
		Email:       req.Email,
		Password:    req.Password,
		Name:        req.Name,
		Surname:     req.Surname,
		Requires2FA: req.Requires2FA,
	})
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": "user already exists"})
			return
		}
		h.logger.Error("register failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not register user"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"requires_2fa": user.Requires2FA,
		"email":        user.Email,
	})
}

// Login maneja POST /auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=8,max=128"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid login request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	result, err := h.authServ.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		case errors.Is(err, service.ErrOTPDelivery):
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to send otp email"})
		default:
			h.logger.Error("login failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not login"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"requires_2fa": result.Requires2FA,
		"tmp_token":    nullableToken(result.TmpToken),
		"access_token": nullableToken(result.AccessToken),
	})
}

// Verify2FA maneja POST /auth/verify-2fa.
func (h *AuthHandler) Verify2FA(c *gin.Context) {
	var req struct {
		TmpToken string `json:"tmp_token" binding:"required"`
		OTP      string `json:"otp" binding:"required,len=6,numeric"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid verify-2fa request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	accessToken, err := h.authServ.Verify2FA(c.Request.Context(), req.TmpToken, req.OTP)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTokenKind):
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid token type"})
		case errors.Is(err, service.ErrInvalidLoginToken),
			errors.Is(err, service.ErrOTPNotFound),
			errors.Is(err, service.ErrOTPMismatch):
			// Respuesta uniforme: no se revela cual de las tres fallas ocurrio.
			h.logger.Warn("verify-2fa rejected", zap.Error(err))
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
		default:
			h.logger.Error("verify-2fa failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not verify otp"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"access_token": accessToken})
}

func nullableToken(token string) any {
	if token == "" {
		return nil
	}
	return token
}
