package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/warehouse/internal/domain/models"
)

// Authenticator checks a warehouseman secret key.
type Authenticator interface {
	Login(ctx context.Context, secretKey string) (*models.Warehouseman, error)
}

// AuthHandler serves the login screen.
type AuthHandler struct {
	svc    Authenticator
	logger *zap.Logger
}

// NewAuthHandler constructs the HTTP handler adapter.
func NewAuthHandler(svc Authenticator, logger *zap.Logger) *AuthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthHandler{svc: svc, logger: logger}
}

// Login answers with the warehouseman profile when the key matches.
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid login payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	w, err := h.svc.Login(c.Request.Context(), req.SecretKey)
	if err != nil {
		respondError(c, h.logger, "unable to reach the server", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"warehouseman": w.Profile()})
}
