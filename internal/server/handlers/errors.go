package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/warehouse/internal/domain/models"
	"github.com/mamadbah2/warehouse/internal/service/auth"
	"github.com/mamadbah2/warehouse/internal/service/catalog"
	"github.com/mamadbah2/warehouse/internal/service/stock"
	"github.com/mamadbah2/warehouse/internal/service/whatsapp"
)

// statusFor maps service errors onto HTTP statuses. Anything unknown is an
// upstream failure.
func statusFor(err error) int {
	switch {
	case errors.Is(err, auth.ErrEmptySecret),
		errors.Is(err, catalog.ErrInvalidProduct),
		errors.Is(err, stock.ErrInvalidAdjustment),
		errors.Is(err, models.ErrMissingField),
		errors.Is(err, models.ErrNegativeQuantity):
		return http.StatusBadRequest
	case errors.Is(err, auth.ErrInvalidSecret):
		return http.StatusUnauthorized
	case errors.Is(err, catalog.ErrProductNotFound),
		errors.Is(err, stock.ErrProductNotFound),
		errors.Is(err, stock.ErrStockNotFound):
		return http.StatusNotFound
	case errors.Is(err, stock.ErrJournalDisabled),
		errors.Is(err, whatsapp.ErrAlertsDisabled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusBadGateway
	}
}

func respondError(c *gin.Context, logger *zap.Logger, msg string, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		logger.Error(msg, zap.Error(err), zap.Int("status", status))
		c.JSON(status, gin.H{"error": msg})
		return
	}

	logger.Warn(msg, zap.Error(err), zap.Int("status", status))
	c.JSON(status, gin.H{"error": err.Error()})
}
