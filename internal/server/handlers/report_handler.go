package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/warehouse/internal/domain/models"
)

// StatisticsSource serves the dashboard counters.
type StatisticsSource interface {
	Statistics(ctx context.Context) (*models.Statistics, error)
}

// Messenger sends WhatsApp messages and stock alerts.
type Messenger interface {
	SendLowStockAlert(ctx context.Context) (*models.AlertResult, error)
	SendOutbound(ctx context.Context, req models.OutboundMessageRequest) error
}

// ReportHandler serves the statistics dashboard and alert endpoints.
type ReportHandler struct {
	stats     StatisticsSource
	messenger Messenger
	logger    *zap.Logger
}

// NewReportHandler constructs the HTTP handler adapter.
func NewReportHandler(stats StatisticsSource, messenger Messenger, logger *zap.Logger) *ReportHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportHandler{stats: stats, messenger: messenger, logger: logger}
}

// Statistics handles GET /statistics.
func (h *ReportHandler) Statistics(c *gin.Context) {
	stats, err := h.stats.Statistics(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, "unable to load statistics", err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// LowStockAlert handles POST /alerts/low-stock.
func (h *ReportHandler) LowStockAlert(c *gin.Context) {
	result, err := h.messenger.SendLowStockAlert(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, "unable to send low stock alert", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// SendMessage handles POST /send-message.
func (h *ReportHandler) SendMessage(c *gin.Context) {
	var req models.OutboundMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid outbound payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.messenger.SendOutbound(c.Request.Context(), req); err != nil {
		respondError(c, h.logger, "unable to send message", err)
		return
	}

	c.Status(http.StatusAccepted)
}
