package whatsapp

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/warehouse/internal/config"
	"github.com/mamadbah2/warehouse/internal/domain/models"
	client "github.com/mamadbah2/warehouse/pkg/clients/whatsapp"
)

// ErrAlertsDisabled is returned when no WhatsApp credentials are configured.
var ErrAlertsDisabled = errors.New("whatsapp alerts disabled")

const sendTimeout = 10 * time.Second

// ReportSource builds the text of the stock alert.
type ReportSource interface {
	LowStockReport(ctx context.Context) (string, error)
}

// MessagingService describes the alert operations the HTTP layer and the scheduler can perform.
type MessagingService interface {
	SendLowStockAlert(ctx context.Context) (*models.AlertResult, error)
	SendOutbound(ctx context.Context, req models.OutboundMessageRequest) error
}

// MetaWhatsAppService is the production implementation backed by WhatsApp Cloud API.
type MetaWhatsAppService struct {
	cfg     config.WhatsAppConfig
	client  client.Client
	reports ReportSource
	logger  *zap.Logger
}

// NewMetaWhatsAppService wires a new service instance. A nil client disables sending.
func NewMetaWhatsAppService(cfg config.WhatsAppConfig, client client.Client, reports ReportSource, logger *zap.Logger) *MetaWhatsAppService {
	svc := &MetaWhatsAppService{
		cfg:     cfg,
		client:  client,
		reports: reports,
		logger:  logger,
	}
	if svc.logger == nil {
		svc.logger = zap.NewNop()
	}
	return svc
}

// SendLowStockAlert sends the low-stock report to the configured recipient.
// Nothing is sent when no product needs restocking.
func (s *MetaWhatsAppService) SendLowStockAlert(ctx context.Context) (*models.AlertResult, error) {
	report, err := s.reports.LowStockReport(ctx)
	if err != nil {
		return nil, err
	}

	if report == "" {
		s.logger.Info("no low stock to report")
		return &models.AlertResult{Sent: false}, nil
	}

	if err := s.send(ctx, s.cfg.AlertTo, report); err != nil {
		return nil, err
	}

	s.logger.Info("low stock alert sent", zap.String("to", s.cfg.AlertTo))
	return &models.AlertResult{Sent: true, Recipient: s.cfg.AlertTo, Message: report}, nil
}

// SendOutbound lets operators push quick notifications via HTTP.
func (s *MetaWhatsAppService) SendOutbound(ctx context.Context, req models.OutboundMessageRequest) error {
	return s.send(ctx, req.To, req.Message)
}

func (s *MetaWhatsAppService) send(ctx context.Context, to, body string) error {
	if s.client == nil || to == "" {
		return ErrAlertsDisabled
	}

	ctxWithTimeout, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	_, err := s.client.SendTextMessage(ctxWithTimeout, client.SendTextMessageRequest{
		To:   to,
		Body: body,
	})
	return err
}
