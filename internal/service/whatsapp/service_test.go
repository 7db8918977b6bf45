package whatsapp

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/warehouse/internal/config"
	"github.com/mamadbah2/warehouse/internal/domain/models"
	client "github.com/mamadbah2/warehouse/pkg/clients/whatsapp"
)

type stubClient struct {
	sent []client.SendTextMessageRequest
	err  error
}

func (c *stubClient) SendTextMessage(_ context.Context, req client.SendTextMessageRequest) (*client.SendTextMessageResponse, error) {
	if c.err != nil {
		return nil, c.err
	}
	c.sent = append(c.sent, req)
	return &client.SendTextMessageResponse{}, nil
}

type stubReports struct {
	report string
	err    error
}

func (r stubReports) LowStockReport(context.Context) (string, error) {
	return r.report, r.err
}

var alertCfg = config.WhatsAppConfig{AlertTo: "221770000000"}

func TestSendLowStockAlert(t *testing.T) {
	wa := &stubClient{}
	svc := NewMetaWhatsAppService(alertCfg, wa, stubReports{report: "Stock alert: 1 product(s)"}, nil)

	result, err := svc.SendLowStockAlert(context.Background())
	require.NoError(t, err)
	assert.True(t, result.Sent)
	assert.Equal(t, "221770000000", result.Recipient)
	require.Len(t, wa.sent, 1)
	assert.Equal(t, "Stock alert: 1 product(s)", wa.sent[0].Body)
}

func TestSendLowStockAlertNothingToReport(t *testing.T) {
	wa := &stubClient{}
	svc := NewMetaWhatsAppService(alertCfg, wa, stubReports{}, nil)

	result, err := svc.SendLowStockAlert(context.Background())
	require.NoError(t, err)
	assert.False(t, result.Sent)
	assert.Empty(t, wa.sent)
}

func TestSendLowStockAlertErrors(t *testing.T) {
	svc := NewMetaWhatsAppService(alertCfg, &stubClient{}, stubReports{err: errors.New("inventory down")}, nil)
	_, err := svc.SendLowStockAlert(context.Background())
	assert.ErrorContains(t, err, "inventory down")

	svc = NewMetaWhatsAppService(alertCfg, &stubClient{err: errors.New("rate limited")}, stubReports{report: "x"}, nil)
	_, err = svc.SendLowStockAlert(context.Background())
	assert.ErrorContains(t, err, "rate limited")
}

func TestAlertsDisabled(t *testing.T) {
	svc := NewMetaWhatsAppService(alertCfg, nil, stubReports{report: "x"}, nil)
	_, err := svc.SendLowStockAlert(context.Background())
	assert.ErrorIs(t, err, ErrAlertsDisabled)

	svc = NewMetaWhatsAppService(config.WhatsAppConfig{}, &stubClient{}, stubReports{report: "x"}, nil)
	_, err = svc.SendLowStockAlert(context.Background())
	assert.ErrorIs(t, err, ErrAlertsDisabled)
}

func TestSendOutbound(t *testing.T) {
	wa := &stubClient{}
	svc := NewMetaWhatsAppService(alertCfg, wa, stubReports{}, nil)

	require.NoError(t, svc.SendOutbound(context.Background(), models.OutboundMessageRequest{To: "221771111111", Message: "Livraison reçue"}))
	require.Len(t, wa.sent, 1)
	assert.Equal(t, "221771111111", wa.sent[0].To)

	err := svc.SendOutbound(context.Background(), models.OutboundMessageRequest{Message: "no recipient"})
	assert.ErrorIs(t, err, ErrAlertsDisabled)
}

func TestSendOutboundWithoutAlertRecipient(t *testing.T) {
	wa := &stubClient{}
	svc := NewMetaWhatsAppService(config.WhatsAppConfig{AccessToken: "t", PhoneNumberID: "p"}, wa, stubReports{report: "x"}, nil)

	require.NoError(t, svc.SendOutbound(context.Background(), models.OutboundMessageRequest{To: "221771111111", Message: "ok"}))
	assert.Len(t, wa.sent, 1)

	_, err := svc.SendLowStockAlert(context.Background())
	assert.ErrorIs(t, err, ErrAlertsDisabled)
}
