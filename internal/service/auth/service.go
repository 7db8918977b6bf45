package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/mamadbah2/warehouse/internal/domain/models"
	"github.com/mamadbah2/warehouse/pkg/clients/inventory"
)

var (
	// ErrEmptySecret is returned when no secret key was typed.
	ErrEmptySecret = errors.New("secret key is required")
	// ErrInvalidSecret is returned when no warehouseman holds the key.
	ErrInvalidSecret = errors.New("invalid secret key")
)

// Service authenticates warehousemen against the remote list.
type Service struct {
	client inventory.Client
	logger *zap.Logger
}

// NewService wires a new auth service instance.
func NewService(client inventory.Client, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{client: client, logger: logger}
}

// Login downloads every warehouseman and returns the one whose key matches.
func (s *Service) Login(ctx context.Context, secretKey string) (*models.Warehouseman, error) {
	if strings.TrimSpace(secretKey) == "" {
		return nil, ErrEmptySecret
	}

	warehousemen, err := s.client.ListWarehousemen(ctx)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	for i := range warehousemen {
		if subtle.ConstantTimeCompare([]byte(warehousemen[i].SecretKey), []byte(secretKey)) == 1 {
			w := warehousemen[i]
			s.logger.Info("warehouseman logged in", zap.String("warehouseman_id", w.ID.String()), zap.String("name", w.Name))
			return &w, nil
		}
	}

	s.logger.Warn("login rejected", zap.Int("candidates", len(warehousemen)))
	return nil, ErrInvalidSecret
}
