package stock

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mamadbah2/warehouse/internal/domain/models"
	"github.com/mamadbah2/warehouse/internal/repository/mongodb"
	"github.com/mamadbah2/warehouse/pkg/clients/inventory"
)

var (
	// ErrProductNotFound is returned when the product to adjust does not exist.
	ErrProductNotFound = errors.New("product not found")
	// ErrStockNotFound is returned when the product has no stock entry with that id.
	ErrStockNotFound = errors.New("stock entry not found")
	// ErrInvalidAdjustment covers zero deltas and malformed new stock entries.
	ErrInvalidAdjustment = errors.New("invalid stock adjustment")
	// ErrJournalDisabled is returned by History when no journal store is configured.
	ErrJournalDisabled = errors.New("adjustment journal disabled")
)

const journalTimeout = 5 * time.Second

// Service applies stock changes to products on the remote API.
type Service struct {
	client  inventory.Client
	journal mongodb.Repository
	logger  *zap.Logger
	now     func() time.Time
}

// NewService wires a stock service. journal may be nil.
func NewService(client inventory.Client, journal mongodb.Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		client:  client,
		journal: journal,
		logger:  logger,
		now:     time.Now,
	}
}

// Adjust changes one stock entry by adj.Delta and writes the whole product
// back. The write is attempted once; there is no conflict detection and no
// rollback.
func (s *Service) Adjust(ctx context.Context, adj models.Adjustment) (*models.AdjustmentResult, error) {
	if adj.Delta == 0 {
		return nil, fmt.Errorf("%w: delta must not be zero", ErrInvalidAdjustment)
	}

	product, err := s.fetch(ctx, adj.ProductID)
	if err != nil {
		return nil, err
	}

	entry, ok := product.StockByID(adj.StockID)
	if !ok {
		return nil, fmt.Errorf("%w: product %s stock %s", ErrStockNotFound, adj.ProductID, adj.StockID)
	}

	previous := entry.Quantity
	quantity := entry.AdjustQuantity(adj.Delta)
	warehouse := entry.Name
	product.MarkEdited(adj.WarehousemanID, s.now())

	updated, err := s.client.UpdateProduct(ctx, *product)
	if err != nil {
		s.logger.Error("stock write failed",
			zap.String("product_id", adj.ProductID.String()),
			zap.String("stock_id", adj.StockID.String()),
			zap.Int("delta", adj.Delta),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("stock adjusted",
		zap.String("product_id", adj.ProductID.String()),
		zap.String("stock_id", adj.StockID.String()),
		zap.String("warehouse", warehouse),
		zap.Int("previous", previous),
		zap.Int("quantity", quantity))

	s.record(ctx, models.AdjustmentRecord{
		ProductID:      adj.ProductID.String(),
		ProductName:    product.Name,
		StockID:        adj.StockID.String(),
		Warehouse:      warehouse,
		WarehousemanID: adj.WarehousemanID.String(),
		Delta:          quantity - previous,
		Previous:       previous,
		Quantity:       quantity,
	})

	return &models.AdjustmentResult{
		Product:  *updated,
		Previous: previous,
		Quantity: quantity,
		Clamped:  previous+adj.Delta != quantity,
	}, nil
}

// AddStock appends a new warehouse entry to a product.
func (s *Service) AddStock(ctx context.Context, productID models.ID, req models.NewStockRequest) (*models.Product, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: warehouse name is required", ErrInvalidAdjustment)
	}
	if req.Quantity < 0 {
		return nil, fmt.Errorf("%w: %w", ErrInvalidAdjustment, models.ErrNegativeQuantity)
	}

	product, err := s.fetch(ctx, productID)
	if err != nil {
		return nil, err
	}

	entry := models.Stock{
		ID:           nextStockID(product.Stocks),
		Name:         strings.TrimSpace(req.Name),
		Quantity:     req.Quantity,
		Localisation: req.Localisation,
	}
	product.Stocks = append(product.Stocks, entry)
	product.MarkEdited(req.WarehousemanID, s.now())

	updated, err := s.client.UpdateProduct(ctx, *product)
	if err != nil {
		return nil, err
	}

	s.logger.Info("stock entry added",
		zap.String("product_id", productID.String()),
		zap.String("stock_id", entry.ID.String()),
		zap.String("warehouse", entry.Name))

	if entry.Quantity > 0 {
		s.record(ctx, models.AdjustmentRecord{
			ProductID:      productID.String(),
			ProductName:    product.Name,
			StockID:        entry.ID.String(),
			Warehouse:      entry.Name,
			WarehousemanID: req.WarehousemanID.String(),
			Delta:          entry.Quantity,
			Quantity:       entry.Quantity,
		})
	}

	return updated, nil
}

// History returns the latest journal lines for a product.
func (s *Service) History(ctx context.Context, productID models.ID, limit int64) ([]models.AdjustmentRecord, error) {
	if s.journal == nil {
		return nil, ErrJournalDisabled
	}
	return s.journal.ListAdjustments(ctx, productID.String(), limit)
}

func (s *Service) fetch(ctx context.Context, id models.ID) (*models.Product, error) {
	product, err := s.client.GetProduct(ctx, id)
	if err != nil {
		if inventory.IsNotFound(err) {
			return nil, fmt.Errorf("%w: %s", ErrProductNotFound, id)
		}
		return nil, err
	}
	return product, nil
}

// record writes to the journal. Journal failures never fail the adjustment.
func (s *Service) record(ctx context.Context, rec models.AdjustmentRecord) {
	if s.journal == nil {
		return
	}

	rec.ID = uuid.NewString()
	rec.CreatedAt = s.now().UTC()

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), journalTimeout)
	defer cancel()

	if err := s.journal.SaveAdjustment(ctx, rec); err != nil {
		s.logger.Warn("failed to journal stock adjustment", zap.String("product_id", rec.ProductID), zap.Error(err))
	}
}

// nextStockID picks max(numeric ids)+1, or a uuid when existing ids are not numeric.
func nextStockID(stocks []models.Stock) models.ID {
	maxID := 0
	for _, st := range stocks {
		n, err := strconv.Atoi(st.ID.String())
		if err != nil {
			return models.ID(uuid.NewString())
		}
		if n > maxID {
			maxID = n
		}
	}
	return models.ID(strconv.Itoa(maxID + 1))
}
