package catalog

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/mamadbah2/warehouse/internal/domain/models"
	"github.com/mamadbah2/warehouse/pkg/clients/inventory"
)

var (
	// ErrProductNotFound is returned when the remote API has no such product.
	ErrProductNotFound = errors.New("product not found")
	// ErrInvalidProduct wraps presence-check failures on creation.
	ErrInvalidProduct = errors.New("invalid product")
)

// Service serves the product list, detail and creation screens.
type Service struct {
	client inventory.Client
	logger *zap.Logger
}

// NewService wires a new catalog service instance.
func NewService(client inventory.Client, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{client: client, logger: logger}
}

// List fetches every product then filters and sorts locally.
func (s *Service) List(ctx context.Context, q models.ListQuery) ([]models.Product, error) {
	products, err := s.client.ListProducts(ctx)
	if err != nil {
		return nil, err
	}

	result := models.ApplyQuery(products, q)
	s.logger.Debug("product list served",
		zap.String("search", q.Search),
		zap.String("category", q.Category),
		zap.String("sort", string(q.Sort)),
		zap.Int("fetched", len(products)),
		zap.Int("returned", len(result)))
	return result, nil
}

// Get returns a single product.
func (s *Service) Get(ctx context.Context, id models.ID) (*models.Product, error) {
	product, err := s.client.GetProduct(ctx, id)
	if err != nil {
		if inventory.IsNotFound(err) {
			return nil, fmt.Errorf("%w: %s", ErrProductNotFound, id)
		}
		return nil, err
	}
	return product, nil
}

// FindByBarcode resolves a scanned barcode to a product.
func (s *Service) FindByBarcode(ctx context.Context, code string) (*models.Product, error) {
	products, err := s.client.ListProducts(ctx)
	if err != nil {
		return nil, err
	}

	product, ok := models.FindByBarcode(products, code)
	if !ok {
		return nil, fmt.Errorf("%w: barcode %s", ErrProductNotFound, code)
	}
	return &product, nil
}

// Categories lists the distinct product types for the category filter.
func (s *Service) Categories(ctx context.Context) ([]string, error) {
	products, err := s.client.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	return models.Categories(products), nil
}

// Create validates the form and posts the product.
func (s *Service) Create(ctx context.Context, req models.NewProduct) (*models.Product, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidProduct, err)
	}

	created, err := s.client.CreateProduct(ctx, req.Product())
	if err != nil {
		return nil, err
	}

	s.logger.Info("product created",
		zap.String("product_id", created.ID.String()),
		zap.String("name", created.Name),
		zap.String("barcode", created.Barcode))
	return created, nil
}
