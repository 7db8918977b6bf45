package inventory

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/mamadbah2/warehouse/internal/config"
	"github.com/mamadbah2/warehouse/internal/domain/models"
)

// Client exposes the remote inventory API operations used by the gateway.
type Client interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	GetProduct(ctx context.Context, id models.ID) (*models.Product, error)
	CreateProduct(ctx context.Context, product models.Product) (*models.Product, error)
	UpdateProduct(ctx context.Context, product models.Product) (*models.Product, error)
	ListWarehousemen(ctx context.Context) ([]models.Warehouseman, error)
	GetStatistics(ctx context.Context) (*models.Statistics, error)
}

// APIError is returned for any non-2xx answer from the inventory API.
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	Status     string
	Body       string
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("inventory api %s %s: %s", e.Method, e.Path, e.Status)
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

// IsNotFound reports whether err is a 404 from the inventory API.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// APIClient is a resty-backed implementation of Client.
type APIClient struct {
	httpClient  *resty.Client
	statsClient *resty.Client
}

// NewClient builds an inventory API client using the provided configuration values.
func NewClient(cfg config.InventoryConfig) *APIClient {
	statsURL := cfg.StatisticsURL
	if statsURL == "" {
		statsURL = cfg.BaseURL
	}

	return &APIClient{
		httpClient:  newResty(cfg.BaseURL, cfg.Timeout),
		statsClient: newResty(statsURL, cfg.Timeout),
	}
}

func newResty(baseURL string, timeout time.Duration) *resty.Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return resty.New().
		SetBaseURL(strings.TrimSuffix(baseURL, "/")).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetTimeout(timeout)
}

// ListProducts fetches the whole catalog.
func (c *APIClient) ListProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := c.do(ctx, c.httpClient, http.MethodGet, "/products", nil, &products); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	if products == nil {
		products = []models.Product{}
	}
	return products, nil
}

// GetProduct fetches a single product.
func (c *APIClient) GetProduct(ctx context.Context, id models.ID) (*models.Product, error) {
	if id == "" {
		return nil, errors.New("get product: empty id")
	}
	product := new(models.Product)
	if err := c.do(ctx, c.httpClient, http.MethodGet, "/products/"+id.String(), nil, product); err != nil {
		return nil, fmt.Errorf("get product %s: %w", id, err)
	}
	return product, nil
}

// CreateProduct posts a new product and returns the stored copy, including its id.
func (c *APIClient) CreateProduct(ctx context.Context, product models.Product) (*models.Product, error) {
	product.ID = ""
	created := new(models.Product)
	if err := c.do(ctx, c.httpClient, http.MethodPost, "/products", product, created); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return created, nil
}

// UpdateProduct replaces a product with a PUT.
func (c *APIClient) UpdateProduct(ctx context.Context, product models.Product) (*models.Product, error) {
	if product.ID == "" {
		return nil, errors.New("update product: empty id")
	}
	updated := new(models.Product)
	if err := c.do(ctx, c.httpClient, http.MethodPut, "/products/"+product.ID.String(), product, updated); err != nil {
		return nil, fmt.Errorf("update product %s: %w", product.ID, err)
	}
	return updated, nil
}

// ListWarehousemen fetches every registered warehouseman with their keys.
func (c *APIClient) ListWarehousemen(ctx context.Context) ([]models.Warehouseman, error) {
	var warehousemen []models.Warehouseman
	if err := c.do(ctx, c.httpClient, http.MethodGet, "/warehousemans", nil, &warehousemen); err != nil {
		return nil, fmt.Errorf("list warehousemen: %w", err)
	}
	return warehousemen, nil
}

// GetStatistics fetches the dashboard counters.
func (c *APIClient) GetStatistics(ctx context.Context) (*models.Statistics, error) {
	stats := new(models.Statistics)
	if err := c.do(ctx, c.statsClient, http.MethodGet, "/statistics", nil, stats); err != nil {
		return nil, fmt.Errorf("get statistics: %w", err)
	}
	return stats, nil
}

func (c *APIClient) do(ctx context.Context, client *resty.Client, method, path string, body, result any) error {
	req := client.R().
		SetContext(ctx).
		ExpectContentType("application/json").
		SetResult(result)
	if body != nil {
		req.SetBody(body)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return err
	}

	if resp.IsError() {
		return &APIError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode(),
			Status:     resp.Status(),
			Body:       truncate(strings.TrimSpace(resp.String()), 256),
		}
	}

	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
