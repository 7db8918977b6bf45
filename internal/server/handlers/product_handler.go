package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/warehouse/internal/domain/models"
)

const defaultHistoryLimit = 50

// Catalog is the product read/create surface.
type Catalog interface {
	List(ctx context.Context, q models.ListQuery) ([]models.Product, error)
	Get(ctx context.Context, id models.ID) (*models.Product, error)
	FindByBarcode(ctx context.Context, code string) (*models.Product, error)
	Categories(ctx context.Context) ([]string, error)
	Create(ctx context.Context, req models.NewProduct) (*models.Product, error)
}

// StockAdjuster is the stock write surface.
type StockAdjuster interface {
	Adjust(ctx context.Context, adj models.Adjustment) (*models.AdjustmentResult, error)
	AddStock(ctx context.Context, productID models.ID, req models.NewStockRequest) (*models.Product, error)
	History(ctx context.Context, productID models.ID, limit int64) ([]models.AdjustmentRecord, error)
}

// ProductHandler serves the product list, detail and form screens.
type ProductHandler struct {
	catalog Catalog
	stock   StockAdjuster
	logger  *zap.Logger
}

// NewProductHandler constructs the HTTP handler adapter.
func NewProductHandler(catalog Catalog, stock StockAdjuster, logger *zap.Logger) *ProductHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProductHandler{catalog: catalog, stock: stock, logger: logger}
}

// List handles GET /products?q=&category=&sort=.
func (h *ProductHandler) List(c *gin.Context) {
	sortKey, ok := models.ParseSortKey(c.Query("sort"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported sort, use name, price-asc, price-desc or quantity"})
		return
	}

	products, err := h.catalog.List(c.Request.Context(), models.ListQuery{
		Search:   c.Query("q"),
		Category: c.Query("category"),
		Sort:     sortKey,
	})
	if err != nil {
		respondError(c, h.logger, "failed to load products", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"products": products, "count": len(products)})
}

// Categories handles GET /products/categories.
func (h *ProductHandler) Categories(c *gin.Context) {
	categories, err := h.catalog.Categories(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, "failed to load categories", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// Get handles GET /products/:id.
func (h *ProductHandler) Get(c *gin.Context) {
	product, err := h.catalog.Get(c.Request.Context(), models.ID(c.Param("id")))
	if err != nil {
		respondError(c, h.logger, "failed to load product", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"product": product, "totalQuantity": product.TotalQuantity()})
}

// FindByBarcode handles GET /products/barcode/:code.
func (h *ProductHandler) FindByBarcode(c *gin.Context) {
	product, err := h.catalog.FindByBarcode(c.Request.Context(), c.Param("code"))
	if err != nil {
		respondError(c, h.logger, "failed to resolve barcode", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"product": product})
}

// Create handles POST /products.
func (h *ProductHandler) Create(c *gin.Context) {
	var req models.NewProduct
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid product payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	product, err := h.catalog.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.logger, "failed to create product", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"product": product})
}

// AdjustStock handles PATCH /products/:id/stocks/:stockId.
func (h *ProductHandler) AdjustStock(c *gin.Context) {
	var req models.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid adjustment payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	result, err := h.stock.Adjust(c.Request.Context(), models.Adjustment{
		ProductID:      models.ID(c.Param("id")),
		StockID:        models.ID(c.Param("stockId")),
		Delta:          req.Delta,
		WarehousemanID: req.WarehousemanID,
	})
	if err != nil {
		respondError(c, h.logger, "failed to update stock", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// AddStock handles POST /products/:id/stocks.
func (h *ProductHandler) AddStock(c *gin.Context) {
	var req models.NewStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid stock payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	product, err := h.stock.AddStock(c.Request.Context(), models.ID(c.Param("id")), req)
	if err != nil {
		respondError(c, h.logger, "failed to add stock", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"product": product})
}

// History handles GET /products/:id/adjustments?limit=.
func (h *ProductHandler) History(c *gin.Context) {
	limit := int64(defaultHistoryLimit)
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = n
	}

	records, err := h.stock.History(c.Request.Context(), models.ID(c.Param("id")), limit)
	if err != nil {
		respondError(c, h.logger, "failed to load adjustment history", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"adjustments": records})
}
