package models

// Adjustment is a relative change to one stock entry of a product.
type Adjustment struct {
	ProductID      ID
	StockID        ID
	Delta          int
	WarehousemanID ID
}

// AdjustStockRequest is the body of PATCH /products/:id/stocks/:stockId.
type AdjustStockRequest struct {
	Delta          int `json:"delta" binding:"required"`
	WarehousemanID ID  `json:"warehousemanId"`
}

// NewStockRequest is the body of POST /products/:id/stocks.
type NewStockRequest struct {
	Name           string       `json:"name" binding:"required"`
	Quantity       int          `json:"quantity" binding:"gte=0"`
	Localisation   Localisation `json:"localisation"`
	WarehousemanID ID           `json:"warehousemanId"`
}

// AdjustmentResult reports the outcome of a stock change.
type AdjustmentResult struct {
	Product  Product `json:"product"`
	Previous int     `json:"previous"`
	Quantity int     `json:"quantity"`
	Clamped  bool    `json:"clamped"`
}
