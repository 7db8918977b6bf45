package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Statistics source markers.
const (
	StatisticsRemote   = "remote"
	StatisticsComputed = "computed"
)

// Statistics feeds the dashboard cards.
type Statistics struct {
	TotalProducts int             `json:"totalProducts" bson:"total_products"`
	LowStock      int             `json:"lowStock" bson:"low_stock"`
	OutOfStock    int             `json:"outOfStock" bson:"out_of_stock"`
	RecentlyAdded *int            `json:"recentlyAdded,omitempty" bson:"recently_added,omitempty"`
	TotalUnits    int             `json:"totalUnits,omitempty" bson:"total_units"`
	StockValue    decimal.Decimal `json:"stockValue" bson:"-"`
	Source        string          `json:"source,omitempty" bson:"source"`
}

// StatisticsSnapshot is a dated copy of the dashboard kept in the journal store.
type StatisticsSnapshot struct {
	ID         string     `bson:"_id" json:"id"`
	Statistics Statistics `bson:"statistics" json:"statistics"`
	StockValue string     `bson:"stock_value" json:"stock_value"`
	TakenAt    time.Time  `bson:"taken_at" json:"taken_at"`
}

// AdjustmentRecord is one journal line for a stock change made via the gateway.
type AdjustmentRecord struct {
	ID             string    `bson:"_id" json:"id"`
	ProductID      string    `bson:"product_id" json:"productId"`
	ProductName    string    `bson:"product_name" json:"productName"`
	StockID        string    `bson:"stock_id" json:"stockId"`
	Warehouse      string    `bson:"warehouse" json:"warehouse"`
	WarehousemanID string    `bson:"warehouseman_id,omitempty" json:"warehousemanId,omitempty"`
	Delta          int       `bson:"delta" json:"delta"`
	Previous       int       `bson:"previous" json:"previous"`
	Quantity       int       `bson:"quantity" json:"quantity"`
	CreatedAt      time.Time `bson:"created_at" json:"createdAt"`
}

// LowStockItem is one line of the low-stock alert.
type LowStockItem struct {
	ProductID ID
	Name      string
	Quantity  int
}
