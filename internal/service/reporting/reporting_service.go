package reporting

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/mamadbah2/warehouse/internal/domain/models"
	"github.com/mamadbah2/warehouse/internal/repository/mongodb"
	"github.com/mamadbah2/warehouse/internal/repository/sheets"
	"github.com/mamadbah2/warehouse/pkg/clients/inventory"
)

const dateLayout = "2006-01-02"

var exportHeader = []interface{}{"Product ID", "Name", "Type", "Barcode", "Price", "Supplier", "Warehouse", "Quantity"}

// Options tunes the reporting service.
type Options struct {
	LowStockThreshold int
	// ExportRange is the spreadsheet range the inventory export replaces.
	ExportRange string
}

// Service serves the statistics dashboard and scheduled inventory reports.
type Service struct {
	client  inventory.Client
	sheets  sheets.Repository
	journal mongodb.Repository
	opts    Options
	logger  *zap.Logger
	now     func() time.Time
}

// NewService wires a new reporting service instance. sheetsRepo and journal may be nil.
func NewService(client inventory.Client, sheetsRepo sheets.Repository, journal mongodb.Repository, opts Options, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		client:  client,
		sheets:  sheetsRepo,
		journal: journal,
		opts:    opts,
		logger:  logger,
		now:     time.Now,
	}
}

// Statistics returns the remote dashboard counters, falling back to counters
// computed from the product list when the statistics endpoint fails.
func (s *Service) Statistics(ctx context.Context) (*models.Statistics, error) {
	stats, err := s.client.GetStatistics(ctx)
	if err == nil {
		stats.Source = models.StatisticsRemote
		return stats, nil
	}

	s.logger.Warn("remote statistics unavailable, computing locally", zap.Error(err))

	products, listErr := s.client.ListProducts(ctx)
	if listErr != nil {
		return nil, fmt.Errorf("load statistics: %w", listErr)
	}

	computed := Summarize(products, s.opts.LowStockThreshold)
	return &computed, nil
}

// Summarize computes dashboard counters from a product list. A product is low
// on stock when 0 < total < threshold and out of stock when its total is zero.
// Products carry no creation date, so RecentlyAdded is left unset.
func Summarize(products []models.Product, threshold int) models.Statistics {
	stats := models.Statistics{
		TotalProducts: len(products),
		StockValue:    decimal.Zero,
		Source:        models.StatisticsComputed,
	}

	for _, p := range products {
		total := p.TotalQuantity()
		stats.TotalUnits += total
		stats.StockValue = stats.StockValue.Add(p.EffectivePrice().Mul(decimal.NewFromInt(int64(total))))

		switch {
		case total == 0:
			stats.OutOfStock++
		case total < threshold:
			stats.LowStock++
		}
	}

	return stats
}

// LowStock lists out-of-stock and low-stock products, lowest quantity first.
func LowStock(products []models.Product, threshold int) []models.LowStockItem {
	items := make([]models.LowStockItem, 0)
	for _, p := range products {
		total := p.TotalQuantity()
		if total == 0 || total < threshold {
			items = append(items, models.LowStockItem{ProductID: p.ID, Name: p.Name, Quantity: total})
		}
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].Quantity < items[j].Quantity })
	return items
}

// LowStockReport builds the text of the daily stock alert. It returns an empty
// string when nothing needs attention.
func (s *Service) LowStockReport(ctx context.Context) (string, error) {
	products, err := s.client.ListProducts(ctx)
	if err != nil {
		return "", fmt.Errorf("load products for alert: %w", err)
	}

	items := LowStock(products, s.opts.LowStockThreshold)
	if len(items) == 0 {
		return "", nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Stock alert (%s): %d product(s) need restocking.", s.now().Format(dateLayout), len(items))
	for _, item := range items {
		if item.Quantity == 0 {
			fmt.Fprintf(&b, "\n- %s: out of stock", item.Name)
			continue
		}
		fmt.Fprintf(&b, "\n- %s: %d left", item.Name, item.Quantity)
	}
	return b.String(), nil
}

// ExportInventory writes one row per product and warehouse to the configured
// spreadsheet range and returns the number of data rows written.
func (s *Service) ExportInventory(ctx context.Context) (int, error) {
	if s.sheets == nil {
		return 0, fmt.Errorf("inventory export: sheets repository not configured")
	}

	products, err := s.client.ListProducts(ctx)
	if err != nil {
		return 0, fmt.Errorf("load products for export: %w", err)
	}

	rows := InventoryRows(models.SortProducts(products, models.SortName))
	if err := s.sheets.ReplaceRange(ctx, s.opts.ExportRange, append([][]interface{}{exportHeader}, rows...)); err != nil {
		return 0, fmt.Errorf("inventory export: %w", err)
	}

	s.logger.Info("inventory exported", zap.Int("rows", len(rows)), zap.String("range", s.opts.ExportRange))
	return len(rows), nil
}

// InventoryRows flattens products into spreadsheet rows. Products without any
// stock entry still get one row with an empty warehouse and zero quantity.
func InventoryRows(products []models.Product) [][]interface{} {
	rows := make([][]interface{}, 0, len(products))
	for _, p := range products {
		base := []interface{}{p.ID.String(), p.Name, p.Type, p.Barcode, p.EffectivePrice().String(), p.Supplier}
		if len(p.Stocks) == 0 {
			rows = append(rows, append(append([]interface{}{}, base...), "", 0))
			continue
		}
		for _, st := range p.Stocks {
			rows = append(rows, append(append([]interface{}{}, base...), st.Name, st.Quantity))
		}
	}
	return rows
}

// SnapshotStatistics computes the dashboard and stores it in the journal.
func (s *Service) SnapshotStatistics(ctx context.Context) (*models.StatisticsSnapshot, error) {
	if s.journal == nil {
		return nil, fmt.Errorf("statistics snapshot: journal not configured")
	}

	products, err := s.client.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("load products for snapshot: %w", err)
	}

	stats := Summarize(products, s.opts.LowStockThreshold)
	snapshot := models.StatisticsSnapshot{
		ID:         uuid.NewString(),
		Statistics: stats,
		StockValue: stats.StockValue.StringFixed(2),
		TakenAt:    s.now().UTC(),
	}

	if err := s.journal.SaveStatisticsSnapshot(ctx, snapshot); err != nil {
		return nil, err
	}

	s.logger.Debug("statistics snapshot stored",
		zap.Int("total_products", stats.TotalProducts),
		zap.Int("low_stock", stats.LowStock),
		zap.Int("out_of_stock", stats.OutOfStock))
	return &snapshot, nil
}
