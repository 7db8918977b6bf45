// Package inventorytest provides an in-memory inventory.Client for tests.
package inventorytest

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"

	"github.com/mamadbah2/warehouse/internal/domain/models"
	"github.com/mamadbah2/warehouse/pkg/clients/inventory"
)

// Fake keeps products and warehousemen in memory. Err* fields force failures.
type Fake struct {
	mu sync.Mutex

	Products     []models.Product
	Warehousemen []models.Warehouseman
	Stats        *models.Statistics

	ListErr   error
	GetErr    error
	CreateErr error
	UpdateErr error
	LoginErr  error
	StatsErr  error

	Updates []models.Product
	nextID  int
}

var _ inventory.Client = (*Fake)(nil)

func (f *Fake) ListProducts(_ context.Context) ([]models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	out := make([]models.Product, len(f.Products))
	copy(out, f.Products)
	return out, nil
}

func (f *Fake) GetProduct(_ context.Context, id models.ID) (*models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.GetErr != nil {
		return nil, f.GetErr
	}
	for _, p := range f.Products {
		if p.ID == id {
			cp := clone(p)
			return &cp, nil
		}
	}
	return nil, &inventory.APIError{Method: http.MethodGet, Path: "/products/" + id.String(), StatusCode: http.StatusNotFound, Status: "404 Not Found"}
}

func (f *Fake) CreateProduct(_ context.Context, product models.Product) (*models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.CreateErr != nil {
		return nil, f.CreateErr
	}
	f.nextID++
	product.ID = models.ID(strconv.Itoa(1000 + f.nextID))
	f.Products = append(f.Products, product)
	return &product, nil
}

func (f *Fake) UpdateProduct(_ context.Context, product models.Product) (*models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.UpdateErr != nil {
		return nil, f.UpdateErr
	}
	for i := range f.Products {
		if f.Products[i].ID == product.ID {
			f.Products[i] = clone(product)
			f.Updates = append(f.Updates, clone(product))
			return &product, nil
		}
	}
	return nil, fmt.Errorf("update product %s: %w", product.ID, &inventory.APIError{StatusCode: http.StatusNotFound, Status: "404 Not Found"})
}

func (f *Fake) ListWarehousemen(_ context.Context) ([]models.Warehouseman, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.LoginErr != nil {
		return nil, f.LoginErr
	}
	return append([]models.Warehouseman(nil), f.Warehousemen...), nil
}

func (f *Fake) GetStatistics(_ context.Context) (*models.Statistics, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.StatsErr != nil {
		return nil, f.StatsErr
	}
	if f.Stats == nil {
		return &models.Statistics{}, nil
	}
	cp := *f.Stats
	return &cp, nil
}

func clone(p models.Product) models.Product {
	p.Stocks = append([]models.Stock(nil), p.Stocks...)
	p.EditedBy = append([]models.EditMark(nil), p.EditedBy...)
	return p
}
