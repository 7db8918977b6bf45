package inventory

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/warehouse/internal/config"
	"github.com/mamadbah2/warehouse/internal/domain/models"
)

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *APIClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(config.InventoryConfig{BaseURL: server.URL, Timeout: 5 * time.Second})
}

func TestListProducts(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/products", r.URL.Path)
		writeJSON(w, http.StatusOK, `[
			{"id": 1, "name": "Riz", "type": "Alimentaire", "barcode": "111", "price": 12000, "supplier": "SenAgri",
			 "stocks": [{"id": 1, "name": "Dakar", "quantity": 4}, {"id": 2, "name": "Thiès", "quantity": 6}]},
			{"id": "b7", "name": "Huile", "type": "Alimentaire", "barcode": "333", "price": "3500.25", "supplier": "Lesieur", "stocks": []}
		]`)
	})

	products, err := client.ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)

	assert.Equal(t, models.ID("1"), products[0].ID)
	assert.Equal(t, 10, products[0].TotalQuantity())
	assert.Equal(t, models.ID("b7"), products[1].ID)
	assert.True(t, products[1].Price.Equal(decimal.RequireFromString("3500.25")))
}

func TestListProductsEmpty(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `[]`)
	})

	products, err := client.ListProducts(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, products)
	assert.Empty(t, products)
}

func TestGetProductNotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products/42", r.URL.Path)
		writeJSON(w, http.StatusNotFound, `{}`)
	})

	_, err := client.GetProduct(context.Background(), "42")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

func TestGetProductEmptyID(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	})

	_, err := client.GetProduct(context.Background(), "")
	assert.Error(t, err)
}

func TestCreateProductRoundTripsID(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/products", r.URL.Path)
		assert.Contains(t, r.Header.Get("Content-Type"), "application/json")

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.NotContains(t, body, "id")
		assert.Equal(t, "New Product", body["name"])
		assert.Equal(t, float64(100), body["price"])

		body["id"] = 12
		raw, _ := json.Marshal(body)
		writeJSON(w, http.StatusCreated, string(raw))
	})

	created, err := client.CreateProduct(context.Background(), models.Product{
		ID:       "ignored",
		Name:     "New Product",
		Type:     "Type A",
		Barcode:  "123456",
		Price:    decimal.NewFromInt(100),
		Supplier: "Supplier A",
		Image:    "image_url",
		Stocks:   []models.Stock{},
	})
	require.NoError(t, err)
	assert.Equal(t, models.ID("12"), created.ID)
	assert.Equal(t, "New Product", created.Name)
}

func TestUpdateProduct(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/products/5", r.URL.Path)

		var p models.Product
		require.NoError(t, json.NewDecoder(r.Body).Decode(&p))
		require.Len(t, p.Stocks, 1)
		assert.Equal(t, 9, p.Stocks[0].Quantity)

		raw, _ := json.Marshal(p)
		writeJSON(w, http.StatusOK, string(raw))
	})

	updated, err := client.UpdateProduct(context.Background(), models.Product{
		ID:     "5",
		Name:   "Riz",
		Price:  decimal.NewFromInt(1),
		Stocks: []models.Stock{{ID: "1", Name: "Dakar", Quantity: 9}},
	})
	require.NoError(t, err)
	assert.Equal(t, 9, updated.Stocks[0].Quantity)

	_, err = client.UpdateProduct(context.Background(), models.Product{})
	assert.Error(t, err)
}

func TestUpdateProductKeepsRecordShape(t *testing.T) {
	var putBody map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			writeJSON(w, http.StatusOK, `{
				"id": 3, "name": "Riz", "type": "Alimentaire", "barcode": "111", "price": 12000,
				"supplier": "SenAgri", "category": "Céréales", "stock": 9,
				"stocks": [{"id": 1, "name": "Dakar", "quantity": 4, "unit": "sac",
					"localisation": {"city": "Dakar", "latitude": "14.69", "longitude": "-17.44", "zone": "port"}}]
			}`)
		case http.MethodPut:
			raw, err := io.ReadAll(r.Body)
			require.NoError(t, err)
			require.NoError(t, json.Unmarshal(raw, &putBody))
			writeJSON(w, http.StatusOK, string(raw))
		}
	})

	product, err := client.GetProduct(context.Background(), "3")
	require.NoError(t, err)
	stock, ok := product.StockByID("1")
	require.True(t, ok)
	stock.AdjustQuantity(2)

	_, err = client.UpdateProduct(context.Background(), *product)
	require.NoError(t, err)

	assert.Equal(t, float64(3), putBody["id"])
	assert.NotContains(t, putBody, "solde")
	assert.Equal(t, "Céréales", putBody["category"])
	assert.Equal(t, float64(9), putBody["stock"])

	stocks := putBody["stocks"].([]any)
	require.Len(t, stocks, 1)
	first := stocks[0].(map[string]any)
	assert.Equal(t, float64(1), first["id"])
	assert.Equal(t, float64(6), first["quantity"])
	assert.Equal(t, "sac", first["unit"])
	assert.Equal(t, "port", first["localisation"].(map[string]any)["zone"])
}

func TestListWarehousemen(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/warehousemans", r.URL.Path)
		writeJSON(w, http.StatusOK, `[{"id": 1, "name": "Awa", "secretKey": "0", "warehouseId": 2}]`)
	})

	list, err := client.ListWarehousemen(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "0", list[0].SecretKey)
	assert.Equal(t, models.ID("2"), list[0].WarehouseID)
}

func TestGetStatisticsUsesStatisticsURL(t *testing.T) {
	stats := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/statistics", r.URL.Path)
		writeJSON(w, http.StatusOK, `{"totalProducts": 10, "lowStock": 2, "outOfStock": 1, "recentlyAdded": 3}`)
	}))
	defer stats.Close()

	client := NewClient(config.InventoryConfig{BaseURL: "http://127.0.0.1:1", StatisticsURL: stats.URL, Timeout: time.Second})

	got, err := client.GetStatistics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 10, got.TotalProducts)
	assert.Equal(t, 2, got.LowStock)
	assert.Equal(t, 1, got.OutOfStock)
	require.NotNil(t, got.RecentlyAdded)
	assert.Equal(t, 3, *got.RecentlyAdded)
}

func TestServerErrorBecomesAPIError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusInternalServerError, `{"error":"boom"}`)
	})

	_, err := client.ListProducts(context.Background())
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Contains(t, apiErr.Body, "boom")
	assert.False(t, IsNotFound(err))
}

func TestContextCancellation(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.ListProducts(ctx)
	assert.Error(t, err)
}
