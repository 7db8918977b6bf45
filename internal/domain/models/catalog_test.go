package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleProducts() []Product {
	return []Product{
		{ID: "1", Name: "Riz parfumé", Type: "Alimentaire", Supplier: "SenAgri", Barcode: "111", Price: decimal.NewFromInt(12000),
			Stocks: []Stock{{ID: "1", Name: "Dakar", Quantity: 5}, {ID: "2", Name: "Thiès", Quantity: 7}}},
		{ID: "2", Name: "cable HDMI", Type: "Electronique", Supplier: "TechPro", Barcode: "222", Price: decimal.NewFromInt(3500),
			Stocks: []Stock{{ID: "1", Name: "Dakar", Quantity: 40}}},
		{ID: "3", Name: "Huile", Type: "alimentaire", Supplier: "Lesieur", Barcode: "333", Price: decimal.NewFromInt(3500),
			Stocks: nil},
		{ID: "4", Name: "Ampoule LED", Type: "Electronique", Supplier: "Philips", Barcode: "444", Price: decimal.RequireFromString("1500.50"),
			Stocks: []Stock{{ID: "1", Name: "Thiès", Quantity: 12}}},
	}
}

func ids(products []Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.ID.String())
	}
	return out
}

func TestFilterProducts(t *testing.T) {
	products := sampleProducts()

	tests := []struct {
		name  string
		query ListQuery
		want  []string
	}{
		{name: "empty query keeps everything", query: ListQuery{}, want: []string{"1", "2", "3", "4"}},
		{name: "search matches name case-insensitively", query: ListQuery{Search: "HDMI"}, want: []string{"2"}},
		{name: "search matches type", query: ListQuery{Search: "aliment"}, want: []string{"1", "3"}},
		{name: "search matches supplier", query: ListQuery{Search: "philips"}, want: []string{"4"}},
		{name: "search is trimmed", query: ListQuery{Search: "  huile "}, want: []string{"3"}},
		{name: "category equality ignores case", query: ListQuery{Category: "ALIMENTAIRE"}, want: []string{"1", "3"}},
		{name: "category is not a substring match", query: ListQuery{Category: "Elec"}, want: []string{}},
		{name: "search and category combine", query: ListQuery{Search: "led", Category: "Electronique"}, want: []string{"4"}},
		{name: "no match", query: ListQuery{Search: "zzz"}, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(FilterProducts(products, tt.query)))
		})
	}
}

func TestSortProducts(t *testing.T) {
	products := sampleProducts()

	tests := []struct {
		key  SortKey
		want []string
	}{
		{key: SortNone, want: []string{"1", "2", "3", "4"}},
		{key: SortName, want: []string{"4", "2", "3", "1"}},
		// 2 and 3 share a price; input order is kept.
		{key: SortPriceAsc, want: []string{"4", "2", "3", "1"}},
		{key: SortPriceDesc, want: []string{"1", "2", "3", "4"}},
		{key: SortQuantity, want: []string{"2", "1", "4", "3"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.key), func(t *testing.T) {
			assert.Equal(t, tt.want, ids(SortProducts(products, tt.key)))
		})
	}
}

func TestApplyQueryDoesNotMutateInput(t *testing.T) {
	products := sampleProducts()
	before := ids(products)

	out := ApplyQuery(products, ListQuery{Sort: SortName})
	require.Len(t, out, 4)
	assert.Equal(t, before, ids(products))

	again := ApplyQuery(products, ListQuery{Sort: SortName})
	assert.Equal(t, ids(out), ids(again))
}

func TestParseSortKey(t *testing.T) {
	key, ok := ParseSortKey(" Price-Desc ")
	assert.True(t, ok)
	assert.Equal(t, SortPriceDesc, key)

	key, ok = ParseSortKey("")
	assert.True(t, ok)
	assert.Equal(t, SortNone, key)

	_, ok = ParseSortKey("stock")
	assert.False(t, ok)
}

func TestCategories(t *testing.T) {
	products := append(sampleProducts(), Product{ID: "5", Type: "  "})
	assert.Equal(t, []string{"Alimentaire", "Electronique", "alimentaire"}, Categories(products))
	assert.Empty(t, Categories(nil))
}

func TestFindByBarcode(t *testing.T) {
	p, ok := FindByBarcode(sampleProducts(), " 333 ")
	require.True(t, ok)
	assert.Equal(t, "Huile", p.Name)

	_, ok = FindByBarcode(sampleProducts(), "999")
	assert.False(t, ok)

	_, ok = FindByBarcode(sampleProducts(), "")
	assert.False(t, ok)
}
