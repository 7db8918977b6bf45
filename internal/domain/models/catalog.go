package models

import (
	"sort"
	"strings"
)

// SortKey enumerates the product list orderings.
type SortKey string

const (
	SortNone      SortKey = ""
	SortName      SortKey = "name"
	SortPriceAsc  SortKey = "price-asc"
	SortPriceDesc SortKey = "price-desc"
	SortQuantity  SortKey = "quantity"
)

// ParseSortKey maps a query string value to a SortKey. Unknown values fall
// back to SortNone and ok is false.
func ParseSortKey(raw string) (SortKey, bool) {
	switch key := SortKey(strings.ToLower(strings.TrimSpace(raw))); key {
	case SortNone, SortName, SortPriceAsc, SortPriceDesc, SortQuantity:
		return key, true
	default:
		return SortNone, false
	}
}

// ListQuery describes the product list filters.
type ListQuery struct {
	Search   string
	Category string
	Sort     SortKey
}

// ApplyQuery filters then sorts products. The input slice is left untouched.
func ApplyQuery(products []Product, q ListQuery) []Product {
	return SortProducts(FilterProducts(products, q), q.Sort)
}

// FilterProducts keeps products whose name, type or supplier contains the
// search term, and whose type equals the category when one is given. Both
// comparisons ignore case.
func FilterProducts(products []Product, q ListQuery) []Product {
	search := strings.ToLower(strings.TrimSpace(q.Search))
	category := strings.TrimSpace(q.Category)

	out := make([]Product, 0, len(products))
	for _, p := range products {
		if category != "" && !strings.EqualFold(p.Type, category) {
			continue
		}
		if search != "" && !matchesSearch(p, search) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func matchesSearch(p Product, needle string) bool {
	return strings.Contains(strings.ToLower(p.Name), needle) ||
		strings.Contains(strings.ToLower(p.Type), needle) ||
		strings.Contains(strings.ToLower(p.Supplier), needle)
}

// SortProducts returns a sorted copy. Ties keep their input order.
func SortProducts(products []Product, key SortKey) []Product {
	out := make([]Product, len(products))
	copy(out, products)

	var less func(a, b Product) bool
	switch key {
	case SortName:
		less = func(a, b Product) bool { return strings.ToLower(a.Name) < strings.ToLower(b.Name) }
	case SortPriceAsc:
		less = func(a, b Product) bool { return a.Price.LessThan(b.Price) }
	case SortPriceDesc:
		less = func(a, b Product) bool { return a.Price.GreaterThan(b.Price) }
	case SortQuantity:
		less = func(a, b Product) bool { return a.TotalQuantity() > b.TotalQuantity() }
	default:
		return out
	}

	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

// Categories lists the distinct product types, sorted.
func Categories(products []Product) []string {
	seen := make(map[string]struct{}, len(products))
	out := make([]string, 0)
	for _, p := range products {
		t := strings.TrimSpace(p.Type)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// FindByBarcode returns the first product carrying the scanned code.
func FindByBarcode(products []Product, code string) (Product, bool) {
	code = strings.TrimSpace(code)
	if code == "" {
		return Product{}, false
	}
	for _, p := range products {
		if p.Barcode == code {
			return p, true
		}
	}
	return Product{}, false
}
