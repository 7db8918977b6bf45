package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
)

func init() {
	// The inventory API stores prices as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// ID is a remote identifier. The inventory API emits ids either as JSON numbers
// or as strings depending on how the record was created, so both are accepted.
type ID string

// UnmarshalJSON accepts quoted and bare identifiers.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid id %s: %w", string(data), err)
	}
	*id = ID(n.String())
	return nil
}

// MarshalJSON writes integer ids as JSON numbers and anything else as a string.
func (id ID) MarshalJSON() ([]byte, error) {
	if n, err := strconv.ParseInt(string(id), 10, 64); err == nil && strconv.FormatInt(n, 10) == string(id) {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

// String returns the identifier as plain text.
func (id ID) String() string { return string(id) }

// Product is a catalog item with its per-warehouse stock entries. Keys of the
// fetched record that are not modelled here are written back unchanged.
type Product struct {
	ID              ID                  `json:"id,omitempty"`
	Name            string              `json:"name"`
	Type            string              `json:"type"`
	Barcode         string              `json:"barcode"`
	Price           decimal.Decimal     `json:"price"`
	DiscountedPrice decimal.NullDecimal `json:"solde,omitzero"`
	Supplier        string              `json:"supplier"`
	Image           string              `json:"image,omitempty"`
	Stocks          []Stock             `json:"stocks"`
	EditedBy        []EditMark          `json:"editedBy,omitempty"`

	raw document
}

// UnmarshalJSON decodes the modelled fields and keeps the whole record.
func (p *Product) UnmarshalJSON(data []byte) error {
	type plain Product
	var decoded plain
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	raw, err := decodeDocument(data)
	if err != nil {
		return err
	}
	*p = Product(decoded)
	p.raw = raw
	return nil
}

// MarshalJSON encodes the modelled fields over the record it was decoded from.
func (p Product) MarshalJSON() ([]byte, error) {
	type plain Product
	return p.raw.merge(plain(p), p.ID)
}

// Stock is the quantity of a product held at one warehouse.
type Stock struct {
	ID           ID           `json:"id"`
	Name         string       `json:"name"`
	Quantity     int          `json:"quantity"`
	Localisation Localisation `json:"localisation"`

	raw document
}

func (s *Stock) UnmarshalJSON(data []byte) error {
	type plain Stock
	var decoded plain
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	raw, err := decodeDocument(data)
	if err != nil {
		return err
	}
	*s = Stock(decoded)
	s.raw = raw
	return nil
}

func (s Stock) MarshalJSON() ([]byte, error) {
	type plain Stock
	return s.raw.merge(plain(s), s.ID)
}

// Localisation locates a warehouse. Coordinates are kept as the free-form
// strings the API stores.
type Localisation struct {
	City      string `json:"city"`
	Latitude  string `json:"latitude"`
	Longitude string `json:"longitude"`

	raw document
}

func (l *Localisation) UnmarshalJSON(data []byte) error {
	type plain Localisation
	var decoded plain
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	raw, err := decodeDocument(data)
	if err != nil {
		return err
	}
	*l = Localisation(decoded)
	l.raw = raw
	return nil
}

func (l Localisation) MarshalJSON() ([]byte, error) {
	type plain Localisation
	return l.raw.merge(plain(l), "")
}

// EditMark records which warehouseman last touched a product and when.
type EditMark struct {
	WarehousemanID ID     `json:"warehousemanId"`
	At             string `json:"at"`
}

// TotalQuantity sums the quantities of every stock entry.
func (p Product) TotalQuantity() int {
	total := 0
	for _, s := range p.Stocks {
		total += s.Quantity
	}
	return total
}

// EffectivePrice is the discounted price when one is set, the list price otherwise.
func (p Product) EffectivePrice() decimal.Decimal {
	if p.DiscountedPrice.Valid {
		return p.DiscountedPrice.Decimal
	}
	return p.Price
}

// StockByID returns a pointer into p.Stocks for in-place updates.
func (p *Product) StockByID(id ID) (*Stock, bool) {
	for i := range p.Stocks {
		if p.Stocks[i].ID == id {
			return &p.Stocks[i], true
		}
	}
	return nil, false
}

// MarkEdited appends an edit mark for the given warehouseman.
func (p *Product) MarkEdited(warehousemanID ID, at time.Time) {
	if warehousemanID == "" {
		return
	}
	p.EditedBy = append(p.EditedBy, EditMark{WarehousemanID: warehousemanID, At: at.Format(DateLayout)})
}

// AdjustQuantity applies delta and returns the new quantity. Quantities never
// go below zero.
func (s *Stock) AdjustQuantity(delta int) int {
	next := s.Quantity + delta
	if next < 0 {
		next = 0
	}
	s.Quantity = next
	return next
}

// Coordinates parses the latitude/longitude strings.
func (s Stock) Coordinates() (lat, lng float64, err error) {
	lat, err = cast.ToFloat64E(strings.TrimSpace(s.Localisation.Latitude))
	if err != nil {
		return 0, 0, fmt.Errorf("latitude %q: %w", s.Localisation.Latitude, err)
	}
	lng, err = cast.ToFloat64E(strings.TrimSpace(s.Localisation.Longitude))
	if err != nil {
		return 0, 0, fmt.Errorf("longitude %q: %w", s.Localisation.Longitude, err)
	}
	return lat, lng, nil
}

// DateLayout is the date format used in edit marks.
const DateLayout = "2006-01-02"

var (
	// ErrMissingField is returned by NewProduct.Validate for absent required fields.
	ErrMissingField = errors.New("missing required field")
	// ErrNegativeQuantity is returned when a stock entry is created below zero.
	ErrNegativeQuantity = errors.New("negative stock quantity")
)

// NewProduct is the payload of the product creation form.
type NewProduct struct {
	Name            string              `json:"name" binding:"required"`
	Type            string              `json:"type" binding:"required"`
	Barcode         string              `json:"barcode" binding:"required"`
	Price           decimal.Decimal     `json:"price"`
	DiscountedPrice decimal.NullDecimal `json:"solde"`
	Supplier        string              `json:"supplier" binding:"required"`
	Image           string              `json:"image"`
	Stocks          []Stock             `json:"stocks"`
}

// Validate performs presence checks only.
func (n NewProduct) Validate() error {
	switch {
	case strings.TrimSpace(n.Name) == "":
		return fmt.Errorf("%w: name", ErrMissingField)
	case strings.TrimSpace(n.Type) == "":
		return fmt.Errorf("%w: type", ErrMissingField)
	case strings.TrimSpace(n.Barcode) == "":
		return fmt.Errorf("%w: barcode", ErrMissingField)
	case strings.TrimSpace(n.Supplier) == "":
		return fmt.Errorf("%w: supplier", ErrMissingField)
	case !n.Price.IsPositive():
		return fmt.Errorf("%w: price", ErrMissingField)
	}

	for _, s := range n.Stocks {
		if s.Quantity < 0 {
			return fmt.Errorf("%w: %q has %d", ErrNegativeQuantity, s.Name, s.Quantity)
		}
	}
	return nil
}

// Product converts the form payload into a product ready to be posted.
func (n NewProduct) Product() Product {
	stocks := n.Stocks
	if stocks == nil {
		stocks = []Stock{}
	}
	return Product{
		Name:            strings.TrimSpace(n.Name),
		Type:            strings.TrimSpace(n.Type),
		Barcode:         strings.TrimSpace(n.Barcode),
		Price:           n.Price,
		DiscountedPrice: n.DiscountedPrice,
		Supplier:        strings.TrimSpace(n.Supplier),
		Image:           n.Image,
		Stocks:          stocks,
	}
}
