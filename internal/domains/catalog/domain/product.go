package domain

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrEmptyName       = errors.New("name is required")
	ErrNegativePrice   = errors.New("price must not be negative")
	ErrInvalidCurrency = errors.New("currency must be a three-letter ISO code")
)

// Product is a sellable catalog entry.
type Product struct {
	ID           int64
	Name         string
	Description  string
	DefaultPrice decimal.Decimal
	Currency     string
	CategoryID   int64
	SupplierID   int64
}

// NewProduct validates and constructs a product.
func NewProduct(id int64, name, description string, price decimal.Decimal, currency string, categoryID, supplierID int64) (*Product, error) {
	p := &Product{
		ID:           id,
		Name:         strings.TrimSpace(name),
		Description:  strings.TrimSpace(description),
		DefaultPrice: price,
		Currency:     strings.ToUpper(strings.TrimSpace(currency)),
		CategoryID:   categoryID,
		SupplierID:   supplierID,
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate enforces product invariants.
func (p *Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrEmptyName
	}
	if p.DefaultPrice.IsNegative() {
		return ErrNegativePrice
	}
	if !isCurrencyCode(p.Currency) {
		return ErrInvalidCurrency
	}
	return nil
}

// Price renders the default price with its currency, e.g. "49.90 USD".
func (p *Product) Price() string {
	return p.DefaultPrice.StringFixed(2) + " " + p.Currency
}

func isCurrencyCode(code string) bool {
	if len(code) != 3 {
		return false
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}
