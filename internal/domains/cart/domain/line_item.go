package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is the catalog data a cart needs to price a line item.
type Product struct {
	ID        int64
	Name      string
	UnitPrice decimal.Decimal
	Currency  string
}

// LineItem is one product entry in a cart. UnitPrice is captured when the
// item is added and does not follow later catalog price changes.
type LineItem struct {
	ID          uuid.UUID
	ProductID   int64
	ProductName string
	UnitPrice   decimal.Decimal
	Currency    string
	Quantity    int
}

// Subtotal returns UnitPrice * Quantity.
func (l LineItem) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

func newLineItem(id uuid.UUID, product Product, quantity int) *LineItem {
	return &LineItem{
		ID:          id,
		ProductID:   product.ID,
		ProductName: product.Name,
		UnitPrice:   product.UnitPrice,
		Currency:    product.Currency,
		Quantity:    quantity,
	}
}
