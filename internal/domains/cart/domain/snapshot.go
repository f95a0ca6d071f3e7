package domain

import "github.com/shopspring/decimal"

// Snapshot is a point-in-time, read-only view of an Order.
type Snapshot struct {
	LineItems     []LineItem
	TotalQuantity int
	TotalPrice    decimal.Decimal
	// Currency is taken from the first line item; empty for an empty cart.
	Currency string
	// Change records what the mutation that produced this snapshot did to its
	// target line item. Reads leave it QuantityUnchanged.
	Change QuantityChange
}

// IsEmpty reports whether the cart total is zero, which is what the
// storefront treats as "nothing to show".
func (s Snapshot) IsEmpty() bool {
	return s.TotalPrice.IsZero()
}
