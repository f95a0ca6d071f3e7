package domain

import (
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MaxQuantity caps a single line item so cart totals stay within int range.
const MaxQuantity = 999

// QuantityChange reports what SetQuantity did to a line item.
type QuantityChange int

const (
	QuantityUnchanged QuantityChange = iota
	QuantityUpdated
	QuantityRemoved
)

// Order is the cart aggregate for a single session. It is safe for
// concurrent use: mutations are serialized and reads see a consistent list.
type Order struct {
	mu    sync.RWMutex
	items []*LineItem
	newID func() uuid.UUID
}

// NewOrder returns an empty cart.
func NewOrder() *Order {
	return &Order{newID: uuid.New}
}

// WithIDGenerator overrides line item id generation for deterministic testing.
func (o *Order) WithIDGenerator(newID func() uuid.UUID) {
	if newID == nil {
		return
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	o.newID = newID
}

// AddLineItem appends a new line item for product. A quantity below one or
// above MaxQuantity is rejected without creating anything. Adding the same product twice yields
// two separate line items.
func (o *Order) AddLineItem(product Product, quantity int) (LineItem, bool) {
	if quantity <= 0 || quantity > MaxQuantity {
		return LineItem{}, false
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	item := newLineItem(o.newID(), product, quantity)
	o.items = append(o.items, item)
	return *item, true
}

// FindLineItem returns a copy of the line item with the given id.
func (o *Order) FindLineItem(id uuid.UUID) (LineItem, bool) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	if idx := o.indexOf(id); idx >= 0 {
		return *o.items[idx], true
	}
	return LineItem{}, false
}

// DeleteLineItem removes the line item with the given id. Unknown ids are ignored.
func (o *Order) DeleteLineItem(id uuid.UUID) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.removeAt(o.indexOf(id))
}

// SetQuantity replaces the quantity of a line item, removing it when the new
// quantity is zero or negative. Unknown ids and quantities above MaxQuantity
// are ignored.
func (o *Order) SetQuantity(id uuid.UUID, quantity int) QuantityChange {
	o.mu.Lock()
	defer o.mu.Unlock()
	idx := o.indexOf(id)
	if idx < 0 || quantity > MaxQuantity {
		return QuantityUnchanged
	}
	if quantity <= 0 {
		o.removeAt(idx)
		return QuantityRemoved
	}
	o.items[idx].Quantity = quantity
	return QuantityUpdated
}

// LineItems returns a copy of the line items in insertion order.
func (o *Order) LineItems() []LineItem {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.copyItems()
}

// TotalQuantity sums the quantities of all line items.
func (o *Order) TotalQuantity() int {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return totalQuantity(o.items)
}

// TotalPrice sums UnitPrice * Quantity over all line items.
func (o *Order) TotalPrice() decimal.Decimal {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return totalPrice(o.items)
}

// Snapshot captures the line items and totals under a single read lock.
func (o *Order) Snapshot() Snapshot {
	o.mu.RLock()
	defer o.mu.RUnlock()
	snap := Snapshot{
		LineItems:     o.copyItems(),
		TotalQuantity: totalQuantity(o.items),
		TotalPrice:    totalPrice(o.items),
	}
	if len(o.items) > 0 {
		snap.Currency = o.items[0].Currency
	}
	return snap
}

func (o *Order) indexOf(id uuid.UUID) int {
	for i, item := range o.items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

func (o *Order) removeAt(idx int) bool {
	if idx < 0 || idx >= len(o.items) {
		return false
	}
	o.items = append(o.items[:idx], o.items[idx+1:]...)
	return true
}

func (o *Order) copyItems() []LineItem {
	out := make([]LineItem, 0, len(o.items))
	for _, item := range o.items {
		out = append(out, *item)
	}
	return out
}

func totalQuantity(items []*LineItem) int {
	total := 0
	for _, item := range items {
		total += item.Quantity
	}
	return total
}

func totalPrice(items []*LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Subtotal())
	}
	return total
}
