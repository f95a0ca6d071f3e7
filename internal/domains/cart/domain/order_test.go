package domain

import (
	"fmt"
	"math"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func product(id int64, price string) Product {
	return Product{
		ID:        id,
		Name:      fmt.Sprintf("product-%d", id),
		UnitPrice: decimal.RequireFromString(price),
		Currency:  "USD",
	}
}

func TestOrder_TotalsAfterAdds(t *testing.T) {
	order := NewOrder()

	_, ok := order.AddLineItem(product(1, "10.00"), 2)
	require.True(t, ok)
	_, ok = order.AddLineItem(product(2, "5.00"), 1)
	require.True(t, ok)

	assert.Equal(t, 3, order.TotalQuantity())
	assert.True(t, decimal.RequireFromString("25.00").Equal(order.TotalPrice()))
}

func TestOrder_SetQuantityZeroRemovesLineItem(t *testing.T) {
	order := NewOrder()
	p1, _ := order.AddLineItem(product(1, "10.00"), 2)
	p2, _ := order.AddLineItem(product(2, "5.00"), 1)

	change := order.SetQuantity(p1.ID, 0)

	assert.Equal(t, QuantityRemoved, change)
	_, found := order.FindLineItem(p1.ID)
	assert.False(t, found)
	items := order.LineItems()
	require.Len(t, items, 1)
	assert.Equal(t, p2.ID, items[0].ID)
	assert.True(t, decimal.RequireFromString("5.00").Equal(order.TotalPrice()))
}

func TestOrder_SetQuantityNegativeRemovesLineItem(t *testing.T) {
	order := NewOrder()
	item, _ := order.AddLineItem(product(1, "3.50"), 4)

	assert.Equal(t, QuantityRemoved, order.SetQuantity(item.ID, -1))
	_, found := order.FindLineItem(item.ID)
	assert.False(t, found)
	assert.Zero(t, order.TotalQuantity())
}

func TestOrder_SetQuantityUpdates(t *testing.T) {
	order := NewOrder()
	item, _ := order.AddLineItem(product(1, "2.00"), 1)

	assert.Equal(t, QuantityUpdated, order.SetQuantity(item.ID, 7))
	found, ok := order.FindLineItem(item.ID)
	require.True(t, ok)
	assert.Equal(t, 7, found.Quantity)
	assert.True(t, decimal.RequireFromString("14.00").Equal(order.TotalPrice()))
}

func TestOrder_SetQuantityUnknownIDIsNoop(t *testing.T) {
	order := NewOrder()
	order.AddLineItem(product(1, "2.00"), 1)

	assert.Equal(t, QuantityUnchanged, order.SetQuantity(uuid.New(), 0))
	assert.Len(t, order.LineItems(), 1)
}

func TestOrder_DeleteUnknownIDIsNoop(t *testing.T) {
	order := NewOrder()
	order.AddLineItem(product(1, "2.00"), 3)
	before := order.Snapshot()

	assert.False(t, order.DeleteLineItem(uuid.New()))
	after := order.Snapshot()
	assert.Equal(t, before.LineItems, after.LineItems)
	assert.Equal(t, before.TotalQuantity, after.TotalQuantity)
	assert.True(t, before.TotalPrice.Equal(after.TotalPrice))
}

func TestOrder_DeleteLineItem(t *testing.T) {
	order := NewOrder()
	item, _ := order.AddLineItem(product(1, "2.00"), 3)

	assert.True(t, order.DeleteLineItem(item.ID))
	assert.Empty(t, order.LineItems())
	assert.True(t, order.Snapshot().IsEmpty())
}

func TestOrder_AddRejectsNonPositiveQuantity(t *testing.T) {
	order := NewOrder()

	_, ok := order.AddLineItem(product(1, "2.00"), 0)
	assert.False(t, ok)
	_, ok = order.AddLineItem(product(1, "2.00"), -3)
	assert.False(t, ok)
	assert.Empty(t, order.LineItems())
}

func TestOrder_QuantityAboveMaxIsRejected(t *testing.T) {
	order := NewOrder()

	_, ok := order.AddLineItem(product(1, "2.00"), math.MaxInt)
	assert.False(t, ok)
	_, ok = order.AddLineItem(product(1, "2.00"), MaxQuantity+1)
	assert.False(t, ok)

	item, ok := order.AddLineItem(product(1, "2.00"), MaxQuantity)
	require.True(t, ok)
	_, ok = order.AddLineItem(product(2, "1.00"), 1)
	require.True(t, ok)

	assert.Equal(t, QuantityUnchanged, order.SetQuantity(item.ID, math.MaxInt))
	assert.Equal(t, MaxQuantity+1, order.TotalQuantity())
	assert.Equal(t, "1999.00", order.TotalPrice().StringFixed(2))
}

func TestOrder_SameProductTwiceCreatesTwoLineItems(t *testing.T) {
	order := NewOrder()
	first, _ := order.AddLineItem(product(1, "2.00"), 1)
	second, _ := order.AddLineItem(product(1, "2.00"), 1)

	assert.NotEqual(t, first.ID, second.ID)
	items := order.LineItems()
	require.Len(t, items, 2)
	assert.Equal(t, first.ID, items[0].ID)
	assert.Equal(t, second.ID, items[1].ID)
}

func TestOrder_PriceIsSnapshotAtAddTime(t *testing.T) {
	order := NewOrder()
	p := product(1, "10.00")
	item, _ := order.AddLineItem(p, 1)

	p.UnitPrice = decimal.RequireFromString("99.00")

	found, _ := order.FindLineItem(item.ID)
	assert.True(t, decimal.RequireFromString("10.00").Equal(found.UnitPrice))
}

func TestOrder_LineItemsReturnsCopies(t *testing.T) {
	order := NewOrder()
	item, _ := order.AddLineItem(product(1, "1.00"), 1)

	items := order.LineItems()
	items[0].Quantity = 50

	found, _ := order.FindLineItem(item.ID)
	assert.Equal(t, 1, found.Quantity)
}

func TestOrder_TotalQuantityMatchesRemainingItems(t *testing.T) {
	order := NewOrder()
	var ids []uuid.UUID
	for i := 1; i <= 10; i++ {
		item, _ := order.AddLineItem(product(int64(i), "1.00"), i)
		ids = append(ids, item.ID)
	}
	order.DeleteLineItem(ids[0])
	order.SetQuantity(ids[1], 0)

	sum := 0
	for _, item := range order.LineItems() {
		sum += item.Quantity
	}
	assert.Equal(t, sum, order.TotalQuantity())
	assert.Equal(t, 55-1-2, order.TotalQuantity())
}

func TestOrder_ConcurrentAddsAreNotLost(t *testing.T) {
	const n = 200
	order := NewOrder()

	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(id int64) {
			defer wg.Done()
			order.AddLineItem(product(id, "1.00"), 1)
		}(int64(i + 1))
	}
	wg.Wait()

	assert.Len(t, order.LineItems(), n)
	assert.Equal(t, n, order.TotalQuantity())
}

func TestOrder_WithIDGenerator(t *testing.T) {
	order := NewOrder()
	fixed := uuid.MustParse("6f1c4b8e-0a7e-4a39-9a53-1e6a2b0f3c11")
	order.WithIDGenerator(func() uuid.UUID { return fixed })

	item, ok := order.AddLineItem(product(1, "1.00"), 1)
	require.True(t, ok)
	assert.Equal(t, fixed, item.ID)
}
