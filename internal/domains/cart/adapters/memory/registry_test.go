package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-gin-storefront/internal/domains/cart/domain"
)

var testProduct = domain.Product{ID: 1, Name: "Amazon Fire", UnitPrice: decimal.NewFromInt(49), Currency: "USD"}

func TestRegistry_SameSessionReturnsSameOrder(t *testing.T) {
	reg := NewRegistry()
	ctx := context.Background()

	first := reg.GetOrder(ctx, "session-a")
	first.AddLineItem(testProduct, 2)

	second := reg.GetOrder(ctx, "session-a")
	require.Same(t, first, second)
	assert.Equal(t, 2, second.TotalQuantity())
}

func TestRegistry_SessionsAreIsolated(t *testing.T) {
	reg := NewRegistry()
	ctx := context.Background()

	a := reg.GetOrder(ctx, "session-a")
	b := reg.GetOrder(ctx, "session-b")
	a.AddLineItem(testProduct, 3)

	assert.NotSame(t, a, b)
	assert.Zero(t, b.TotalQuantity())
	assert.Empty(t, b.LineItems())
	assert.Equal(t, 2, reg.Len())
}

func TestRegistry_EvictsLeastRecentlyUsedBeyondCapacity(t *testing.T) {
	reg := NewRegistry(WithMaxSessions(2))
	ctx := context.Background()

	reg.GetOrder(ctx, "a").AddLineItem(testProduct, 1)
	reg.GetOrder(ctx, "b")
	reg.GetOrder(ctx, "a")
	reg.GetOrder(ctx, "c")

	assert.Equal(t, 2, reg.Len())
	assert.Equal(t, 1, reg.GetOrder(ctx, "a").TotalQuantity(), "recently used cart must survive")
}

func TestRegistry_ExpiresIdleSessions(t *testing.T) {
	reg := NewRegistry(WithIdleTTL(20 * time.Millisecond))
	ctx := context.Background()

	reg.GetOrder(ctx, "idle").AddLineItem(testProduct, 1)
	time.Sleep(60 * time.Millisecond)

	assert.Zero(t, reg.GetOrder(ctx, "idle").TotalQuantity())
}

func TestRegistry_Forget(t *testing.T) {
	reg := NewRegistry()
	ctx := context.Background()

	reg.GetOrder(ctx, "gone").AddLineItem(testProduct, 1)
	reg.Forget(ctx, "gone")

	assert.Zero(t, reg.GetOrder(ctx, "gone").TotalQuantity())
}

func TestRegistry_ConcurrentFirstAccessCreatesOneOrder(t *testing.T) {
	const n = 100
	reg := NewRegistry()
	ctx := context.Background()

	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			p := testProduct
			p.ID = int64(i + 1)
			p.Name = fmt.Sprintf("product-%d", i)
			reg.GetOrder(ctx, "shared").AddLineItem(p, 1)
		}(i)
	}
	wg.Wait()

	order := reg.GetOrder(ctx, "shared")
	assert.Len(t, order.LineItems(), n)
	assert.Equal(t, n, order.TotalQuantity())
}
