package redis

import (
	"context"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogmemory "github.com/Apurer/go-gin-storefront/internal/domains/catalog/adapters/memory"
	"github.com/Apurer/go-gin-storefront/internal/domains/catalog/application"
	"github.com/Apurer/go-gin-storefront/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/catalog/ports"
)

func newInner(t *testing.T) (*application.Service, *catalogmemory.ProductRepository) {
	t.Helper()
	products := catalogmemory.NewProductRepository()
	svc := application.NewService(products, catalogmemory.NewCategoryRepository(), catalogmemory.NewSupplierRepository())
	p, err := domain.NewProduct(0, "Amazon Fire", "", decimal.RequireFromString("49.90"), "USD", 0, 0)
	require.NoError(t, err)
	_, err = products.Save(context.Background(), p)
	require.NoError(t, err)
	return svc, products
}

func unreachableClient() *goredis.Client {
	return goredis.NewClient(&goredis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
}

func TestGetProduct_FallsThroughWhenCacheUnavailable(t *testing.T) {
	inner, _ := newInner(t)
	client := unreachableClient()
	t.Cleanup(func() { _ = client.Close() })
	svc := New(inner, client)

	product, err := svc.GetProduct(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Amazon Fire", product.Name)
}

func TestGetProduct_PropagatesNotFound(t *testing.T) {
	inner, _ := newInner(t)
	client := unreachableClient()
	t.Cleanup(func() { _ = client.Close() })
	svc := New(inner, client)

	_, err := svc.GetProduct(context.Background(), 99)
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestCachedProduct_RoundTripKeepsPrice(t *testing.T) {
	p := &domain.Product{ID: 7, Name: "MacBook Air", DefaultPrice: decimal.RequireFromString("999.00"), Currency: "USD", CategoryID: 2, SupplierID: 3}

	got := fromDomain(p).toDomain()
	assert.Equal(t, p.Name, got.Name)
	assert.Equal(t, p.CategoryID, got.CategoryID)
	assert.True(t, p.DefaultPrice.Equal(got.DefaultPrice))
	assert.Equal(t, "storefront:catalog:product:7", productKey(7))
}
