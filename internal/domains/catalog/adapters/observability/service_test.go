package observability

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogmemory "github.com/Apurer/go-gin-storefront/internal/domains/catalog/adapters/memory"
	"github.com/Apurer/go-gin-storefront/internal/domains/catalog/application"
	"github.com/Apurer/go-gin-storefront/internal/domains/catalog/ports"
)

func TestGetProduct_NotFoundLogsWarn(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	inner := application.NewService(catalogmemory.NewProductRepository(), catalogmemory.NewCategoryRepository(), catalogmemory.NewSupplierRepository())
	svc := New(inner, WithLogger(logger))

	_, err := svc.GetProduct(context.Background(), 5)
	require.ErrorIs(t, err, ports.ErrNotFound)
	assert.Contains(t, buf.String(), `"level":"WARN"`)
	assert.Contains(t, buf.String(), `"product.id":5`)
}

func TestDelegatesListings(t *testing.T) {
	inner := application.NewService(catalogmemory.NewProductRepository(), catalogmemory.NewCategoryRepository(), catalogmemory.NewSupplierRepository())
	require.NoError(t, inner.Seed(context.Background()))
	svc := New(inner, nil)

	products, err := svc.ListProducts(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, products)

	supplier, byS, err := svc.ProductsBySupplier(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Amazon", supplier.Name)
	assert.Len(t, byS, 2)
}
