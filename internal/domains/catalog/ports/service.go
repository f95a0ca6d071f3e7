package ports

import (
	"context"

	"github.com/Apurer/go-gin-storefront/internal/domains/catalog/domain"
)

// Service exposes catalog browsing use cases to adapters.
type Service interface {
	ListProducts(ctx context.Context) ([]*domain.Product, error)
	ProductsByCategory(ctx context.Context, categoryID int64) (*domain.Category, []*domain.Product, error)
	ProductsBySupplier(ctx context.Context, supplierID int64) (*domain.Supplier, []*domain.Product, error)
	Categories(ctx context.Context) ([]*domain.Category, error)
	Suppliers(ctx context.Context) ([]*domain.Supplier, error)
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
}
