package application

import (
	"context"

	"github.com/Apurer/go-gin-storefront/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/catalog/ports"
)

// Service orchestrates catalog browsing on top of the three repositories.
type Service struct {
	products   ports.ProductRepository
	categories ports.CategoryRepository
	suppliers  ports.SupplierRepository
}

func NewService(products ports.ProductRepository, categories ports.CategoryRepository, suppliers ports.SupplierRepository) *Service {
	return &Service{products: products, categories: categories, suppliers: suppliers}
}

func (s *Service) ListProducts(ctx context.Context) ([]*domain.Product, error) {
	return s.products.List(ctx)
}

// ProductsByCategory returns the category along with its products. An
// unknown category yields ports.ErrNotFound.
func (s *Service) ProductsByCategory(ctx context.Context, categoryID int64) (*domain.Category, []*domain.Product, error) {
	category, err := s.categories.GetByID(ctx, categoryID)
	if err != nil {
		return nil, nil, err
	}
	products, err := s.products.ListByCategory(ctx, category.ID)
	if err != nil {
		return nil, nil, err
	}
	return category, products, nil
}

// ProductsBySupplier returns the supplier along with its products.
func (s *Service) ProductsBySupplier(ctx context.Context, supplierID int64) (*domain.Supplier, []*domain.Product, error) {
	supplier, err := s.suppliers.GetByID(ctx, supplierID)
	if err != nil {
		return nil, nil, err
	}
	products, err := s.products.ListBySupplier(ctx, supplier.ID)
	if err != nil {
		return nil, nil, err
	}
	return supplier, products, nil
}

func (s *Service) Categories(ctx context.Context) ([]*domain.Category, error) {
	return s.categories.List(ctx)
}

func (s *Service) Suppliers(ctx context.Context) ([]*domain.Supplier, error) {
	return s.suppliers.List(ctx)
}

func (s *Service) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	if id <= 0 {
		return nil, ports.ErrNotFound
	}
	return s.products.GetByID(ctx, id)
}

var _ ports.Service = (*Service)(nil)
