package application

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Apurer/go-gin-storefront/internal/domains/catalog/domain"
)

type seedProduct struct {
	name, description, price string
	category, supplier       int
}

var (
	seedCategories = []struct{ name, department, description string }{
		{"Tablet", "Hardware", "A tablet computer, commonly shortened to tablet, is a thin, flat mobile computer with a touchscreen display."},
		{"Laptop", "Hardware", "A portable personal computer with a clamshell form factor."},
		{"Phone", "Hardware", "A handheld device for calls, messages and apps."},
	}
	seedSuppliers = []struct{ name, description string }{
		{"Amazon", "Digital content and services"},
		{"Lenovo", "Computers"},
		{"Apple", "Consumer electronics"},
	}
	seedProducts = []seedProduct{
		{"Amazon Fire", "Fantastic price. Large content ecosystem. Good parental controls. Helpful technical support.", "49.90", 0, 0},
		{"Lenovo IdeaPad Miix 700", "Keyboard cover is included. Fanless Core m5 processor. Full-size USB ports. Adjustable kickstand.", "479.00", 0, 1},
		{"Amazon Fire HD 8", "Amazon's latest Fire HD 8 tablet is a great value for media consumption.", "89.00", 0, 0},
		{"Lenovo ThinkPad X1", "Light business laptop with a great keyboard.", "1299.00", 1, 1},
		{"MacBook Air", "Thin and light laptop with all-day battery life.", "999.00", 1, 2},
		{"iPhone SE", "Compact phone with a fast chip.", "429.00", 2, 2},
	}
)

// Seed fills an empty catalog with demo categories, suppliers and products.
// It does nothing when any product already exists.
func (s *Service) Seed(ctx context.Context) error {
	existing, err := s.products.List(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}
	categoryIDs := make([]int64, 0, len(seedCategories))
	for _, c := range seedCategories {
		category, err := domain.NewCategory(0, c.name, c.department, c.description)
		if err != nil {
			return mapError(err)
		}
		saved, err := s.categories.Save(ctx, category)
		if err != nil {
			return fmt.Errorf("seed category %q: %w", c.name, err)
		}
		categoryIDs = append(categoryIDs, saved.ID)
	}
	supplierIDs := make([]int64, 0, len(seedSuppliers))
	for _, sp := range seedSuppliers {
		supplier, err := domain.NewSupplier(0, sp.name, sp.description)
		if err != nil {
			return mapError(err)
		}
		saved, err := s.suppliers.Save(ctx, supplier)
		if err != nil {
			return fmt.Errorf("seed supplier %q: %w", sp.name, err)
		}
		supplierIDs = append(supplierIDs, saved.ID)
	}
	for _, p := range seedProducts {
		product, err := domain.NewProduct(0, p.name, p.description, decimal.RequireFromString(p.price), "USD",
			categoryIDs[p.category], supplierIDs[p.supplier])
		if err != nil {
			return mapError(err)
		}
		if _, err := s.products.Save(ctx, product); err != nil {
			return fmt.Errorf("seed product %q: %w", p.name, err)
		}
	}
	return nil
}
