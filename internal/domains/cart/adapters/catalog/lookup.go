package catalog

import (
	"context"
	"errors"

	"github.com/Apurer/go-gin-storefront/internal/domains/cart/domain"
	cartports "github.com/Apurer/go-gin-storefront/internal/domains/cart/ports"
	catalogports "github.com/Apurer/go-gin-storefront/internal/domains/catalog/ports"
)

// Lookup resolves products for the cart through the catalog service.
type Lookup struct {
	catalog catalogports.Service
}

func NewLookup(catalog catalogports.Service) *Lookup {
	return &Lookup{catalog: catalog}
}

// LookupProduct copies the catalog's current default price into the cart's
// product view. The line item keeps that copy from then on.
func (l *Lookup) LookupProduct(ctx context.Context, id int64) (domain.Product, error) {
	product, err := l.catalog.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, catalogports.ErrNotFound) {
			return domain.Product{}, cartports.ErrProductNotFound
		}
		return domain.Product{}, err
	}
	return domain.Product{
		ID:        product.ID,
		Name:      product.Name,
		UnitPrice: product.DefaultPrice,
		Currency:  product.Currency,
	}, nil
}

var _ cartports.CatalogLookup = (*Lookup)(nil)
