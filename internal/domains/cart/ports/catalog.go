package ports

import (
	"context"
	"errors"

	"github.com/Apurer/go-gin-storefront/internal/domains/cart/domain"
)

// ErrProductNotFound is returned by CatalogLookup for unknown product ids.
var ErrProductNotFound = errors.New("product not found")

// CatalogLookup resolves a product id to the attributes needed to price a line item.
type CatalogLookup interface {
	LookupProduct(ctx context.Context, id int64) (domain.Product, error)
}
