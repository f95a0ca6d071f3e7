package ports

import (
	"context"

	"github.com/Apurer/go-gin-storefront/internal/domains/cart/domain"
)

// Service exposes cart use cases to adapters. Identifiers and quantities
// arrive in their raw request form and are validated by the implementation.
type Service interface {
	RenderCart(ctx context.Context, sessionID string) (*domain.Snapshot, error)
	DeleteItem(ctx context.Context, sessionID, lineItemID string) (*domain.Snapshot, error)
	EditItem(ctx context.Context, sessionID, lineItemID, quantity string) (*domain.Snapshot, error)
	AddItem(ctx context.Context, sessionID string, productID int64, quantity int) (*domain.Snapshot, error)
	Summary(ctx context.Context, sessionID string) (int, error)
}
