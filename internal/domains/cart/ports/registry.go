package ports

import (
	"context"

	"github.com/Apurer/go-gin-storefront/internal/domains/cart/domain"
)

// Registry owns one Order per session id, creating it on first access.
// Repeated calls with the same id return the same Order.
type Registry interface {
	GetOrder(ctx context.Context, sessionID string) *domain.Order
}
