package application

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/Apurer/go-gin-storefront/internal/domains/cart/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/cart/ports"
)

var (
	errEmptySession     = errors.New("session id is required")
	errQuantityTooLarge = fmt.Errorf("must not exceed %d", domain.MaxQuantity)
)

// Service orchestrates cart use cases on top of the session registry.
type Service struct {
	registry ports.Registry
	catalog  ports.CatalogLookup
}

// NewService wires the cart service with its collaborators.
func NewService(registry ports.Registry, catalog ports.CatalogLookup) *Service {
	return &Service{registry: registry, catalog: catalog}
}

// RenderCart returns the session's cart. When the total is zero the snapshot
// is returned together with ErrEmptyCart.
func (s *Service) RenderCart(ctx context.Context, sessionID string) (*domain.Snapshot, error) {
	order, err := s.order(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	snap := order.Snapshot()
	if snap.IsEmpty() {
		return &snap, ErrEmptyCart
	}
	return &snap, nil
}

// DeleteItem removes a line item; unknown ids leave the cart unchanged.
func (s *Service) DeleteItem(ctx context.Context, sessionID, lineItemID string) (*domain.Snapshot, error) {
	order, err := s.order(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	id, err := parseLineItemID(lineItemID)
	if err != nil {
		return nil, err
	}
	removed := order.DeleteLineItem(id)
	snap := order.Snapshot()
	if removed {
		snap.Change = domain.QuantityRemoved
	}
	return &snap, nil
}

// EditItem sets a line item's quantity, deleting it when the quantity drops to zero or below.
func (s *Service) EditItem(ctx context.Context, sessionID, lineItemID, quantity string) (*domain.Snapshot, error) {
	order, err := s.order(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	id, err := parseLineItemID(lineItemID)
	if err != nil {
		return nil, err
	}
	qty, err := parseQuantity(quantity)
	if err != nil {
		return nil, err
	}
	change := order.SetQuantity(id, qty)
	snap := order.Snapshot()
	snap.Change = change
	return &snap, nil
}

// AddItem resolves the product and appends a line item. The catalog is
// consulted before the cart is touched, so a failed lookup changes nothing.
func (s *Service) AddItem(ctx context.Context, sessionID string, productID int64, quantity int) (*domain.Snapshot, error) {
	order, err := s.order(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	product, err := s.catalog.LookupProduct(ctx, productID)
	if err != nil {
		return nil, mapError(err)
	}
	order.AddLineItem(product, quantity)
	snap := order.Snapshot()
	return &snap, nil
}

// Summary returns the number of units in the cart, used for the header badge.
func (s *Service) Summary(ctx context.Context, sessionID string) (int, error) {
	order, err := s.order(ctx, sessionID)
	if err != nil {
		return 0, err
	}
	return order.TotalQuantity(), nil
}

func (s *Service) order(ctx context.Context, sessionID string) (*domain.Order, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, errEmptySession)
	}
	return s.registry.GetOrder(ctx, sessionID), nil
}

func parseLineItemID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, invalidArgument(ErrInvalidLineItemID, raw, err)
	}
	return id, nil
}

func parseQuantity(raw string) (int, error) {
	qty, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, invalidArgument(ErrInvalidQuantity, raw, err)
	}
	if qty > domain.MaxQuantity {
		return 0, invalidArgument(ErrInvalidQuantity, raw, errQuantityTooLarge)
	}
	return qty, nil
}

var _ ports.Service = (*Service)(nil)
