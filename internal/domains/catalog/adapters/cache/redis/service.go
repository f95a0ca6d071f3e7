package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/Apurer/go-gin-storefront/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/catalog/ports"
)

// DefaultTTL applies when no positive TTL is configured.
const DefaultTTL = 5 * time.Minute

const keyPrefix = "storefront:catalog:product:"

// Service caches single-product reads in redis. Listings are passed through
// untouched. Any cache failure is logged and the inner service answers.
type Service struct {
	inner  ports.Service
	client goredis.Cmdable
	ttl    time.Duration
	logger *slog.Logger
}

type Option func(*Service)

func WithTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// New wraps inner with a read-through product cache.
func New(inner ports.Service, client goredis.Cmdable, opts ...Option) *Service {
	s := &Service{
		inner:  inner,
		client: client,
		ttl:    DefaultTTL,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return s
}

type cachedProduct struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	DefaultPrice decimal.Decimal `json:"defaultPrice"`
	Currency     string          `json:"currency"`
	CategoryID   int64           `json:"categoryId,omitempty"`
	SupplierID   int64           `json:"supplierId,omitempty"`
}

func productKey(id int64) string {
	return fmt.Sprintf("%s%d", keyPrefix, id)
}

func (s *Service) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	key := productKey(id)
	raw, err := s.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var cached cachedProduct
		if err := json.Unmarshal(raw, &cached); err == nil {
			return cached.toDomain(), nil
		}
		s.logger.WarnContext(ctx, "discarding undecodable catalog cache entry", slog.String("cache.key", key))
	case errors.Is(err, goredis.Nil):
	default:
		s.logger.WarnContext(ctx, "catalog cache read failed", slog.String("cache.key", key), slog.String("error", err.Error()))
	}

	product, err := s.inner.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(fromDomain(product))
	if err != nil {
		s.logger.WarnContext(ctx, "catalog cache encode failed", slog.Int64("product.id", id), slog.String("error", err.Error()))
		return product, nil
	}
	if err := s.client.Set(ctx, key, data, s.ttl).Err(); err != nil {
		s.logger.WarnContext(ctx, "catalog cache write failed", slog.String("cache.key", key), slog.String("error", err.Error()))
	}
	return product, nil
}

// Invalidate drops the cached entry for a product.
func (s *Service) Invalidate(ctx context.Context, id int64) error {
	return s.client.Del(ctx, productKey(id)).Err()
}

func (s *Service) ListProducts(ctx context.Context) ([]*domain.Product, error) {
	return s.inner.ListProducts(ctx)
}

func (s *Service) ProductsByCategory(ctx context.Context, categoryID int64) (*domain.Category, []*domain.Product, error) {
	return s.inner.ProductsByCategory(ctx, categoryID)
}

func (s *Service) ProductsBySupplier(ctx context.Context, supplierID int64) (*domain.Supplier, []*domain.Product, error) {
	return s.inner.ProductsBySupplier(ctx, supplierID)
}

func (s *Service) Categories(ctx context.Context) ([]*domain.Category, error) {
	return s.inner.Categories(ctx)
}

func (s *Service) Suppliers(ctx context.Context) ([]*domain.Supplier, error) {
	return s.inner.Suppliers(ctx)
}

func fromDomain(p *domain.Product) cachedProduct {
	return cachedProduct{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		DefaultPrice: p.DefaultPrice,
		Currency:     p.Currency,
		CategoryID:   p.CategoryID,
		SupplierID:   p.SupplierID,
	}
}

func (c cachedProduct) toDomain() *domain.Product {
	return &domain.Product{
		ID:           c.ID,
		Name:         c.Name,
		Description:  c.Description,
		DefaultPrice: c.DefaultPrice,
		Currency:     c.Currency,
		CategoryID:   c.CategoryID,
		SupplierID:   c.SupplierID,
	}
}

var _ ports.Service = (*Service)(nil)
