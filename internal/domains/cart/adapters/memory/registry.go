package memory

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"go.opentelemetry.io/otel/metric"

	"github.com/Apurer/go-gin-storefront/internal/domains/cart/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/cart/ports"
)

const (
	// DefaultMaxSessions bounds the number of carts held in memory.
	DefaultMaxSessions = 10000
	// DefaultIdleTTL is how long a cart survives without being touched.
	DefaultIdleTTL = 2 * time.Hour
)

var _ ports.Registry = (*Registry)(nil)

// Registry keeps one cart per session in process memory. Carts are evicted
// least-recently-used once MaxSessions is reached, and expire after IdleTTL
// without access.
type Registry struct {
	mu      sync.Mutex
	orders  *expirable.LRU[string, *domain.Order]
	logger  *slog.Logger
	evicted metric.Int64Counter
}

type RegistryOption func(*registryConfig)

type registryConfig struct {
	maxSessions int
	idleTTL     time.Duration
	logger      *slog.Logger
	meter       metric.Meter
}

func WithMaxSessions(n int) RegistryOption {
	return func(c *registryConfig) {
		if n > 0 {
			c.maxSessions = n
		}
	}
}

func WithIdleTTL(ttl time.Duration) RegistryOption {
	return func(c *registryConfig) {
		if ttl > 0 {
			c.idleTTL = ttl
		}
	}
}

func WithLogger(logger *slog.Logger) RegistryOption {
	return func(c *registryConfig) { c.logger = logger }
}

func WithMeter(m metric.Meter) RegistryOption {
	return func(c *registryConfig) { c.meter = m }
}

// NewRegistry builds an empty, bounded registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	cfg := registryConfig{
		maxSessions: DefaultMaxSessions,
		idleTTL:     DefaultIdleTTL,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.logger == nil {
		cfg.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	r := &Registry{logger: cfg.logger}
	if cfg.meter != nil {
		r.evicted, _ = cfg.meter.Int64Counter("cart.registry.sessions_evicted",
			metric.WithDescription("Number of session carts dropped from memory"))
	}
	r.orders = expirable.NewLRU[string, *domain.Order](cfg.maxSessions, r.onEvict, cfg.idleTTL)
	return r
}

// GetOrder returns the cart for sessionID, creating it when absent. Each
// call pushes the session's idle deadline forward.
func (r *Registry) GetOrder(_ context.Context, sessionID string) *domain.Order {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders.Get(sessionID)
	if !ok {
		order = domain.NewOrder()
	}
	r.orders.Add(sessionID, order)
	return order
}

// Forget drops the cart for sessionID, if any.
func (r *Registry) Forget(_ context.Context, sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders.Remove(sessionID)
}

// Len reports the number of tracked sessions, including expired entries not yet swept.
func (r *Registry) Len() int {
	return r.orders.Len()
}

// onEvict runs with the LRU's internal lock held and must not call back into it.
func (r *Registry) onEvict(sessionID string, order *domain.Order) {
	r.logger.Debug("cart dropped from registry",
		slog.String("session.id", truncate(sessionID)),
		slog.Int("cart.quantity", order.TotalQuantity()))
	if r.evicted != nil {
		r.evicted.Add(context.Background(), 1)
	}
}

func truncate(sessionID string) string {
	if len(sessionID) > 8 {
		return sessionID[:8]
	}
	return sessionID
}
