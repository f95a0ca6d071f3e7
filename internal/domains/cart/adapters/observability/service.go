package observability

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	cartapp "github.com/Apurer/go-gin-storefront/internal/domains/cart/application"
	cartdomain "github.com/Apurer/go-gin-storefront/internal/domains/cart/domain"
	cartports "github.com/Apurer/go-gin-storefront/internal/domains/cart/ports"
)

const tracerName = "github.com/Apurer/go-gin-storefront/internal/domains/cart/adapters/observability/service"

// Service decorates the cart service with tracing, logging, and metrics.
type Service struct {
	inner   cartports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) { s.tracer = tr }
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) { s.metrics = newServiceMetrics(m) }
}

// New wraps the core cart service.
func New(inner cartports.Service, opts ...Option) cartports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return s
}

func (s *Service) RenderCart(ctx context.Context, sessionID string) (*cartdomain.Snapshot, error) {
	ctx, span := s.tracer.Start(ctx, "CartService.RenderCart")
	defer span.End()

	result, err := s.inner.RenderCart(ctx, sessionID)
	if errors.Is(err, cartapp.ErrEmptyCart) {
		span.SetAttributes(attribute.Bool("cart.empty", true))
		s.logger.LogAttrs(ctx, slog.LevelDebug, "empty cart, redirecting", sessionAttr(sessionID))
		return result, err
	}
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to render cart", sessionAttr(sessionID))
	}
	setSnapshotAttributes(span, result)
	return result, nil
}

func (s *Service) DeleteItem(ctx context.Context, sessionID, lineItemID string) (*cartdomain.Snapshot, error) {
	ctx, span := s.tracer.Start(ctx, "CartService.DeleteItem",
		trace.WithAttributes(attribute.String("cart.line_item.id", lineItemID)))
	defer span.End()

	result, err := s.inner.DeleteItem(ctx, sessionID, lineItemID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to delete line item",
			sessionAttr(sessionID), slog.String("line_item.id", lineItemID))
	}
	s.metrics.recordChange(ctx, result.Change)
	s.logger.LogAttrs(ctx, slog.LevelDebug, "deleted line item from cart",
		sessionAttr(sessionID), slog.String("line_item.id", lineItemID))
	setSnapshotAttributes(span, result)
	return result, nil
}

func (s *Service) EditItem(ctx context.Context, sessionID, lineItemID, quantity string) (*cartdomain.Snapshot, error) {
	ctx, span := s.tracer.Start(ctx, "CartService.EditItem",
		trace.WithAttributes(
			attribute.String("cart.line_item.id", lineItemID),
			attribute.String("cart.line_item.quantity", quantity),
		))
	defer span.End()

	result, err := s.inner.EditItem(ctx, sessionID, lineItemID, quantity)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to edit line item",
			sessionAttr(sessionID), slog.String("line_item.id", lineItemID), slog.String("quantity", quantity))
	}
	s.metrics.recordChange(ctx, result.Change)
	s.logger.LogAttrs(ctx, slog.LevelDebug, "edited line item quantity",
		sessionAttr(sessionID), slog.String("line_item.id", lineItemID), slog.String("quantity", quantity))
	setSnapshotAttributes(span, result)
	return result, nil
}

func (s *Service) AddItem(ctx context.Context, sessionID string, productID int64, quantity int) (*cartdomain.Snapshot, error) {
	ctx, span := s.tracer.Start(ctx, "CartService.AddItem",
		trace.WithAttributes(
			attribute.Int64("product.id", productID),
			attribute.Int("cart.line_item.quantity", quantity),
		))
	defer span.End()

	result, err := s.inner.AddItem(ctx, sessionID, productID, quantity)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to add item to cart",
			sessionAttr(sessionID), slog.Int64("product.id", productID))
	}
	if quantity > 0 && quantity <= cartdomain.MaxQuantity {
		s.metrics.recordAdded(ctx)
	} else {
		s.logger.LogAttrs(ctx, slog.LevelDebug, "ignored add with out-of-range quantity",
			sessionAttr(sessionID), slog.Int64("product.id", productID), slog.Int("quantity", quantity))
	}
	setSnapshotAttributes(span, result)
	return result, nil
}

func (s *Service) Summary(ctx context.Context, sessionID string) (int, error) {
	ctx, span := s.tracer.Start(ctx, "CartService.Summary")
	defer span.End()

	qty, err := s.inner.Summary(ctx, sessionID)
	if err != nil {
		return 0, s.handleError(ctx, span, err, "failed to summarize cart", sessionAttr(sessionID))
	}
	span.SetAttributes(attribute.Int("cart.total_quantity", qty))
	return qty, nil
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	level := slog.LevelError
	if errors.Is(err, cartapp.ErrInvalidArgument) || errors.Is(err, cartapp.ErrNotFound) {
		level = slog.LevelWarn
	}
	attrs = append(attrs, slog.String("error", err.Error()))
	s.logger.LogAttrs(ctx, level, msg, attrs...)
	return err
}

func setSnapshotAttributes(span trace.Span, snap *cartdomain.Snapshot) {
	if span == nil || snap == nil {
		return
	}
	span.SetAttributes(
		attribute.Int("cart.line_items", len(snap.LineItems)),
		attribute.Int("cart.total_quantity", snap.TotalQuantity),
		attribute.String("cart.total_price", snap.TotalPrice.StringFixed(2)),
		attribute.Int("cart.change", int(snap.Change)),
	)
}

// sessionAttr truncates the id so log lines never carry a usable session cookie.
func sessionAttr(sessionID string) slog.Attr {
	if len(sessionID) > 8 {
		sessionID = sessionID[:8]
	}
	return slog.String("session.id", sessionID)
}

type serviceMetrics struct {
	itemsAdded    metric.Int64Counter
	itemsRemoved  metric.Int64Counter
	quantityEdits metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	added, _ := m.Int64Counter("cart.service.items_added", metric.WithDescription("Number of line items added to carts"))
	removed, _ := m.Int64Counter("cart.service.items_removed", metric.WithDescription("Number of line items deleted from carts"))
	edits, _ := m.Int64Counter("cart.service.quantity_edits", metric.WithDescription("Number of line item quantity edits"))
	return serviceMetrics{itemsAdded: added, itemsRemoved: removed, quantityEdits: edits}
}

func (m serviceMetrics) recordAdded(ctx context.Context) {
	if m.itemsAdded != nil {
		m.itemsAdded.Add(ctx, 1)
	}
}

// recordChange counts removals and edits; unknown line items change nothing.
func (m serviceMetrics) recordChange(ctx context.Context, change cartdomain.QuantityChange) {
	switch change {
	case cartdomain.QuantityRemoved:
		if m.itemsRemoved != nil {
			m.itemsRemoved.Add(ctx, 1)
		}
	case cartdomain.QuantityUpdated:
		if m.quantityEdits != nil {
			m.quantityEdits.Add(ctx, 1)
		}
	}
}

var _ cartports.Service = (*Service)(nil)
