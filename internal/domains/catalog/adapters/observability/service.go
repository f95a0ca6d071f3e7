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

	"github.com/Apurer/go-gin-storefront/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/catalog/ports"
)

const tracerName = "github.com/Apurer/go-gin-storefront/internal/domains/catalog/adapters/observability/service"

// Service decorates the catalog service with tracing, logging, and metrics.
type Service struct {
	inner   ports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	lookups metric.Int64Counter
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) { s.tracer = tr }
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		if m == nil {
			return
		}
		s.lookups, _ = m.Int64Counter("catalog.service.lookups",
			metric.WithDescription("Number of single product lookups by outcome"))
	}
}

func New(inner ports.Service, opts ...Option) ports.Service {
	s := &Service{
		inner:  inner,
		tracer: nooptrace.NewTracerProvider().Tracer(tracerName),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
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

func (s *Service) ListProducts(ctx context.Context) ([]*domain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.ListProducts")
	defer span.End()

	products, err := s.inner.ListProducts(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list products")
	}
	span.SetAttributes(attribute.Int("catalog.products", len(products)))
	return products, nil
}

func (s *Service) ProductsByCategory(ctx context.Context, categoryID int64) (*domain.Category, []*domain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.ProductsByCategory",
		trace.WithAttributes(attribute.Int64("catalog.category.id", categoryID)))
	defer span.End()

	category, products, err := s.inner.ProductsByCategory(ctx, categoryID)
	if err != nil {
		return nil, nil, s.handleError(ctx, span, err, "failed to list products by category",
			slog.Int64("category.id", categoryID))
	}
	span.SetAttributes(attribute.Int("catalog.products", len(products)))
	return category, products, nil
}

func (s *Service) ProductsBySupplier(ctx context.Context, supplierID int64) (*domain.Supplier, []*domain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.ProductsBySupplier",
		trace.WithAttributes(attribute.Int64("catalog.supplier.id", supplierID)))
	defer span.End()

	supplier, products, err := s.inner.ProductsBySupplier(ctx, supplierID)
	if err != nil {
		return nil, nil, s.handleError(ctx, span, err, "failed to list products by supplier",
			slog.Int64("supplier.id", supplierID))
	}
	span.SetAttributes(attribute.Int("catalog.products", len(products)))
	return supplier, products, nil
}

func (s *Service) Categories(ctx context.Context) ([]*domain.Category, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.Categories")
	defer span.End()

	categories, err := s.inner.Categories(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list categories")
	}
	return categories, nil
}

func (s *Service) Suppliers(ctx context.Context) ([]*domain.Supplier, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.Suppliers")
	defer span.End()

	suppliers, err := s.inner.Suppliers(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list suppliers")
	}
	return suppliers, nil
}

func (s *Service) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.GetProduct",
		trace.WithAttributes(attribute.Int64("product.id", id)))
	defer span.End()

	product, err := s.inner.GetProduct(ctx, id)
	if err != nil {
		s.recordLookup(ctx, "miss")
		return nil, s.handleError(ctx, span, err, "failed to get product", slog.Int64("product.id", id))
	}
	s.recordLookup(ctx, "hit")
	return product, nil
}

func (s *Service) recordLookup(ctx context.Context, outcome string) {
	if s.lookups != nil {
		s.lookups.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
	}
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	level := slog.LevelError
	if errors.Is(err, ports.ErrNotFound) {
		level = slog.LevelWarn
	}
	attrs = append(attrs, slog.String("error", err.Error()))
	s.logger.LogAttrs(ctx, level, msg, attrs...)
	return err
}

var _ ports.Service = (*Service)(nil)
