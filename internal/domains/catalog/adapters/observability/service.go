package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	catalogdomain "github.com/Apurer/go-gin-marketplace-api/internal/domains/catalog/domain"
	catalogports "github.com/Apurer/go-gin-marketplace-api/internal/domains/catalog/ports"
)

const tracerName = "github.com/Apurer/go-gin-marketplace-api/internal/domains/catalog/adapters/observability/service"

// Service decorates the catalog aggregator with tracing, logging, and metrics.
type Service struct {
	inner   catalogports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

func New(inner catalogports.Service, opts ...Option) catalogports.Service {
	s := &Service{
		inner:  inner,
		tracer: nooptrace.NewTracerProvider().Tracer(tracerName),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return s
}

func (s *Service) BuildCatalog(ctx context.Context, query catalogdomain.Query) (*catalogdomain.Catalog, error) {
	sortKey := string(catalogdomain.ParseSortKey(string(query.SortBy)))
	ctx, span := s.tracer.Start(ctx, "CatalogService.BuildCatalog",
		trace.WithAttributes(
			attribute.String("catalog.sort", sortKey),
			attribute.String("catalog.category", query.Category),
			attribute.String("catalog.brand", query.Brand),
		))
	defer span.End()

	result, err := s.inner.BuildCatalog(ctx, query)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to build catalog")
	}
	span.SetAttributes(
		attribute.Int("catalog.products", len(result.Products)),
		attribute.Int("catalog.stores", len(result.AvailableStores)),
	)
	s.metrics.recordBuild(ctx, sortKey)
	if s.logger != nil {
		s.logger.LogAttrs(ctx, slog.LevelDebug, "catalog built",
			slog.Int("catalog.products", len(result.Products)),
			slog.Int("catalog.stores", len(result.AvailableStores)),
			slog.String("catalog.sort", sortKey))
	}
	return result, nil
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	if s.logger != nil {
		s.logger.LogAttrs(ctx, slog.LevelError, msg, slog.String("error", err.Error()))
	}
	return err
}

type serviceMetrics struct {
	builds metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	builds, _ := m.Int64Counter("catalog.service.builds", metric.WithDescription("Number of catalogs built"))
	return serviceMetrics{builds: builds}
}

func (m serviceMetrics) recordBuild(ctx context.Context, sortKey string) {
	if m.builds != nil {
		m.builds.Add(ctx, 1, metric.WithAttributes(attribute.String("catalog.sort", sortKey)))
	}
}

var _ catalogports.Service = (*Service)(nil)
