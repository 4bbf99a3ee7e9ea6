package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	storesdomain "github.com/Apurer/go-gin-marketplace-api/internal/domains/stores/domain"
	storesports "github.com/Apurer/go-gin-marketplace-api/internal/domains/stores/ports"
)

const tracerName = "github.com/Apurer/go-gin-marketplace-api/internal/domains/stores/adapters/observability/service"

// Service decorates the store finder with tracing, logging, and metrics.
type Service struct {
	inner   storesports.Service
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

// New wraps the core stores service.
func New(inner storesports.Service, opts ...Option) storesports.Service {
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

func (s *Service) FindStores(ctx context.Context, query storesdomain.StoreQuery) ([]storesdomain.NearbyStore, error) {
	ctx, span := s.tracer.Start(ctx, "StoresService.FindStores",
		trace.WithAttributes(
			attribute.Bool("query.has_location", query.Location != nil),
			attribute.String("query.text", query.Text),
		))
	defer span.End()
	if query.RadiusKm != nil {
		span.SetAttributes(attribute.Float64("query.radius_km", *query.RadiusKm))
	}

	result, err := s.inner.FindStores(ctx, query)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to find stores")
	}
	span.SetAttributes(attribute.Int("stores.count", len(result)))
	s.metrics.recordSearch(ctx, query.Location != nil)
	s.logDebug(ctx, "stores found", slog.Int("stores.count", len(result)), slog.Bool("query.has_location", query.Location != nil))
	return result, nil
}

func (s *Service) GetInventory(ctx context.Context, query storesdomain.InventoryQuery) (*storesdomain.StoreInventory, error) {
	ctx, span := s.tracer.Start(ctx, "StoresService.GetInventory", trace.WithAttributes(attribute.String("store.id", query.StoreID)))
	defer span.End()

	result, err := s.inner.GetInventory(ctx, query)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load inventory", slog.String("store.id", query.StoreID))
	}
	span.SetAttributes(attribute.Int("inventory.count", len(result.Items)))
	return result, nil
}

func (s *Service) logDebug(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelDebug, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	if s.logger != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
		s.logger.LogAttrs(ctx, slog.LevelWarn, msg, attrs...)
	}
	return err
}

type serviceMetrics struct {
	searches metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	searches, _ := m.Int64Counter("stores.service.searches", metric.WithDescription("Number of store finder searches"))
	return serviceMetrics{searches: searches}
}

func (m serviceMetrics) recordSearch(ctx context.Context, located bool) {
	if m.searches != nil {
		m.searches.Add(ctx, 1, metric.WithAttributes(attribute.Bool("query.has_location", located)))
	}
}

var _ storesports.Service = (*Service)(nil)
