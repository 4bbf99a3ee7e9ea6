package observability

import (
	"context"
	"errors"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	ordersapp "github.com/Apurer/go-gin-marketplace-api/internal/domains/orders/application"
	"github.com/Apurer/go-gin-marketplace-api/internal/domains/orders/application/types"
	ordersdomain "github.com/Apurer/go-gin-marketplace-api/internal/domains/orders/domain"
	ordersports "github.com/Apurer/go-gin-marketplace-api/internal/domains/orders/ports"
)

const tracerName = "github.com/Apurer/go-gin-marketplace-api/internal/domains/orders/adapters/observability/service"

// Service decorates the orders service with tracing, logging, and metrics.
type Service struct {
	inner   ordersports.Service
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

// New wraps the core orders service.
func New(inner ordersports.Service, opts ...Option) ordersports.Service {
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

func (s *Service) Validate(ctx context.Context, payload types.OrderPayload) (types.ValidationResult, error) {
	ctx, span := s.tracer.Start(ctx, "OrdersService.Validate",
		trace.WithAttributes(attribute.Bool("order.multi_store", payload.IsMultiStore())))
	defer span.End()

	result, err := s.inner.Validate(ctx, payload)
	if err != nil {
		return result, s.handleError(ctx, span, err, "failed to validate order")
	}
	span.SetAttributes(attribute.Bool("order.valid", result.IsValid), attribute.Int("order.violations", len(result.Errors)))
	if !result.IsValid {
		s.logInfo(ctx, "order payload rejected", slog.Int("order.violations", len(result.Errors)))
	}
	return result, nil
}

func (s *Service) CreateOrder(ctx context.Context, payload types.OrderPayload) (*ordersdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrdersService.CreateOrder",
		trace.WithAttributes(attribute.Bool("order.multi_store", payload.IsMultiStore())))
	defer span.End()

	result, err := s.inner.CreateOrder(ctx, payload)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to create order")
	}
	s.orderPlaced(ctx, span, result)
	return result, nil
}

func (s *Service) PlaceOrder(ctx context.Context, payload types.OrderPayload) (*ordersdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrdersService.PlaceOrder",
		trace.WithAttributes(attribute.Bool("order.multi_store", payload.IsMultiStore())))
	defer span.End()

	result, err := s.inner.PlaceOrder(ctx, payload)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to place order")
	}
	s.orderPlaced(ctx, span, result)
	return result, nil
}

func (s *Service) GetOrders(ctx context.Context, input types.ListOrdersInput) ([]*ordersdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrdersService.GetOrders",
		trace.WithAttributes(attribute.Bool("orders.filtered", input.Contact != "")))
	defer span.End()

	result, err := s.inner.GetOrders(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list orders")
	}
	span.SetAttributes(attribute.Int("orders.count", len(result)))
	return result, nil
}

func (s *Service) GetOrderByID(ctx context.Context, id string) (*ordersdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrdersService.GetOrderByID", trace.WithAttributes(attribute.String("order.id", id)))
	defer span.End()

	result, err := s.inner.GetOrderByID(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load order", slog.String("order.id", id))
	}
	return result, nil
}

func (s *Service) UpdateOrderStatus(ctx context.Context, input types.UpdateStatusInput) (*ordersdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrdersService.UpdateOrderStatus",
		trace.WithAttributes(attribute.String("order.id", input.ID), attribute.String("order.status", input.Status)))
	defer span.End()

	result, err := s.inner.UpdateOrderStatus(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to update order status", slog.String("order.id", input.ID))
	}
	s.metrics.recordStatusUpdate(ctx, result.CurrentStatus.Code)
	s.logInfo(ctx, "order status updated", slog.String("order.id", result.ID), slog.String("order.status", string(result.CurrentStatus.Code)))
	return result, nil
}

func (s *Service) StatusCatalog() []ordersdomain.StatusDefinition {
	return s.inner.StatusCatalog()
}

func (s *Service) orderPlaced(ctx context.Context, span trace.Span, order *ordersdomain.Order) {
	span.SetAttributes(attribute.String("order.id", order.ID), attribute.Int("order.store_count", order.Summary.StoreCount))
	s.metrics.recordPlaced(ctx, order.Summary.StoreCount)
	s.logInfo(ctx, "order placed",
		slog.String("order.id", order.ID),
		slog.Int("order.store_count", order.Summary.StoreCount),
		slog.Int("order.item_count", order.Summary.ItemCount),
		slog.Float64("order.total", order.Summary.Total))
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	if s.logger != nil {
		level := slog.LevelError
		if errors.Is(err, ordersapp.ErrInvalidInput) || errors.Is(err, ordersports.ErrNotFound) {
			level = slog.LevelWarn
		}
		attrs = append(attrs, slog.String("error", err.Error()))
		s.logger.LogAttrs(ctx, level, msg, attrs...)
	}
	return err
}

type serviceMetrics struct {
	ordersPlaced  metric.Int64Counter
	statusUpdates metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	ordersPlaced, _ := m.Int64Counter("orders.service.orders_placed", metric.WithDescription("Number of orders placed"))
	statusUpdates, _ := m.Int64Counter("orders.service.status_updates", metric.WithDescription("Number of order status changes"))
	return serviceMetrics{ordersPlaced: ordersPlaced, statusUpdates: statusUpdates}
}

func (m serviceMetrics) recordPlaced(ctx context.Context, storeCount int) {
	if m.ordersPlaced != nil {
		m.ordersPlaced.Add(ctx, 1, metric.WithAttributes(attribute.Int("order.store_count", storeCount)))
	}
}

func (m serviceMetrics) recordStatusUpdate(ctx context.Context, status ordersdomain.StatusCode) {
	if m.statusUpdates != nil {
		m.statusUpdates.Add(ctx, 1, metric.WithAttributes(attribute.String("order.status", string(status))))
	}
}

var _ ordersports.Service = (*Service)(nil)
