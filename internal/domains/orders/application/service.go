package application

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/Apurer/go-gin-marketplace-api/internal/domains/orders/application/types"
	"github.com/Apurer/go-gin-marketplace-api/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-marketplace-api/internal/domains/orders/ports"
	storesports "github.com/Apurer/go-gin-marketplace-api/internal/domains/stores/ports"
	"github.com/Apurer/go-gin-marketplace-api/internal/shared/clock"
	"github.com/Apurer/go-gin-marketplace-api/internal/shared/money"
)

// Service orchestrates the orders bounded context use cases.
type Service struct {
	repo           ports.Repository
	directory      storesports.Directory
	validator      *Validator
	clock          clock.Clock
	newID          func() string
	logger         *slog.Logger
	priceFallbacks metric.Int64Counter
}

type Option func(*Service)

func WithClock(c clock.Clock) Option {
	return func(s *Service) {
		if c != nil {
			s.clock = c
		}
	}
}

// WithIDGenerator replaces the UUID source for order identifiers.
func WithIDGenerator(fn func() string) Option {
	return func(s *Service) {
		if fn != nil {
			s.newID = fn
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		if m == nil {
			return
		}
		s.priceFallbacks, _ = m.Int64Counter("orders.service.price_fallbacks",
			metric.WithDescription("Line items priced at zero because the SKU was missing from inventory"))
	}
}

// NewService wires the orders service with its dependencies.
func NewService(repo ports.Repository, directory storesports.Directory, opts ...Option) *Service {
	s := &Service{
		repo:      repo,
		directory: directory,
		validator: NewValidator(directory),
		clock:     clock.NewSystem(),
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Validate checks a payload without placing it.
func (s *Service) Validate(ctx context.Context, payload types.OrderPayload) (types.ValidationResult, error) {
	return s.validator.Validate(ctx, payload)
}

// PlaceOrder validates the payload and creates the order when it passes.
func (s *Service) PlaceOrder(ctx context.Context, payload types.OrderPayload) (*domain.Order, error) {
	result, err := s.validator.Validate(ctx, payload)
	if err != nil {
		return nil, err
	}
	if !result.IsValid {
		return nil, &ValidationError{Errors: result.Errors}
	}
	return s.CreateOrder(ctx, payload)
}

// CreateOrder builds and stores an order from an already validated payload.
// Prices always come from the store inventory.
func (s *Service) CreateOrder(ctx context.Context, payload types.OrderPayload) (*domain.Order, error) {
	submitted := payload.Normalize()
	if len(submitted) == 0 {
		return nil, mapError(domain.ErrEmptyOrder)
	}

	storeOrders := make([]domain.StoreOrder, 0, len(submitted))
	for _, so := range submitted {
		storeOrder, err := s.enrichStoreOrder(ctx, so)
		if err != nil {
			return nil, err
		}
		storeOrders = append(storeOrders, storeOrder)
	}

	now := s.clock.Now()
	flow := domain.NewStatusFlow(now)
	order := &domain.Order{
		ID:            s.newID(),
		PlacedAt:      now,
		StoreOrders:   storeOrders,
		StatusFlow:    flow,
		CurrentStatus: flow[0],
		Summary:       domain.Summarize(storeOrders),
	}
	if details := payload.CustomerDetails; details != nil {
		order.CustomerDetails = domain.CustomerDetails{Name: details.Name, Contact: details.Contact}
	}
	if location := payload.CustomerLocation; location != nil {
		order.CustomerLocation = domain.CustomerLocation{Lat: location.Lat, Lng: location.Lng, Address: location.Address}
	}
	if err := s.repo.Insert(ctx, order); err != nil {
		return nil, mapError(err)
	}
	return order.Clone(), nil
}

func (s *Service) enrichStoreOrder(ctx context.Context, submitted types.StoreOrderPayload) (domain.StoreOrder, error) {
	storeOrder := domain.StoreOrder{StoreID: submitted.StoreID}
	store, err := s.directory.GetStore(ctx, submitted.StoreID)
	switch {
	case err == nil:
		storeOrder.StoreName = store.Name
		storeOrder.DeliveryEta = store.DeliveryEta
		storeOrder.Address = store.Address
	case !errors.Is(err, storesports.ErrStoreNotFound):
		return domain.StoreOrder{}, err
	}

	lineTotals := make([]decimal.Decimal, 0, len(submitted.Items))
	for _, item := range submitted.Items {
		if item.Malformed {
			continue
		}
		line := domain.LineItem{SKU: item.SKU}
		if item.Quantity != nil {
			line.Quantity = int(*item.Quantity)
		}
		stocked, err := s.directory.FindItem(ctx, submitted.StoreID, item.SKU)
		switch {
		case err == nil:
			line.Name = stocked.Name
			line.Unit = stocked.Unit
			line.Price = stocked.Price
		case errors.Is(err, storesports.ErrItemNotFound):
			s.recordPriceFallback(ctx, submitted.StoreID, item.SKU)
		default:
			return domain.StoreOrder{}, err
		}
		lineTotal := money.LineTotal(line.Price, line.Quantity)
		line.LineTotal = money.Float(lineTotal)
		lineTotals = append(lineTotals, lineTotal)
		storeOrder.Items = append(storeOrder.Items, line)
	}
	storeOrder.Subtotal = money.Float(money.Sum(lineTotals...))
	return storeOrder, nil
}

func (s *Service) recordPriceFallback(ctx context.Context, storeID, sku string) {
	if s.logger != nil {
		s.logger.LogAttrs(ctx, slog.LevelWarn, "inventory item missing during enrichment, pricing at zero",
			slog.String("store.id", storeID), slog.String("item.sku", sku))
	}
	if s.priceFallbacks != nil {
		s.priceFallbacks.Add(ctx, 1, metric.WithAttributes(attribute.String("store.id", storeID)))
	}
}

// GetOrders lists orders newest first, optionally filtered by contact.
func (s *Service) GetOrders(ctx context.Context, input types.ListOrdersInput) ([]*domain.Order, error) {
	orders, err := s.repo.List(ctx, ports.ListFilter{Contact: domain.NormalizeContact(input.Contact)})
	if err != nil {
		return nil, mapError(err)
	}
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].PlacedAt.After(orders[j].PlacedAt)
	})
	return orders, nil
}

func (s *Service) GetOrderByID(ctx context.Context, id string) (*domain.Order, error) {
	order, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return nil, mapError(err)
	}
	return order, nil
}

// UpdateOrderStatus moves an order to the requested step. A missing order is
// reported before any problem with the status code.
func (s *Service) UpdateOrderStatus(ctx context.Context, input types.UpdateStatusInput) (*domain.Order, error) {
	now := s.clock.Now()
	order, err := s.repo.Update(ctx, strings.TrimSpace(input.ID), func(order *domain.Order) error {
		code, err := domain.ParseStatus(input.Status)
		if err != nil {
			return err
		}
		return order.AdvanceTo(code, now)
	})
	if err != nil {
		return nil, mapError(err)
	}
	return order, nil
}

func (s *Service) StatusCatalog() []domain.StatusDefinition {
	return domain.StatusCatalog()
}

var _ ports.Service = (*Service)(nil)
