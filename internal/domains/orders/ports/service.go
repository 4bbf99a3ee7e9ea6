package ports

import (
	"context"

	"github.com/Apurer/go-gin-marketplace-api/internal/domains/orders/application/types"
	"github.com/Apurer/go-gin-marketplace-api/internal/domains/orders/domain"
)

// Service exposes order use cases to adapters.
type Service interface {
	Validate(ctx context.Context, payload types.OrderPayload) (types.ValidationResult, error)
	CreateOrder(ctx context.Context, payload types.OrderPayload) (*domain.Order, error)
	PlaceOrder(ctx context.Context, payload types.OrderPayload) (*domain.Order, error)
	GetOrders(ctx context.Context, input types.ListOrdersInput) ([]*domain.Order, error)
	GetOrderByID(ctx context.Context, id string) (*domain.Order, error)
	UpdateOrderStatus(ctx context.Context, input types.UpdateStatusInput) (*domain.Order, error)
	StatusCatalog() []domain.StatusDefinition
}
