package orders

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	ordersapp "github.com/Apurer/go-gin-marketplace-api/internal/domains/orders/application"
	orderstypes "github.com/Apurer/go-gin-marketplace-api/internal/domains/orders/application/types"
	ordersdomain "github.com/Apurer/go-gin-marketplace-api/internal/domains/orders/domain"
	ordersports "github.com/Apurer/go-gin-marketplace-api/internal/domains/orders/ports"
)

const (
	// PlaceOrderActivityName validates, prices, and persists a submitted order.
	PlaceOrderActivityName = "orders.activities.PlaceOrder"
	// ValidationErrorType tags non-retryable failures caused by an invalid payload.
	ValidationErrorType = "OrderValidationError"
)

// Activities groups activities that operate on the orders bounded context.
type Activities struct {
	service ordersports.Service
}

// NewActivities wires the orders service into the Temporal activities bundle.
func NewActivities(service ordersports.Service) *Activities {
	return &Activities{service: service}
}

// PlaceOrder persists a new order. Validation failures are returned as
// non-retryable application errors carrying the violation list as details.
func (a *Activities) PlaceOrder(ctx context.Context, payload orderstypes.OrderPayload) (*ordersdomain.Order, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.service == nil {
		logger.Error("order placement activity not initialized")
		return nil, errors.New("order placement activity not initialized")
	}
	logger.Info("PlaceOrder activity started", "storeOrders", len(payload.Normalize()))
	order, err := a.service.PlaceOrder(ctx, payload)
	if err != nil {
		var validation *ordersapp.ValidationError
		if errors.As(err, &validation) {
			logger.Warn("PlaceOrder activity rejected payload", "errors", validation.Errors)
			return nil, temporal.NewNonRetryableApplicationError(validation.Error(), ValidationErrorType, err, validation.Errors)
		}
		if errors.Is(err, ordersapp.ErrInvalidInput) {
			return nil, temporal.NewNonRetryableApplicationError(err.Error(), ValidationErrorType, err, []string{err.Error()})
		}
		logger.Error("PlaceOrder activity failed", "error", err)
		return nil, err
	}
	logger.Info("PlaceOrder activity completed", "orderId", order.ID)
	return order, nil
}
