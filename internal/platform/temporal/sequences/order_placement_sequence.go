package sequences

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	orderstypes "github.com/Apurer/go-gin-marketplace-api/internal/domains/orders/application/types"
	ordersdomain "github.com/Apurer/go-gin-marketplace-api/internal/domains/orders/domain"
	orderactivities "github.com/Apurer/go-gin-marketplace-api/internal/platform/temporal/activities/orders"
)

// RunOrderPlacementSequence executes the activities needed to place an order.
func RunOrderPlacementSequence(ctx workflow.Context, payload orderstypes.OrderPayload) (*ordersdomain.Order, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("order placement sequence started")
	placeOptions := workflow.ActivityOptions{
		StartToCloseTimeout: time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:        2 * time.Second,
			BackoffCoefficient:     2.0,
			MaximumInterval:        10 * time.Second,
			MaximumAttempts:        5,
			NonRetryableErrorTypes: []string{orderactivities.ValidationErrorType},
		},
	}

	var order ordersdomain.Order
	err := workflow.ExecuteActivity(workflow.WithActivityOptions(ctx, placeOptions), orderactivities.PlaceOrderActivityName, payload).Get(ctx, &order)
	if err != nil {
		logger.Error("order placement sequence failed", "error", err)
		return nil, err
	}
	logger.Info("order placement sequence persisted", "orderId", order.ID)
	return &order, nil
}
