package ports

import (
	"context"

	"github.com/Apurer/go-gin-marketplace-api/internal/domains/orders/application/types"
	"github.com/Apurer/go-gin-marketplace-api/internal/domains/orders/domain"
)

// WorkflowOrchestrator places orders, durably when a workflow engine is configured.
type WorkflowOrchestrator interface {
	PlaceOrder(ctx context.Context, cmd types.PlaceOrderCommand) (*domain.Order, error)
}
