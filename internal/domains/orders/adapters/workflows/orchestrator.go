package workflows

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	oteltrace "go.opentelemetry.io/otel/trace"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/temporal"

	ordersapp "github.com/Apurer/go-gin-marketplace-api/internal/domains/orders/application"
	orderstypes "github.com/Apurer/go-gin-marketplace-api/internal/domains/orders/application/types"
	"github.com/Apurer/go-gin-marketplace-api/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-marketplace-api/internal/domains/orders/ports"
	orderactivities "github.com/Apurer/go-gin-marketplace-api/internal/platform/temporal/activities/orders"
	orderworkflows "github.com/Apurer/go-gin-marketplace-api/internal/platform/temporal/workflows/orders"
)

var (
	_ ports.WorkflowOrchestrator = (*TemporalOrderWorkflows)(nil)
	_ ports.WorkflowOrchestrator = (*InlineOrderWorkflows)(nil)
)

// TemporalOrderWorkflows starts order workflows on a Temporal cluster.
type TemporalOrderWorkflows struct {
	client    client.Client
	taskQueue string
}

// NewTemporalOrderWorkflows wires a Temporal client into the orchestrator.
func NewTemporalOrderWorkflows(c client.Client) *TemporalOrderWorkflows {
	return &TemporalOrderWorkflows{client: c, taskQueue: orderworkflows.OrderPlacementTaskQueue}
}

// PlaceOrder starts the Temporal workflow that persists the order and waits for its result.
func (o *TemporalOrderWorkflows) PlaceOrder(ctx context.Context, cmd orderstypes.PlaceOrderCommand) (*domain.Order, error) {
	if o == nil || o.client == nil {
		return nil, errors.New("temporal order workflows not configured")
	}
	traceComponent := workflowTraceComponent(ctx)
	workflowID := buildOrderPlacementWorkflowID(cmd.IdempotencyKey, traceComponent)
	options := client.StartWorkflowOptions{
		ID:        workflowID,
		TaskQueue: o.taskQueue,
	}
	run, err := o.client.ExecuteWorkflow(
		ctx,
		options,
		orderworkflows.OrderPlacementWorkflow,
		orderworkflows.OrderPlacementWorkflowInput{Payload: cmd.Payload, TraceID: traceComponent},
	)
	if err != nil {
		var alreadyStarted *serviceerror.WorkflowExecutionAlreadyStarted
		if errors.As(err, &alreadyStarted) && strings.TrimSpace(cmd.IdempotencyKey) != "" {
			existingRun := o.client.GetWorkflow(ctx, workflowID, alreadyStarted.RunId)
			var order domain.Order
			if err := existingRun.Get(ctx, &order); err != nil {
				return nil, mapWorkflowError(err)
			}
			return &order, nil
		}
		return nil, err
	}
	var order domain.Order
	if err := run.Get(ctx, &order); err != nil {
		return nil, mapWorkflowError(err)
	}
	return &order, nil
}

// mapWorkflowError restores validation failures raised inside the workflow.
func mapWorkflowError(err error) error {
	var appErr *temporal.ApplicationError
	if !errors.As(err, &appErr) || appErr.Type() != orderactivities.ValidationErrorType {
		return err
	}
	var violations []string
	if appErr.HasDetails() {
		if detailErr := appErr.Details(&violations); detailErr != nil {
			violations = nil
		}
	}
	if len(violations) == 0 {
		violations = []string{appErr.Message()}
	}
	return &ordersapp.ValidationError{Errors: violations}
}

// InlineOrderWorkflows executes the service directly without Temporal, useful for tests or dev fallbacks.
type InlineOrderWorkflows struct {
	service     ports.Service
	idempotency ports.IdempotencyStore
	mu          sync.Mutex
}

// NewInlineOrderWorkflows wraps the orders service for synchronous execution.
// A nil idempotency store disables replay of repeated submissions.
func NewInlineOrderWorkflows(service ports.Service, idempotency ports.IdempotencyStore) *InlineOrderWorkflows {
	return &InlineOrderWorkflows{service: service, idempotency: idempotency}
}

// PlaceOrder delegates to the application service without durable orchestration.
// A repeated idempotency key with the same payload returns the stored order.
func (o *InlineOrderWorkflows) PlaceOrder(ctx context.Context, cmd orderstypes.PlaceOrderCommand) (*domain.Order, error) {
	if o == nil || o.service == nil {
		return nil, errors.New("inline order workflows not configured")
	}
	key := strings.TrimSpace(cmd.IdempotencyKey)
	if key == "" || o.idempotency == nil {
		return o.service.PlaceOrder(ctx, cmd.Payload)
	}

	fingerprint, err := ordersapp.FingerprintPayload(cmd.Payload)
	if err != nil {
		return nil, err
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	record, err := o.idempotency.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if record != nil {
		if record.RequestHash != fingerprint {
			return nil, ports.ErrIdempotencyConflict
		}
		return o.service.GetOrderByID(ctx, record.OrderID)
	}

	order, err := o.service.PlaceOrder(ctx, cmd.Payload)
	if err != nil {
		return nil, err
	}
	if _, err := o.idempotency.Save(ctx, ports.IdempotencyRecord{Key: key, RequestHash: fingerprint, OrderID: order.ID}); err != nil {
		return nil, err
	}
	return order, nil
}

func buildOrderPlacementWorkflowID(idempotencyKey, traceComponent string) string {
	if key := strings.TrimSpace(idempotencyKey); key != "" {
		return fmt.Sprintf("order-placement-idem-%s", hashIdempotencyKey(key))
	}
	return fmt.Sprintf("order-placement-%d-%s", time.Now().UnixNano(), traceComponent)
}

func hashIdempotencyKey(key string) string {
	sum := sha256.Sum256([]byte(key))
	// First 16 hex chars keep workflow IDs readable while remaining deterministic.
	return hex.EncodeToString(sum[:8])
}

func workflowTraceComponent(ctx context.Context) string {
	if traceComponent := workflowTraceID(ctx); traceComponent != "" {
		return traceComponent
	}
	return fmt.Sprintf("fallback-%d", time.Now().UnixNano())
}

func workflowTraceID(ctx context.Context) string {
	spanCtx := oteltrace.SpanContextFromContext(ctx)
	if !spanCtx.IsValid() {
		return ""
	}
	return spanCtx.TraceID().String()
}
