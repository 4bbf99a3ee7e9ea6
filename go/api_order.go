package marketplaceserver

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	ordershttpmapper "github.com/Apurer/go-gin-marketplace-api/internal/domains/orders/adapters/http/mapper"
	ordersapp "github.com/Apurer/go-gin-marketplace-api/internal/domains/orders/application"
	orderstypes "github.com/Apurer/go-gin-marketplace-api/internal/domains/orders/application/types"
	ordersdomain "github.com/Apurer/go-gin-marketplace-api/internal/domains/orders/domain"
	ordersports "github.com/Apurer/go-gin-marketplace-api/internal/domains/orders/ports"
	apierrors "github.com/Apurer/go-gin-marketplace-api/internal/shared/errors"
)

// IdempotencyKeyHeader lets clients retry an order submission safely.
const IdempotencyKeyHeader = "Idempotency-Key"

// OrderAPI wires HTTP transport with the orders service and workflows.
type OrderAPI struct {
	service   ordersports.Service
	workflows ordersports.WorkflowOrchestrator
}

// NewOrderAPI creates an OrderAPI. A nil orchestrator places orders directly through the service.
func NewOrderAPI(service ordersports.Service, workflows ordersports.WorkflowOrchestrator) OrderAPI {
	return OrderAPI{service: service, workflows: workflows}
}

// Post /api/orders
// Validates and places an order spanning one or more stores
func (api *OrderAPI) PlaceOrder(c *gin.Context) {
	var payload orderstypes.OrderPayload
	if !bindOptionalJSON(c, &payload) {
		return
	}

	ctx := c.Request.Context()
	result, err := api.service.Validate(ctx, payload)
	if err != nil {
		respondError(c, err)
		return
	}
	if !result.IsValid {
		respondError(c, &ordersapp.ValidationError{Errors: result.Errors})
		return
	}

	cmd := orderstypes.PlaceOrderCommand{Payload: payload, IdempotencyKey: c.GetHeader(IdempotencyKeyHeader)}
	order, err := api.placeOrder(ctx, cmd)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ordershttpmapper.OrderEnvelope{Order: ordershttpmapper.FromDomainOrder(order)})
}

func (api *OrderAPI) placeOrder(ctx context.Context, cmd orderstypes.PlaceOrderCommand) (*ordersdomain.Order, error) {
	if api.workflows != nil {
		return api.workflows.PlaceOrder(ctx, cmd)
	}
	return api.service.PlaceOrder(ctx, cmd.Payload)
}

// Get /api/orders
// Lists orders, newest first, optionally for one customer contact
func (api *OrderAPI) ListOrders(c *gin.Context) {
	orders, err := api.service.GetOrders(c.Request.Context(), orderstypes.ListOrdersInput{Contact: c.Query("contact")})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ordershttpmapper.OrdersEnvelope{Orders: ordershttpmapper.FromDomainOrders(orders)})
}

// Get /api/orders/:orderId
// Find order by ID
func (api *OrderAPI) GetOrderById(c *gin.Context) {
	order, err := api.service.GetOrderByID(c.Request.Context(), c.Param("orderId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ordershttpmapper.OrderEnvelope{Order: ordershttpmapper.FromDomainOrder(order)})
}

// Patch /api/orders/:orderId/status
// Moves an order to a step of the status flow
func (api *OrderAPI) UpdateOrderStatus(c *gin.Context) {
	var request ordershttpmapper.StatusUpdateRequest
	if !bindOptionalJSON(c, &request) {
		return
	}
	input := orderstypes.UpdateStatusInput{ID: c.Param("orderId"), Status: request.Status}
	order, err := api.service.UpdateOrderStatus(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ordershttpmapper.OrderEnvelope{Order: ordershttpmapper.FromDomainOrder(order)})
}

// Get /api/order-statuses
// Lists the fixed order status sequence
func (api *OrderAPI) ListOrderStatuses(c *gin.Context) {
	c.JSON(http.StatusOK, ordershttpmapper.FromStatusCatalog(api.service.StatusCatalog()))
}

// bindOptionalJSON decodes a possibly empty body into dst. It answers 400 and
// returns false when the body cannot be read or is not valid JSON.
func bindOptionalJSON(c *gin.Context, dst any) bool {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		respondProblem(c, apierrors.ErrBadRequest.WithDetail("Unable to read request body"))
		return false
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return true
	}
	if err := json.Unmarshal(body, dst); err != nil {
		respondProblem(c, apierrors.ErrBadRequest.WithDetail("Request body must be valid JSON"))
		return false
	}
	return true
}
