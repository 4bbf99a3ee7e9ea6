package application

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	ordersmemory "github.com/Apurer/go-gin-marketplace-api/internal/domains/orders/adapters/memory"
	"github.com/Apurer/go-gin-marketplace-api/internal/domains/orders/application/types"
	"github.com/Apurer/go-gin-marketplace-api/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-marketplace-api/internal/domains/orders/ports"
	storesmemory "github.com/Apurer/go-gin-marketplace-api/internal/domains/stores/adapters/memory"
	storesdomain "github.com/Apurer/go-gin-marketplace-api/internal/domains/stores/domain"
)

var baseTime = time.Date(2024, 6, 1, 15, 0, 0, 0, time.UTC)

// scenarioDirectory holds store A selling X at 2.50 (stock 10) and store B
// selling Y at 4.00 (stock 5).
func scenarioDirectory() *storesmemory.Directory {
	return storesmemory.NewDirectory(
		[]storesdomain.Store{
			{ID: "A", Name: "Alpha Grocers", Address: "1 Alpha Rd", DeliveryEta: "20-30 min"},
			{ID: "B", Name: "Beta Foods", Address: "2 Beta Ave", DeliveryEta: "30-40 min"},
		},
		map[string][]storesdomain.InventoryItem{
			"A": {{SKU: "X", Name: "Xylo Apples", Unit: "lb", Price: 2.50, QuantityAvailable: 10}},
			"B": {{SKU: "Y", Name: "Yellow Lentils", Unit: "bag", Price: 4.00, QuantityAvailable: 5}},
		},
	)
}

type steppingClock struct {
	now time.Time
}

func (c *steppingClock) Now() time.Time {
	now := c.now
	c.now = c.now.Add(time.Minute)
	return now
}

func newTestService() (*Service, *ordersmemory.Repository) {
	repo := ordersmemory.NewRepository()
	seq := 0
	svc := NewService(repo, scenarioDirectory(),
		WithClock(&steppingClock{now: baseTime}),
		WithIDGenerator(func() string {
			seq++
			return fmt.Sprintf("order-%04d-0000-4000-8000-000000000000", seq)
		}),
	)
	return svc, repo
}

func orderPayload(t *testing.T, contact string) types.OrderPayload {
	return decodePayload(t, fmt.Sprintf(`{"storeId":"A","items":[{"sku":"X","quantity":1}],
		"customerDetails":{"name":"Customer","contact":%q},"customerLocation":{"address":"1 Main"}}`, contact))
}

func TestCreateOrder_MultiStoreScenario(t *testing.T) {
	svc, repo := newTestService()
	order, err := svc.CreateOrder(context.Background(), decodePayload(t, `{"storeOrders":[
		{"storeId":"A","items":[{"sku":"X","quantity":2}]},
		{"storeId":"B","items":[{"sku":"Y","quantity":1}]}],
		"customerDetails":{"name":"Jordan","contact":"jordan@example.com"},
		"customerLocation":{"address":"123 Multi Store Way"}}`))
	require.NoError(t, err)

	require.Equal(t, domain.Summary{ItemCount: 3, StoreCount: 2, Total: 9.00}, order.Summary)
	require.Equal(t, "Alpha Grocers", order.StoreOrders[0].StoreName)
	require.Equal(t, "30-40 min", order.StoreOrders[1].DeliveryEta)
	require.Equal(t, 5.0, order.StoreOrders[0].Subtotal)
	require.Equal(t, 4.0, order.StoreOrders[1].Items[0].LineTotal)
	require.Equal(t, "Yellow Lentils", order.StoreOrders[1].Items[0].Name)
	require.Equal(t, "bag", order.StoreOrders[1].Items[0].Unit)

	require.Equal(t, "ORDER-00", order.ConfirmationCode())
	require.True(t, order.PlacedAt.Equal(baseTime))
	require.Equal(t, domain.StatusPlaced, order.CurrentStatus.Code)
	require.True(t, order.StatusFlow[0].Timestamp.Equal(baseTime))
	require.Nil(t, order.StatusFlow[1].Timestamp)

	stored, err := repo.GetByID(context.Background(), order.ID)
	require.NoError(t, err)
	require.Equal(t, order, stored)
}

func TestCreateOrder_IgnoresClientPrice(t *testing.T) {
	svc, _ := newTestService()
	order, err := svc.CreateOrder(context.Background(), decodePayload(t, `{"storeId":"A","items":[{"sku":"X","quantity":3,"price":0.01}],
		"customerDetails":{"name":"A","contact":"a@x.com"},"customerLocation":{"address":"1 Main"}}`))
	require.NoError(t, err)
	item := order.StoreOrders[0].Items[0]
	require.Equal(t, 2.50, item.Price)
	require.Equal(t, 7.5, item.LineTotal)
	require.Equal(t, 7.5, order.Summary.Total)
}

func TestCreateOrder_MissingInventoryFallsBackToZeroPrice(t *testing.T) {
	svc, _ := newTestService()
	order, err := svc.CreateOrder(context.Background(), decodePayload(t, `{"storeId":"A","items":[{"sku":"X","quantity":1},{"sku":"GHOST","quantity":4}],
		"customerDetails":{"name":"A","contact":"a@x.com"},"customerLocation":{"address":"1 Main"}}`))
	require.NoError(t, err)
	ghost := order.StoreOrders[0].Items[1]
	require.Equal(t, 0.0, ghost.Price)
	require.Equal(t, 0.0, ghost.LineTotal)
	require.Empty(t, ghost.Name)
	require.Equal(t, 5, order.Summary.ItemCount)
	require.Equal(t, 2.5, order.Summary.Total)
}

func TestCreateOrder_SummaryTotalMatchesSubtotals(t *testing.T) {
	svc, _ := newTestService()
	order, err := svc.CreateOrder(context.Background(), decodePayload(t, `{"storeOrders":[
		{"storeId":"A","items":[{"sku":"X","quantity":7}]},
		{"storeId":"B","items":[{"sku":"Y","quantity":3}]}],
		"customerDetails":{"name":"A","contact":"a@x.com"},"customerLocation":{"address":"1 Main"}}`))
	require.NoError(t, err)
	sum := 0.0
	for _, so := range order.StoreOrders {
		sum += so.Subtotal
	}
	require.InDelta(t, sum, order.Summary.Total, 0.005)
	require.Equal(t, 29.5, order.Summary.Total)
}

func TestCreateOrder_RejectsEmptyPayload(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.CreateOrder(context.Background(), types.OrderPayload{})
	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, domain.ErrEmptyOrder)
}

func TestPlaceOrder_ReturnsValidationError(t *testing.T) {
	svc, repo := newTestService()
	_, err := svc.PlaceOrder(context.Background(), types.OrderPayload{})
	require.ErrorIs(t, err, ErrInvalidInput)

	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	require.Len(t, validationErr.Errors, 4)

	all, _ := repo.List(context.Background(), ports.ListFilter{})
	require.Empty(t, all)

	order, err := svc.PlaceOrder(context.Background(), orderPayload(t, "a@x.com"))
	require.NoError(t, err)
	require.Equal(t, 2.5, order.Summary.Total)
}

func TestGetOrders_FiltersByContactNewestFirst(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	first, err := svc.CreateOrder(ctx, orderPayload(t, "a@x.com"))
	require.NoError(t, err)
	_, err = svc.CreateOrder(ctx, orderPayload(t, "b@x.com"))
	require.NoError(t, err)
	third, err := svc.CreateOrder(ctx, orderPayload(t, "A@x.com"))
	require.NoError(t, err)

	matches, err := svc.GetOrders(ctx, types.ListOrdersInput{Contact: "A@X.com "})
	require.NoError(t, err)
	require.Len(t, matches, 2)
	require.Equal(t, third.ID, matches[0].ID)
	require.Equal(t, first.ID, matches[1].ID)

	all, err := svc.GetOrders(ctx, types.ListOrdersInput{Contact: "   "})
	require.NoError(t, err)
	require.Len(t, all, 3)
}

func TestGetOrders_SingleContactMatch(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	first, err := svc.CreateOrder(ctx, orderPayload(t, "a@x.com"))
	require.NoError(t, err)
	_, err = svc.CreateOrder(ctx, orderPayload(t, "b@x.com"))
	require.NoError(t, err)

	matches, err := svc.GetOrders(ctx, types.ListOrdersInput{Contact: "A@X.com "})
	require.NoError(t, err)
	require.Len(t, matches, 1)
	require.Equal(t, first.ID, matches[0].ID)
}

func TestGetOrderByID(t *testing.T) {
	svc, _ := newTestService()
	created, err := svc.CreateOrder(context.Background(), orderPayload(t, "a@x.com"))
	require.NoError(t, err)

	loaded, err := svc.GetOrderByID(context.Background(), created.ID)
	require.NoError(t, err)
	require.Equal(t, created.ID, loaded.ID)

	_, err = svc.GetOrderByID(context.Background(), "nope")
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestUpdateOrderStatus_Confirmed(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	created, err := svc.CreateOrder(ctx, orderPayload(t, "a@x.com"))
	require.NoError(t, err)

	updated, err := svc.UpdateOrderStatus(ctx, types.UpdateStatusInput{ID: created.ID, Status: " confirmed "})
	require.NoError(t, err)
	require.Equal(t, domain.StatusConfirmed, updated.CurrentStatus.Code)
	require.NotNil(t, updated.StatusFlow[0].Timestamp)
	require.True(t, updated.StatusFlow[0].Timestamp.Equal(created.PlacedAt))
	require.NotNil(t, updated.StatusFlow[1].Timestamp)
	require.True(t, updated.StatusFlow[1].Timestamp.After(created.PlacedAt))
	require.Nil(t, updated.StatusFlow[2].Timestamp)

	reloaded, err := svc.GetOrderByID(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, updated, reloaded)
}

func TestUpdateOrderStatus_Errors(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	created, err := svc.CreateOrder(ctx, orderPayload(t, "a@x.com"))
	require.NoError(t, err)

	_, err = svc.UpdateOrderStatus(ctx, types.UpdateStatusInput{ID: "missing", Status: "bogus"})
	require.ErrorIs(t, err, ports.ErrNotFound)

	_, err = svc.UpdateOrderStatus(ctx, types.UpdateStatusInput{ID: created.ID, Status: "bogus"})
	require.ErrorIs(t, err, domain.ErrUnknownStatus)
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.UpdateOrderStatus(ctx, types.UpdateStatusInput{ID: created.ID, Status: ""})
	require.ErrorIs(t, err, domain.ErrStatusRequired)

	unchanged, err := svc.GetOrderByID(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, domain.StatusPlaced, unchanged.CurrentStatus.Code)
}

func TestStatusCatalog(t *testing.T) {
	svc, _ := newTestService()
	catalog := svc.StatusCatalog()
	require.Len(t, catalog, 3)
	require.Equal(t, domain.StatusReadyForPickup, catalog[2].Code)
	require.Equal(t, "Ready for pickup", catalog[2].Label)
}
