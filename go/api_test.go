package marketplaceserver

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	catalogapp "github.com/Apurer/go-gin-marketplace-api/internal/domains/catalog/application"
	ordersmemory "github.com/Apurer/go-gin-marketplace-api/internal/domains/orders/adapters/memory"
	ordersworkflows "github.com/Apurer/go-gin-marketplace-api/internal/domains/orders/adapters/workflows"
	ordersapp "github.com/Apurer/go-gin-marketplace-api/internal/domains/orders/application"
	storesmemory "github.com/Apurer/go-gin-marketplace-api/internal/domains/stores/adapters/memory"
	storesapp "github.com/Apurer/go-gin-marketplace-api/internal/domains/stores/application"
	"github.com/Apurer/go-gin-marketplace-api/internal/shared/clock"
	apierrors "github.com/Apurer/go-gin-marketplace-api/internal/shared/errors"
)

const validOrder = `{
	"storeOrders": [{"storeId": "store-101", "items": [{"sku": "APL-001", "quantity": 2}]}],
	"customerDetails": {"name": "Ada Lovelace", "contact": "Ada@Example.com"},
	"customerLocation": {"address": "12 Analytical Way"}
}`

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	directory := storesmemory.NewSeededDirectory()
	storeService := storesapp.NewService(directory)
	catalogService := catalogapp.NewService(storeService, directory)
	seq := 0
	orderService := ordersapp.NewService(ordersmemory.NewRepository(), directory,
		ordersapp.WithClock(clock.NewFixed(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))),
		ordersapp.WithIDGenerator(func() string {
			seq++
			return fmt.Sprintf("ord%05d-0000-4000-8000-000000000000", seq)
		}),
	)
	workflows := ordersworkflows.NewInlineOrderWorkflows(orderService, ordersmemory.NewIdempotencyStore())

	handlers := ApiHandleFunctions{
		CatalogAPI: NewCatalogAPI(catalogService),
		OrderAPI:   NewOrderAPI(orderService, workflows),
		StoreAPI:   NewStoreAPI(storeService),
	}
	router := gin.New()
	router.Use(gin.Recovery())
	return NewRouterWithGinEngine(router, handlers)
}

func do(t *testing.T, handler http.Handler, method, target, body string, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body
}

func placeOrder(t *testing.T, router http.Handler) map[string]any {
	t.Helper()
	rec := do(t, router, http.MethodPost, "/api/orders", validOrder)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode(t, rec)["order"].(map[string]any)
}

func TestHealth(t *testing.T) {
	rec := do(t, newTestRouter(t), http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestFindStores(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodGet, "/api/stores", "")
	require.Equal(t, http.StatusOK, rec.Code)
	stores := decode(t, rec)["stores"].([]any)
	require.Len(t, stores, 3)
	for _, raw := range stores {
		store := raw.(map[string]any)
		require.Contains(t, store, "distanceKm")
		require.Nil(t, store["distanceKm"])
	}

	rec = do(t, router, http.MethodGet, "/api/stores?lat=40.71268&lng=-74.00622&radius=0", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Empty(t, decode(t, rec)["stores"])

	rec = do(t, router, http.MethodGet, "/api/stores?lat=40.71268&lng=-74.00622&radius=abc", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, decode(t, rec)["stores"], 3)

	rec = do(t, router, http.MethodGet, "/api/stores?lat=40.7&lng=oops", "")
	require.Equal(t, http.StatusOK, rec.Code)
	for _, raw := range decode(t, rec)["stores"].([]any) {
		require.Nil(t, raw.(map[string]any)["distanceKm"])
	}
}

func TestGetStoreInventory(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodGet, "/api/stores/store-101/inventory", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	require.Equal(t, "store-101", body["store"].(map[string]any)["id"])
	require.NotEmpty(t, body["inventory"])

	rec = do(t, router, http.MethodGet, "/api/stores/store-101/inventory?q=apl-001", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, decode(t, rec)["inventory"], 1)

	rec = do(t, router, http.MethodGet, "/api/stores/nope/inventory", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, apierrors.ContentTypeProblemJSON, rec.Header().Get("Content-Type"))
	require.Equal(t, "Store not found", decode(t, rec)["detail"])
}

func TestListProducts(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodGet, "/api/products?sort=price", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	products := body["products"].([]any)
	require.NotEmpty(t, products)
	previous := -1.0
	for _, raw := range products {
		low := raw.(map[string]any)["lowestPrice"].(float64)
		require.GreaterOrEqual(t, low, previous)
		previous = low
	}
	require.NotEmpty(t, body["categories"])
	require.Len(t, body["availableStores"], 3)

	rec = do(t, router, http.MethodGet, "/api/products?q=APL-001", "")
	require.Equal(t, http.StatusOK, rec.Code)
	products = decode(t, rec)["products"].([]any)
	require.Len(t, products, 1)
	apple := products[0].(map[string]any)
	require.EqualValues(t, 3, apple["storeCount"])
	require.Equal(t, 2.39, apple["lowestPrice"])
	require.Equal(t, 2.58, apple["highestPrice"])
}

func TestPlaceOrder(t *testing.T) {
	router := newTestRouter(t)

	order := placeOrder(t, router)
	require.Equal(t, "ORD00001", order["confirmationCode"])
	require.Equal(t, "2024-06-01T12:00:00.000Z", order["placedAt"])
	summary := order["summary"].(map[string]any)
	require.Equal(t, 4.78, summary["total"])
	require.EqualValues(t, 2, summary["itemCount"])
	require.Equal(t, "placed", order["currentStatus"].(map[string]any)["code"])
}

func TestPlaceOrder_ValidationProblem(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodPost, "/api/orders", `{}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, apierrors.ContentTypeProblemJSON, rec.Header().Get("Content-Type"))
	body := decode(t, rec)
	require.Equal(t, "Order validation failed", body["detail"])
	details := body["details"].([]any)
	require.Contains(t, details, "storeId is required")
	require.Contains(t, details, "At least one item is required")
	require.Contains(t, details, "customerDetails is required")
	require.Contains(t, details, "customerLocation is required")

	rec = do(t, router, http.MethodPost, "/api/orders", `{"storeOrders":`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "Request body must be valid JSON", decode(t, rec)["detail"])
}

func TestPlaceOrder_IdempotencyKey(t *testing.T) {
	router := newTestRouter(t)

	first := do(t, router, http.MethodPost, "/api/orders", validOrder, IdempotencyKeyHeader, "cart-42")
	require.Equal(t, http.StatusCreated, first.Code)
	second := do(t, router, http.MethodPost, "/api/orders", validOrder, IdempotencyKeyHeader, "cart-42")
	require.Equal(t, http.StatusCreated, second.Code)
	require.Equal(t,
		decode(t, first)["order"].(map[string]any)["id"],
		decode(t, second)["order"].(map[string]any)["id"],
	)

	other := `{
		"storeId": "store-101",
		"items": [{"sku": "MLK-002", "quantity": 1}],
		"customerDetails": {"name": "Ada", "contact": "ada@example.com"},
		"customerLocation": {"lat": 40.7, "lng": -73.9}
	}`
	conflict := do(t, router, http.MethodPost, "/api/orders", other, IdempotencyKeyHeader, "cart-42")
	require.Equal(t, http.StatusConflict, conflict.Code)
}

func TestListOrders(t *testing.T) {
	router := newTestRouter(t)
	placeOrder(t, router)

	rec := do(t, router, http.MethodGet, "/api/orders?contact=%20ADA@example.COM%20", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, decode(t, rec)["orders"], 1)

	rec = do(t, router, http.MethodGet, "/api/orders?contact=someone@else.com", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, decode(t, rec)["orders"], 0)

	rec = do(t, router, http.MethodGet, "/api/orders", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, decode(t, rec)["orders"], 1)
}

func TestGetOrderById(t *testing.T) {
	router := newTestRouter(t)
	order := placeOrder(t, router)

	rec := do(t, router, http.MethodGet, "/api/orders/"+order["id"].(string), "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, order["id"], decode(t, rec)["order"].(map[string]any)["id"])

	rec = do(t, router, http.MethodGet, "/api/orders/missing", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "Order not found", decode(t, rec)["detail"])
}

func TestUpdateOrderStatus(t *testing.T) {
	router := newTestRouter(t)
	order := placeOrder(t, router)
	target := "/api/orders/" + order["id"].(string) + "/status"

	rec := do(t, router, http.MethodPatch, "/api/orders/missing/status", `{}`)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, router, http.MethodPatch, target, `{}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "Status code required", decode(t, rec)["detail"])

	rec = do(t, router, http.MethodPatch, target, `{"status": 7}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "Status code required", decode(t, rec)["detail"])

	rec = do(t, router, http.MethodPatch, target, `{"status": "confirmed"`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "Request body must be valid JSON", decode(t, rec)["detail"])

	rec = do(t, router, http.MethodPatch, target, `{"status": "shipped"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode(t, rec)
	require.Equal(t, "Invalid status code", body["detail"])
	require.Equal(t, []any{"placed", "confirmed", "ready_for_pickup"}, body["allowed"])

	rec = do(t, router, http.MethodPatch, target, `{"status": "confirmed"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	updated := decode(t, rec)["order"].(map[string]any)
	current := updated["currentStatus"].(map[string]any)
	require.Equal(t, "confirmed", current["code"])
	require.NotEmpty(t, current["timestamp"])
	flow := updated["statusFlow"].([]any)
	require.NotContains(t, flow[2].(map[string]any), "timestamp")
}

func TestListOrderStatuses(t *testing.T) {
	rec := do(t, newTestRouter(t), http.MethodGet, "/api/order-statuses", "")
	require.Equal(t, http.StatusOK, rec.Code)
	statuses := decode(t, rec)["statuses"].([]any)
	require.Len(t, statuses, 3)
	require.Equal(t, "placed", statuses[0].(map[string]any)["code"])
}

func TestWithCORS(t *testing.T) {
	handler := WithCORS(newTestRouter(t), nil)

	rec := do(t, handler, http.MethodGet, "/health", "", "Origin", "https://shop.example")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))

	restricted := WithCORS(newTestRouter(t), []string{" https://shop.example ", ""})
	rec = do(t, restricted, http.MethodGet, "/health", "", "Origin", "https://evil.example")
	require.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	rec = do(t, restricted, http.MethodGet, "/health", "", "Origin", "https://shop.example")
	require.Equal(t, "https://shop.example", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRequestLogger_RecordsUnmappedErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var logs bytes.Buffer
	router := gin.New()
	router.Use(RequestLogger(slog.New(slog.NewJSONHandler(&logs, nil))))
	router.GET("/api/orders", func(c *gin.Context) {
		respondError(c, errors.New("repository offline"))
	})

	rec := do(t, router, http.MethodGet, "/api/orders", "")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.NotContains(t, rec.Body.String(), "repository offline")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(logs.Bytes(), &entry))
	require.Equal(t, "ERROR", entry["level"])
	require.Contains(t, entry["error"], "repository offline")
}
