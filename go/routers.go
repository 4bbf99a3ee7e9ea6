package marketplaceserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Route is the information for every URI.
type Route struct {
	// Name is the name of this Route.
	Name string
	// Method is the string for the HTTP method. ex) GET, POST etc..
	Method string
	// Pattern is the pattern of the URI.
	Pattern string
	// HandlerFunc is the handler function of this route.
	HandlerFunc gin.HandlerFunc
}

// NewRouter returns a new router.
func NewRouter(handleFunctions ApiHandleFunctions) *gin.Engine {
	return NewRouterWithGinEngine(gin.Default(), handleFunctions)
}

// NewRouterWithGinEngine adds the marketplace routes to an existing gin engine.
// Middleware must be attached to the engine before calling it.
func NewRouterWithGinEngine(router *gin.Engine, handleFunctions ApiHandleFunctions) *gin.Engine {
	for _, route := range getRoutes(handleFunctions) {
		if route.HandlerFunc == nil {
			route.HandlerFunc = DefaultHandleFunc
		}
		switch route.Method {
		case http.MethodGet:
			router.GET(route.Pattern, route.HandlerFunc)
		case http.MethodPost:
			router.POST(route.Pattern, route.HandlerFunc)
		case http.MethodPut:
			router.PUT(route.Pattern, route.HandlerFunc)
		case http.MethodPatch:
			router.PATCH(route.Pattern, route.HandlerFunc)
		case http.MethodDelete:
			router.DELETE(route.Pattern, route.HandlerFunc)
		}
	}

	return router
}

// DefaultHandleFunc answers routes whose handler was not wired.
func DefaultHandleFunc(c *gin.Context) {
	c.String(http.StatusNotImplemented, "501 not implemented")
}

type ApiHandleFunctions struct {
	// Routes for the catalog part of the API
	CatalogAPI CatalogAPI
	// Routes for the order part of the API
	OrderAPI OrderAPI
	// Routes for the store part of the API
	StoreAPI StoreAPI
}

func getRoutes(handleFunctions ApiHandleFunctions) []Route {
	return []Route{
		{
			"Health",
			http.MethodGet,
			"/health",
			Health,
		},
		{
			"FindStores",
			http.MethodGet,
			"/api/stores",
			handleFunctions.StoreAPI.FindStores,
		},
		{
			"GetStoreInventory",
			http.MethodGet,
			"/api/stores/:storeId/inventory",
			handleFunctions.StoreAPI.GetStoreInventory,
		},
		{
			"ListProducts",
			http.MethodGet,
			"/api/products",
			handleFunctions.CatalogAPI.ListProducts,
		},
		{
			"PlaceOrder",
			http.MethodPost,
			"/api/orders",
			handleFunctions.OrderAPI.PlaceOrder,
		},
		{
			"ListOrders",
			http.MethodGet,
			"/api/orders",
			handleFunctions.OrderAPI.ListOrders,
		},
		{
			"GetOrderById",
			http.MethodGet,
			"/api/orders/:orderId",
			handleFunctions.OrderAPI.GetOrderById,
		},
		{
			"UpdateOrderStatus",
			http.MethodPatch,
			"/api/orders/:orderId/status",
			handleFunctions.OrderAPI.UpdateOrderStatus,
		},
		{
			"ListOrderStatuses",
			http.MethodGet,
			"/api/order-statuses",
			handleFunctions.OrderAPI.ListOrderStatuses,
		},
	}
}

// Get /health
// Liveness probe
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
