//go:build pact
// +build pact

package provider_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pact-foundation/pact-go/v2/models"
	pactprovider "github.com/pact-foundation/pact-go/v2/provider"
	"github.com/stretchr/testify/require"

	marketplaceserver "github.com/Apurer/go-gin-marketplace-api/go"
	catalogapp "github.com/Apurer/go-gin-marketplace-api/internal/domains/catalog/application"
	ordersmemory "github.com/Apurer/go-gin-marketplace-api/internal/domains/orders/adapters/memory"
	ordersobs "github.com/Apurer/go-gin-marketplace-api/internal/domains/orders/adapters/observability"
	ordersworkflows "github.com/Apurer/go-gin-marketplace-api/internal/domains/orders/adapters/workflows"
	ordersapp "github.com/Apurer/go-gin-marketplace-api/internal/domains/orders/application"
	orderstypes "github.com/Apurer/go-gin-marketplace-api/internal/domains/orders/application/types"
	storesmemory "github.com/Apurer/go-gin-marketplace-api/internal/domains/stores/adapters/memory"
	storesapp "github.com/Apurer/go-gin-marketplace-api/internal/domains/stores/application"
	pacttest "github.com/Apurer/go-gin-marketplace-api/test/pact"
)

func TestMarketplaceProviderPact(t *testing.T) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	app := newContractProviderApp(t)
	pactFile := filepath.ToSlash(pacttest.PactFile(t))
	if _, err := os.Stat(pactFile); errors.Is(err, os.ErrNotExist) {
		t.Fatalf("pact file not found at %s - run the pact consumer tests first", pactFile)
	} else {
		require.NoError(t, err)
	}

	reset := func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
		app.reset()
		return nil, nil
	}
	verifier := pactprovider.NewVerifier()
	err := verifier.VerifyProvider(t, pactprovider.VerifyRequest{
		ProviderBaseURL: app.server.URL,
		Provider:        pacttest.ProviderName,
		PactFiles:       []string{pactFile},
		StateHandlers: models.StateHandlers{
			pacttest.StateStoresSeeded: reset,
			pacttest.StateOrdersBase:   reset,
			pacttest.StateOrderMissing: reset,
			pacttest.StateOrderExists: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
				app.reset()
				if setup {
					app.seedOrder(t, pacttest.ExistingOrderID)
				}
				return nil, nil
			},
		},
		BeforeEach: func() error {
			app.reset()
			return nil
		},
	})
	require.NoError(t, err)
}

// contractProviderApp rebuilds the in-memory application for every provider state.
type contractProviderApp struct {
	mu      sync.RWMutex
	handler http.Handler
	service *ordersapp.Service
	nextID  string
	server  *httptest.Server
}

func newContractProviderApp(t testing.TB) *contractProviderApp {
	t.Helper()
	app := &contractProviderApp{}
	app.reset()
	app.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		app.mu.RLock()
		handler := app.handler
		app.mu.RUnlock()
		handler.ServeHTTP(w, r)
	}))
	t.Cleanup(app.server.Close)
	return app
}

func (a *contractProviderApp) reset() {
	directory := storesmemory.NewSeededDirectory()
	storeService := storesapp.NewService(directory)
	coreOrders := ordersapp.NewService(ordersmemory.NewRepository(), directory,
		ordersapp.WithIDGenerator(a.generateID),
	)
	orderService := ordersobs.New(coreOrders)
	workflows := ordersworkflows.NewInlineOrderWorkflows(orderService, ordersmemory.NewIdempotencyStore())

	handlers := marketplaceserver.ApiHandleFunctions{
		CatalogAPI: marketplaceserver.NewCatalogAPI(catalogapp.NewService(storeService, directory)),
		OrderAPI:   marketplaceserver.NewOrderAPI(orderService, workflows),
		StoreAPI:   marketplaceserver.NewStoreAPI(storeService),
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router = marketplaceserver.NewRouterWithGinEngine(router, handlers)

	a.mu.Lock()
	defer a.mu.Unlock()
	a.handler = router
	a.service = coreOrders
	a.nextID = ""
}

func (a *contractProviderApp) generateID() string {
	if a.nextID != "" {
		id := a.nextID
		a.nextID = ""
		return id
	}
	return uuid.NewString()
}

func (a *contractProviderApp) seedOrder(t testing.TB, id string) {
	t.Helper()
	a.mu.Lock()
	a.nextID = id
	service := a.service
	a.mu.Unlock()

	var payload orderstypes.OrderPayload
	raw, err := json.Marshal(pacttest.ExampleOrderPayload())
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &payload))
	order, err := service.PlaceOrder(context.Background(), payload)
	require.NoError(t, err)
	require.Equal(t, id, order.ID)
}
