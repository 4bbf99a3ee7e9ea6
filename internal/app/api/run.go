package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"

	marketplaceserver "github.com/Apurer/go-gin-marketplace-api/go"

	catalogobs "github.com/Apurer/go-gin-marketplace-api/internal/domains/catalog/adapters/observability"
	catalogapp "github.com/Apurer/go-gin-marketplace-api/internal/domains/catalog/application"
	ordersmemory "github.com/Apurer/go-gin-marketplace-api/internal/domains/orders/adapters/memory"
	ordersobs "github.com/Apurer/go-gin-marketplace-api/internal/domains/orders/adapters/observability"
	orderspostgres "github.com/Apurer/go-gin-marketplace-api/internal/domains/orders/adapters/persistence/postgres"
	ordersworkflows "github.com/Apurer/go-gin-marketplace-api/internal/domains/orders/adapters/workflows"
	ordersapp "github.com/Apurer/go-gin-marketplace-api/internal/domains/orders/application"
	ordersports "github.com/Apurer/go-gin-marketplace-api/internal/domains/orders/ports"
	storesmemory "github.com/Apurer/go-gin-marketplace-api/internal/domains/stores/adapters/memory"
	storesobs "github.com/Apurer/go-gin-marketplace-api/internal/domains/stores/adapters/observability"
	storesapp "github.com/Apurer/go-gin-marketplace-api/internal/domains/stores/application"
	"github.com/Apurer/go-gin-marketplace-api/internal/platform/migrations"
	platformobservability "github.com/Apurer/go-gin-marketplace-api/internal/platform/observability"
	platformpostgres "github.com/Apurer/go-gin-marketplace-api/internal/platform/postgres"
)

const serviceName = "marketplace-api"

// Run boots the marketplace HTTP API with observability, repositories, and workflows wired.
// It returns once ctx is cancelled and the server has drained.
func Run(ctx context.Context) error {
	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	instruments, shutdown, err := platformobservability.Init(ctx, platformobservability.Settings{
		ServiceName: serviceName,
		Environment: cfg.Environment,
		LogLevel:    cfg.LogLevel,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	directory, err := BuildDirectory(cfg, logger)
	if err != nil {
		return err
	}
	storeService := storesobs.New(
		storesapp.NewService(directory, storesapp.WithDefaultRadius(cfg.DefaultRadiusKm)),
		storesobs.WithLogger(logger),
		storesobs.WithTracer(instruments.Tracer("internal.stores.application")),
		storesobs.WithMeter(instruments.Meter("internal.stores.application")),
	)
	catalogService := catalogobs.New(
		catalogapp.NewService(storeService, directory),
		catalogobs.WithLogger(logger),
		catalogobs.WithTracer(instruments.Tracer("internal.catalog.application")),
		catalogobs.WithMeter(instruments.Meter("internal.catalog.application")),
	)

	persistence, cleanupPersistence := BuildOrderPersistence(ctx, cfg, logger)
	defer cleanupPersistence()
	orderService := ordersobs.New(
		ordersapp.NewService(persistence.Repository, directory,
			ordersapp.WithLogger(logger),
			ordersapp.WithMeter(instruments.Meter("internal.orders.application")),
		),
		ordersobs.WithLogger(logger),
		ordersobs.WithTracer(instruments.Tracer("internal.orders.application")),
		ordersobs.WithMeter(instruments.Meter("internal.orders.application")),
	)
	var orderWorkflows ordersports.WorkflowOrchestrator = ordersworkflows.NewInlineOrderWorkflows(orderService, persistence.Idempotency)
	if err := CheckTemporalPlacement(cfg, persistence); err != nil {
		logger.Info("placing orders inline", slog.String("reason", err.Error()))
	} else if temporalClient, err := ConnectTemporalClient(cfg, instruments); err != nil {
		logger.Warn("Temporal workflows unavailable, placing orders inline", slog.String("error", err.Error()))
	} else {
		defer temporalClient.Close()
		orderWorkflows = ordersworkflows.NewTemporalOrderWorkflows(temporalClient)
		logger.Info("Temporal workflows enabled", slog.String("namespace", cfg.TemporalNamespace))
	}

	handlers := marketplaceserver.ApiHandleFunctions{
		CatalogAPI: marketplaceserver.NewCatalogAPI(catalogService),
		OrderAPI:   marketplaceserver.NewOrderAPI(orderService, orderWorkflows),
		StoreAPI:   marketplaceserver.NewStoreAPI(storeService),
	}

	engine := gin.New()
	engine.Use(gin.Recovery(), otelgin.Middleware(serviceName), marketplaceserver.RequestLogger(logger))
	router := marketplaceserver.NewRouterWithGinEngine(engine, handlers)

	addr := ":" + cfg.Port
	server := &http.Server{
		Addr:              addr,
		Handler:           marketplaceserver.WithCORS(router, cfg.CORSAllowedOrigins),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("Marketplace API listening", slog.String("addr", addr))
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Marketplace API server exited", slog.String("addr", addr), slog.String("error", err.Error()))
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down Marketplace API")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", slog.String("error", err.Error()))
		return err
	}
	return nil
}

// BuildDirectory loads the store directory from CATALOG_SEED_FILE, or the built-in seed data.
func BuildDirectory(cfg Config, logger *slog.Logger) (*storesmemory.Directory, error) {
	if cfg.CatalogSeedFile == "" {
		return storesmemory.NewSeededDirectory(), nil
	}
	directory, err := storesmemory.LoadDirectory(cfg.CatalogSeedFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog seed file %s: %w", cfg.CatalogSeedFile, err)
	}
	logger.Info("store directory loaded from seed file", slog.String("path", cfg.CatalogSeedFile))
	return directory, nil
}

// OrderPersistence bundles the order stores chosen for the process. Shared is
// true when other processes see the same orders.
type OrderPersistence struct {
	Repository  ordersports.Repository
	Idempotency ordersports.IdempotencyStore
	Shared      bool
}

var (
	errTemporalDisabled = errors.New("temporal disabled: TEMPORAL_ADDRESS unset or TEMPORAL_DISABLED set")
	errLocalPersistence = errors.New("order persistence is process-local: set POSTGRES_DSN so the API and worker share orders")
)

// CheckTemporalPlacement returns nil when orders may be placed through Temporal
// workers. Workers persist orders themselves, so the API must read the same store.
func CheckTemporalPlacement(cfg Config, persistence OrderPersistence) error {
	if !cfg.TemporalEnabled() {
		return errTemporalDisabled
	}
	if !persistence.Shared {
		return errLocalPersistence
	}
	return nil
}

// BuildOrderPersistence uses PostgreSQL when POSTGRES_DSN is reachable and falls back to memory.
func BuildOrderPersistence(ctx context.Context, cfg Config, logger *slog.Logger) (OrderPersistence, func()) {
	inMemory := OrderPersistence{
		Repository:  ordersmemory.NewRepository(),
		Idempotency: ordersmemory.NewIdempotencyStore(),
	}
	db, cleanup := platformpostgres.ConnectOrFallback(ctx, cfg.PostgresDSN, logger)
	if db == nil {
		return inMemory, cleanup
	}
	if err := migrations.Run(db); err != nil {
		logger.Warn("failed to migrate postgres, falling back to memory", slog.String("error", err.Error()))
		cleanup()
		return inMemory, func() {}
	}
	logger.Info("order persistence configured with postgres")
	return OrderPersistence{
		Repository:  orderspostgres.NewRepository(db),
		Idempotency: orderspostgres.NewIdempotencyStore(db),
		Shared:      true,
	}, cleanup
}

// ConnectTemporalClient dials Temporal with tracing and structured logging.
func ConnectTemporalClient(cfg Config, instruments *platformobservability.Instruments) (client.Client, error) {
	if !cfg.TemporalEnabled() {
		return nil, errTemporalDisabled
	}
	tracerOptions := temporalotel.TracerOptions{}
	if instruments != nil {
		tracerOptions.Tracer = instruments.Tracer("temporal-client")
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		return nil, err
	}
	options := client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Logger:    workerlog.NewStructuredLogger(effectiveLogger(instruments)),
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}

func effectiveLogger(instruments *platformobservability.Instruments) *slog.Logger {
	if instruments != nil && instruments.Logger != nil {
		return instruments.Logger
	}
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}
