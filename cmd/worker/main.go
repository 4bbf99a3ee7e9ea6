package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	"github.com/Apurer/go-gin-marketplace-api/internal/app/api"
	ordersobs "github.com/Apurer/go-gin-marketplace-api/internal/domains/orders/adapters/observability"
	ordersapp "github.com/Apurer/go-gin-marketplace-api/internal/domains/orders/application"
	platformobservability "github.com/Apurer/go-gin-marketplace-api/internal/platform/observability"
	orderactivities "github.com/Apurer/go-gin-marketplace-api/internal/platform/temporal/activities/orders"
	orderworkflows "github.com/Apurer/go-gin-marketplace-api/internal/platform/temporal/workflows/orders"
)

func main() {
	ctx := context.Background()
	const serviceName = "marketplace-worker"
	cfg, err := api.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	instruments, shutdown, err := platformobservability.Init(ctx, platformobservability.Settings{
		ServiceName: serviceName,
		Environment: cfg.Environment,
		LogLevel:    cfg.LogLevel,
	})
	if err != nil {
		log.Fatalf("failed to initialize observability: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	directory, err := api.BuildDirectory(cfg, logger)
	if err != nil {
		logger.Error("failed to build store directory", slog.String("error", err.Error()))
		os.Exit(1)
	}
	persistence, cleanupPersistence := api.BuildOrderPersistence(ctx, cfg, logger)
	defer cleanupPersistence()
	if err := api.CheckTemporalPlacement(cfg, persistence); err != nil {
		logger.Error("refusing to start order placement worker", slog.String("error", err.Error()))
		cleanupPersistence()
		os.Exit(1)
	}
	orderService := ordersobs.New(
		ordersapp.NewService(persistence.Repository, directory,
			ordersapp.WithLogger(logger),
			ordersapp.WithMeter(instruments.Meter("internal.orders.application")),
		),
		ordersobs.WithLogger(logger),
		ordersobs.WithTracer(instruments.Tracer("internal.orders.application")),
		ordersobs.WithMeter(instruments.Meter("internal.orders.application")),
	)
	orderActivities := orderactivities.NewActivities(orderService)

	temporalClient, err := api.ConnectTemporalClient(cfg, instruments)
	if err != nil {
		logger.Error("failed to create Temporal client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient, orderworkflows.OrderPlacementTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(orderworkflows.OrderPlacementWorkflow, workflow.RegisterOptions{Name: orderworkflows.OrderPlacementWorkflowName})
	w.RegisterActivityWithOptions(orderActivities.PlaceOrder, activity.RegisterOptions{Name: orderactivities.PlaceOrderActivityName})

	logger.Info("worker listening", slog.String("taskQueue", orderworkflows.OrderPlacementTaskQueue), slog.String("namespace", cfg.TemporalNamespace))
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return
	}
	logger.Info("Temporal worker stopped")
}
