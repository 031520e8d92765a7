package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	"github.com/Apurer/marketplace-api/internal/app/api"
	platformobservability "github.com/Apurer/marketplace-api/internal/platform/observability"
	platformpostgres "github.com/Apurer/marketplace-api/internal/platform/postgres"
	listingactivities "github.com/Apurer/marketplace-api/internal/platform/temporal/activities/listings"
	listingworkflows "github.com/Apurer/marketplace-api/internal/platform/temporal/workflows/listings"
)

func main() {
	_ = godotenv.Load(".env")
	cfg, err := api.LoadConfig()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	ctx := context.Background()
	const serviceName = "marketplace-worker"
	instruments, shutdown, err := platformobservability.Init(ctx, cfg.Observability(serviceName))
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

	db, closeDB := platformpostgres.Open(ctx, cfg.PostgresDSN, logger)
	defer closeDB()
	publisher, closePublisher := api.BuildPublisher(cfg, logger)
	defer closePublisher()
	images, closeImages, err := api.BuildImageStorage(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to open image storage", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeImages()

	if err := cfg.DurableListings(db != nil); err != nil {
		logger.Error("listing worker cannot run", slog.String("error", err.Error()))
		os.Exit(1)
	}

	listingService := api.BuildListingService(db, images, publisher, cfg, instruments)
	activities := listingactivities.NewActivities(listingService)

	temporalClient, err := api.ConnectTemporal(cfg, instruments, "temporal-worker")
	if err != nil {
		logger.Error("failed to create Temporal client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient, listingworkflows.ListingCreationTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(listingworkflows.ListingCreationWorkflow, workflow.RegisterOptions{Name: listingworkflows.ListingCreationWorkflowName})
	w.RegisterActivityWithOptions(activities.PersistListing, activity.RegisterOptions{Name: listingactivities.PersistListingActivityName})
	w.RegisterActivityWithOptions(activities.DiscardImages, activity.RegisterOptions{Name: listingactivities.DiscardImagesActivityName})

	logger.Info("worker listening", slog.String("taskQueue", listingworkflows.ListingCreationTaskQueue), slog.String("namespace", cfg.TemporalNamespace))
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return
	}
	logger.Info("Temporal worker stopped")
}
