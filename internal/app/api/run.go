package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	marketplaceserver "github.com/Apurer/marketplace-api/go"

	listingworkflows "github.com/Apurer/marketplace-api/internal/domains/listings/adapters/workflows"
	listingsports "github.com/Apurer/marketplace-api/internal/domains/listings/ports"
	"github.com/Apurer/marketplace-api/internal/platform/auth"
	platformobservability "github.com/Apurer/marketplace-api/internal/platform/observability"
	platformpostgres "github.com/Apurer/marketplace-api/internal/platform/postgres"
)

// ServiceName identifies the HTTP API in telemetry.
const ServiceName = "marketplace-api"

// Run boots the marketplace HTTP API with observability, repositories, and workflows wired.
// It returns when ctx is cancelled or the server fails.
func Run(ctx context.Context, cfg Config) error {
	instruments, shutdown, err := platformobservability.Init(ctx, cfg.Observability(ServiceName))
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

	db, closeDB := platformpostgres.Open(ctx, cfg.PostgresDSN, logger)
	defer closeDB()

	publisher, closePublisher := BuildPublisher(cfg, logger)
	defer closePublisher()

	images, closeImages, err := BuildImageStorage(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeImages()

	listingService := BuildListingService(db, images, publisher, cfg, instruments)
	var listingFlows listingsports.WorkflowOrchestrator = listingworkflows.NewInlineListingWorkflows(listingService)
	if err := cfg.DurableListings(db != nil); err != nil {
		logger.Info("creating listings inline", slog.String("reason", err.Error()))
	} else if temporalClient, err := ConnectTemporal(cfg, instruments, "temporal-client"); err != nil {
		logger.Warn("Temporal workflows unavailable, creating listings inline", slog.String("error", err.Error()))
	} else {
		defer temporalClient.Close()
		listingFlows = listingworkflows.NewTemporalListingWorkflows(temporalClient, listingService)
		logger.Info("Temporal workflows enabled", slog.String("namespace", cfg.TemporalNamespace))
	}

	handlers := marketplaceserver.ApiHandleFunctions{
		ListingsAPI: marketplaceserver.NewListingsAPI(listingService, listingFlows, cfg.ImageURLPrefix()),
		AuthAPI:     marketplaceserver.NewAuthAPI(BuildAccountService(db, publisher, instruments)),
		PaymentsAPI: marketplaceserver.NewPaymentsAPI(BuildPaymentService(db, instruments)),
	}
	if cfg.AdminJWTSecret != "" {
		handlers.AdminGuard = auth.RequireAdmin(auth.NewVerifier(cfg.AdminJWTSecret))
	} else {
		logger.Warn("ADMIN_JWT_SECRET not set, admin payment routes are unauthenticated")
	}

	router := gin.New()
	router.Use(gin.Recovery(), otelgin.Middleware(ServiceName))
	router = marketplaceserver.NewRouterWithGinEngine(router, handlers)

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		logger.Info("marketplace API listening", slog.String("addr", server.Addr))
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		logger.Error("marketplace API server exited", slog.String("addr", server.Addr), slog.String("error", err.Error()))
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		logger.Info("shutting down marketplace API")
		return server.Shutdown(shutdownCtx)
	}
}
