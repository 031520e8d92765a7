package main

import (
	"context"
	"log"
	"log/slog"
	"time"

	"github.com/joho/godotenv"

	"github.com/Apurer/marketplace-api/internal/app/api"
	accountpostgres "github.com/Apurer/marketplace-api/internal/domains/accounts/adapters/persistence/postgres"
	platformobservability "github.com/Apurer/marketplace-api/internal/platform/observability"
	platformpostgres "github.com/Apurer/marketplace-api/internal/platform/postgres"
)

func main() {
	_ = godotenv.Load(".env")
	cfg, err := api.LoadConfig()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	logger := platformobservability.NewLogger(nil, cfg.LogLevel).With(slog.String("service", "marketplace-token-purger"))
	db, cleanup := platformpostgres.Open(ctx, cfg.PostgresDSN, logger)
	defer cleanup()
	if db == nil {
		log.Fatal("POSTGRES_DSN not set or connection failed; cannot purge reset tokens")
	}

	cutoff := time.Now().Add(-cfg.ResetTokenRetention())
	purged, err := accountpostgres.NewTokenStore(db).PurgeExpired(ctx, cutoff)
	if err != nil {
		log.Fatalf("failed to purge reset tokens: %v", err)
	}
	logger.Info("reset token purge completed", slog.Int64("purged", purged), slog.Time("cutoff", cutoff))
}
