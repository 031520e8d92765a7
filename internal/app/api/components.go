package api

import (
	"context"
	"fmt"
	"log/slog"

	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	accountcrypto "github.com/Apurer/marketplace-api/internal/domains/accounts/adapters/crypto"
	accountmemory "github.com/Apurer/marketplace-api/internal/domains/accounts/adapters/memory"
	accountsobs "github.com/Apurer/marketplace-api/internal/domains/accounts/adapters/observability"
	accountpostgres "github.com/Apurer/marketplace-api/internal/domains/accounts/adapters/persistence/postgres"
	accountsapp "github.com/Apurer/marketplace-api/internal/domains/accounts/application"
	accountsports "github.com/Apurer/marketplace-api/internal/domains/accounts/ports"
	listingmemory "github.com/Apurer/marketplace-api/internal/domains/listings/adapters/memory"
	listingsobs "github.com/Apurer/marketplace-api/internal/domains/listings/adapters/observability"
	listingpostgres "github.com/Apurer/marketplace-api/internal/domains/listings/adapters/persistence/postgres"
	listinggridfs "github.com/Apurer/marketplace-api/internal/domains/listings/adapters/storage/gridfs"
	listinglocal "github.com/Apurer/marketplace-api/internal/domains/listings/adapters/storage/local"
	listingsapp "github.com/Apurer/marketplace-api/internal/domains/listings/application"
	listingsports "github.com/Apurer/marketplace-api/internal/domains/listings/ports"
	paymentmemory "github.com/Apurer/marketplace-api/internal/domains/payments/adapters/memory"
	paymentsobs "github.com/Apurer/marketplace-api/internal/domains/payments/adapters/observability"
	paymentpostgres "github.com/Apurer/marketplace-api/internal/domains/payments/adapters/persistence/postgres"
	paymentsapp "github.com/Apurer/marketplace-api/internal/domains/payments/application"
	paymentsports "github.com/Apurer/marketplace-api/internal/domains/payments/ports"
	"github.com/Apurer/marketplace-api/internal/platform/messaging/rabbitmq"
	"github.com/Apurer/marketplace-api/internal/platform/mongodb"
	platformobservability "github.com/Apurer/marketplace-api/internal/platform/observability"
	"github.com/Apurer/marketplace-api/internal/shared/events"
)

// BuildPublisher dials RabbitMQ when RABBITMQ_URL is set. Delivery failures are logged, never
// returned to the use case.
func BuildPublisher(cfg Config, logger *slog.Logger) (events.Publisher, func()) {
	if cfg.RabbitMQURL == "" {
		logger.Info("RABBITMQ_URL not set, domain events are dropped")
		return events.NoopPublisher, func() {}
	}
	pub, err := rabbitmq.Dial(cfg.RabbitMQURL, cfg.RabbitMQExchange)
	if err != nil {
		logger.Warn("failed to connect to rabbitmq, domain events are dropped", slog.String("error", err.Error()))
		return events.NoopPublisher, func() {}
	}
	logger.Info("domain events published to rabbitmq", slog.String("exchange", cfg.RabbitMQExchange))
	return events.BestEffort(pub, logger), func() { _ = pub.Close() }
}

// BuildImageStorage opens the configured image backend.
func BuildImageStorage(ctx context.Context, cfg Config, logger *slog.Logger) (listingsports.ImageStorage, func(), error) {
	switch cfg.ImageStorage {
	case ImageStorageGridFS:
		db, disconnect, err := mongodb.Database(ctx, cfg.MongoURI, cfg.MongoDatabase, logger)
		if err != nil {
			return nil, func() {}, fmt.Errorf("connect image storage: %w", err)
		}
		storage, err := listinggridfs.New(db)
		if err != nil {
			disconnect()
			return nil, func() {}, err
		}
		logger.Info("listing images stored in gridfs", slog.String("database", cfg.MongoDatabase))
		return storage, disconnect, nil
	default:
		storage, err := listinglocal.New(cfg.UploadDir)
		if err != nil {
			return nil, func() {}, fmt.Errorf("prepare upload dir: %w", err)
		}
		logger.Info("listing images stored on disk", slog.String("dir", cfg.UploadDir))
		return storage, func() {}, nil
	}
}

// BuildListingService wires the listings use cases with the chosen repository and storage.
func BuildListingService(db *gorm.DB, images listingsports.ImageStorage, publisher events.Publisher, cfg Config, instruments *platformobservability.Instruments) listingsports.Service {
	var repo listingsports.Repository = listingmemory.NewRepository()
	if db != nil {
		repo = listingpostgres.NewRepository(db)
	}
	core := listingsapp.NewService(repo, images,
		listingsapp.WithPublisher(publisher),
		listingsapp.WithImageURLPrefix(cfg.ImageURLPrefix()),
	)
	return listingsobs.New(core,
		listingsobs.WithLogger(instruments.Logger),
		listingsobs.WithTracer(instruments.Tracer("internal.listings.application")),
		listingsobs.WithMeter(instruments.Meter("internal.listings.application")),
	)
}

// BuildAccountService wires the reset-password flow.
func BuildAccountService(db *gorm.DB, publisher events.Publisher, instruments *platformobservability.Instruments) accountsports.Service {
	var (
		accounts accountsports.AccountRepository = accountmemory.NewAccountRepository()
		tokens   accountsports.TokenStore        = accountmemory.NewTokenStore()
	)
	if db != nil {
		accounts = accountpostgres.NewAccountRepository(db)
		tokens = accountpostgres.NewTokenStore(db)
	}
	core := accountsapp.NewService(accounts, tokens, accountcrypto.NewBcryptHasher(bcrypt.DefaultCost), accountsapp.WithPublisher(publisher))
	return accountsobs.New(core,
		accountsobs.WithLogger(instruments.Logger),
		accountsobs.WithTracer(instruments.Tracer("internal.accounts.application")),
		accountsobs.WithMeter(instruments.Meter("internal.accounts.application")),
	)
}

// BuildPaymentService wires order placement and the admin listing.
func BuildPaymentService(db *gorm.DB, instruments *platformobservability.Instruments) paymentsports.Service {
	var repo paymentsports.Repository = paymentmemory.NewRepository()
	if db != nil {
		repo = paymentpostgres.NewRepository(db)
	}
	return paymentsobs.New(paymentsapp.NewService(repo),
		paymentsobs.WithLogger(instruments.Logger),
		paymentsobs.WithTracer(instruments.Tracer("internal.payments.application")),
		paymentsobs.WithMeter(instruments.Meter("internal.payments.application")),
	)
}

// ConnectTemporal dials Temporal with tracing and the structured logger.
func ConnectTemporal(cfg Config, instruments *platformobservability.Instruments, tracerName string) (client.Client, error) {
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(temporalotel.TracerOptions{Tracer: instruments.Tracer(tracerName)})
	if err != nil {
		return nil, err
	}
	options := client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Logger:    workerlog.NewStructuredLogger(instruments.Logger),
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}
