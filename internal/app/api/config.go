package api

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/Apurer/marketplace-api/internal/platform/observability"
)

// Image storage backends selectable through IMAGE_STORAGE.
const (
	ImageStorageLocal  = "local"
	ImageStorageGridFS = "gridfs"
)

// Reasons listing creation cannot run through Temporal.
var (
	ErrTemporalDisabled     = errors.New("temporal disabled via TEMPORAL_DISABLED")
	ErrNoSharedListingStore = errors.New("temporal listing workflows need POSTGRES_DSN so the API and the worker share listings")
	ErrNoSharedImageStorage = errors.New("temporal listing workflows need IMAGE_STORAGE=gridfs so the worker can reach stored images")
)

// Config carries environment-driven settings for the marketplace processes.
type Config struct {
	Port        string `envconfig:"PORT" default:"3001"`
	Environment string `envconfig:"ENVIRONMENT" default:"local"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`

	OTLPEndpoint string `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OTLPInsecure bool   `envconfig:"OTEL_EXPORTER_OTLP_INSECURE" default:"true"`

	PostgresDSN string `envconfig:"POSTGRES_DSN"`

	UploadDir       string `envconfig:"UPLOAD_DIR" default:"uploads"`
	UploadURLPrefix string `envconfig:"UPLOAD_URL_PREFIX" default:"/uploads"`
	ImageStorage    string `envconfig:"IMAGE_STORAGE" default:"local"`
	MongoURI        string `envconfig:"MONGO_URI"`
	MongoDatabase   string `envconfig:"MONGO_DATABASE" default:"marketplace"`

	RabbitMQURL      string `envconfig:"RABBITMQ_URL"`
	RabbitMQExchange string `envconfig:"RABBITMQ_EXCHANGE" default:"marketplace.events"`

	TemporalAddress   string `envconfig:"TEMPORAL_ADDRESS" default:"localhost:7233"`
	TemporalNamespace string `envconfig:"TEMPORAL_NAMESPACE" default:"default"`
	TemporalDisabled  bool   `envconfig:"TEMPORAL_DISABLED"`

	AdminJWTSecret string `envconfig:"ADMIN_JWT_SECRET"`

	ResetTokenRetentionHours int `envconfig:"RESET_TOKEN_RETENTION_HOURS" default:"24"`
}

// LoadConfig reads environment variables, applies defaults, and validates basic constraints.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("read environment: %w", err)
	}
	cfg.ImageStorage = strings.ToLower(strings.TrimSpace(cfg.ImageStorage))
	cfg.PostgresDSN = strings.TrimSpace(cfg.PostgresDSN)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks cross-field constraints.
func (c Config) Validate() error {
	switch c.ImageStorage {
	case ImageStorageLocal:
		if strings.TrimSpace(c.UploadDir) == "" {
			return errors.New("UPLOAD_DIR must not be empty for local image storage")
		}
	case ImageStorageGridFS:
		if strings.TrimSpace(c.MongoURI) == "" {
			return errors.New("MONGO_URI is required for gridfs image storage")
		}
	default:
		return fmt.Errorf("IMAGE_STORAGE must be %q or %q, got %q", ImageStorageLocal, ImageStorageGridFS, c.ImageStorage)
	}
	if c.ResetTokenRetentionHours <= 0 {
		return errors.New("RESET_TOKEN_RETENTION_HOURS must be a positive integer")
	}
	return nil
}

// Addr is the HTTP listen address.
func (c Config) Addr() string {
	return ":" + strings.TrimPrefix(c.Port, ":")
}

// ImageURLPrefix returns the upload prefix with a single leading slash and no trailing slash.
func (c Config) ImageURLPrefix() string {
	prefix := "/" + strings.Trim(strings.TrimSpace(c.UploadURLPrefix), "/")
	if prefix == "/" {
		return "/uploads"
	}
	return prefix
}

// ResetTokenRetention is how long expired or consumed reset tokens are kept.
func (c Config) ResetTokenRetention() time.Duration {
	return time.Duration(c.ResetTokenRetentionHours) * time.Hour
}

// Observability returns the telemetry settings for serviceName.
func (c Config) Observability(serviceName string) observability.Settings {
	return observability.Settings{
		ServiceName:  serviceName,
		Environment:  c.Environment,
		LogLevel:     c.LogLevel,
		OTLPEndpoint: c.OTLPEndpoint,
		OTLPInsecure: c.OTLPInsecure,
	}
}

// DurableListings reports why listing creation cannot go through Temporal, or nil when it can.
// The API and the worker each build their own stores, so both must point at Postgres and GridFS.
func (c Config) DurableListings(dbConnected bool) error {
	switch {
	case c.TemporalDisabled:
		return ErrTemporalDisabled
	case !dbConnected:
		return ErrNoSharedListingStore
	case !strings.EqualFold(c.ImageStorage, ImageStorageGridFS):
		return ErrNoSharedImageStorage
	default:
		return nil
	}
}
