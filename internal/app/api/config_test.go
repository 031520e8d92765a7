package api

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "IMAGE_STORAGE", "UPLOAD_DIR", "UPLOAD_URL_PREFIX", "RESET_TOKEN_RETENTION_HOURS", "POSTGRES_DSN", "ADMIN_JWT_SECRET"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, ":3001", cfg.Addr())
	assert.Equal(t, ImageStorageLocal, cfg.ImageStorage)
	assert.Equal(t, "uploads", cfg.UploadDir)
	assert.Equal(t, "/uploads", cfg.ImageURLPrefix())
	assert.Equal(t, 24*time.Hour, cfg.ResetTokenRetention())
	assert.Equal(t, "marketplace.events", cfg.RabbitMQExchange)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("IMAGE_STORAGE", "GridFS")
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("UPLOAD_URL_PREFIX", "static/images/")
	t.Setenv("RESET_TOKEN_RETENTION_HOURS", "48")
	t.Setenv("TEMPORAL_DISABLED", "true")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Addr())
	assert.Equal(t, ImageStorageGridFS, cfg.ImageStorage)
	assert.Equal(t, "/static/images", cfg.ImageURLPrefix())
	assert.Equal(t, 48*time.Hour, cfg.ResetTokenRetention())
	assert.True(t, cfg.TemporalDisabled)
}

func TestLoadConfigRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"unknown storage", map[string]string{"IMAGE_STORAGE": "s3"}},
		{"gridfs without uri", map[string]string{"IMAGE_STORAGE": "gridfs", "MONGO_URI": ""}},
		{"non numeric retention", map[string]string{"RESET_TOKEN_RETENTION_HOURS": "soon"}},
		{"zero retention", map[string]string{"RESET_TOKEN_RETENTION_HOURS": "0"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			_, err := LoadConfig()
			require.Error(t, err)
		})
	}
}

func TestDurableListingsNeedsSharedStores(t *testing.T) {
	shared := Config{ImageStorage: ImageStorageGridFS}

	tests := []struct {
		name        string
		cfg         Config
		dbConnected bool
		want        error
	}{
		{"postgres and gridfs", shared, true, nil},
		{"gridfs in any case", Config{ImageStorage: "GridFS"}, true, nil},
		{"disabled", Config{ImageStorage: ImageStorageGridFS, TemporalDisabled: true}, true, ErrTemporalDisabled},
		{"memory listings", shared, false, ErrNoSharedListingStore},
		{"local images", Config{ImageStorage: ImageStorageLocal}, true, ErrNoSharedImageStorage},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.DurableListings(tc.dbConnected)
			if tc.want == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tc.want)
		})
	}
}
