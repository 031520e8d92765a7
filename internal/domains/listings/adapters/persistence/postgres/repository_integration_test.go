//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Apurer/marketplace-api/internal/domains/listings/domain"
	"github.com/Apurer/marketplace-api/internal/platform/migrations"
)

func setupListingsPostgresContainer(t *testing.T) (*gorm.DB, func()) {
	ctx := context.Background()

	pgContainer, err := tcpostgres.Run(ctx, "postgres:15-alpine",
		tcpostgres.WithDatabase("marketplace_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	err = migrations.Run(db)
	require.NoError(t, err)

	cleanup := func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		pgContainer.Terminate(ctx)
	}

	return db, cleanup
}

func TestRepository_AppendAssignsSequentialIDs(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupListingsPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	age := 2
	first, err := repo.Append(ctx, domain.NewListing(domain.Draft{
		Title:  "Goat",
		Age:    &age,
		Images: []string{"/uploads/1-a.png", "/uploads/1-b.png"},
		ForEid: true,
	}, time.Now()))
	require.NoError(t, err)

	second, err := repo.Append(ctx, domain.NewListing(domain.Draft{Title: "Sheep"}, time.Now()))
	require.NoError(t, err)
	assert.Equal(t, first.ID+1, second.ID)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Goat", list[0].Title)
	assert.Equal(t, []string{"/uploads/1-a.png", "/uploads/1-b.png"}, list[0].Images)
	require.NotNil(t, list[0].Age)
	assert.Equal(t, 2, *list[0].Age)
	assert.Nil(t, list[1].Age)
	assert.True(t, list[0].ForEid)
	assert.Equal(t, domain.StatusActive, list[1].Status)
}
