// internal/providers/postgres_crops_test.go
package providers

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"postharvest-engine/internal/common/logger"
	"postharvest-engine/internal/models"
)

func TestPostgresCropStore_Get(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT name, spoilage_sensitivity, open_storage_days, cold_storage_days").
		WithArgs("tomato").
		WillReturnRows(sqlmock.NewRows([]string{"name", "spoilage_sensitivity", "open_storage_days", "cold_storage_days"}).
			AddRow("tomato", "HIGH", 3, 21))

	store := NewPostgresCropStore(db, nil, time.Minute, logger.NewTestLogger(t))

	meta, err := store.Get(context.Background(), "  Tomato ")
	require.NoError(t, err)

	assert.Equal(t, "tomato", meta.Name)
	assert.Equal(t, models.SpoilageHigh, meta.Spoilage)
	assert.Equal(t, 3, meta.OpenStorageDays)
	assert.Equal(t, 21, meta.ColdStorageDays)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresCropStore_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT name, spoilage_sensitivity, open_storage_days, cold_storage_days").
		WithArgs("dragonfruit").
		WillReturnRows(sqlmock.NewRows([]string{"name", "spoilage_sensitivity", "open_storage_days", "cold_storage_days"}))

	store := NewPostgresCropStore(db, nil, time.Minute, logger.NewTestLogger(t))

	_, err = store.Get(context.Background(), "dragonfruit")
	assert.ErrorIs(t, err, ErrCropNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresCropStore_CachesSecondLookup(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mini := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mini.Addr()})
	defer rdb.Close()

	// Exactly one database round trip despite two lookups.
	mock.ExpectQuery("SELECT name, spoilage_sensitivity, open_storage_days, cold_storage_days").
		WithArgs("onion").
		WillReturnRows(sqlmock.NewRows([]string{"name", "spoilage_sensitivity", "open_storage_days", "cold_storage_days"}).
			AddRow("onion", "LOW", 60, 180))

	store := NewPostgresCropStore(db, rdb, time.Minute, logger.NewTestLogger(t))

	first, err := store.Get(context.Background(), "onion")
	require.NoError(t, err)
	second, err := store.Get(context.Background(), "ONION")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.NoError(t, mock.ExpectationsWereMet())
	assert.True(t, mini.Exists("crop:metadata:onion"))
}

func TestPostgresCropStore_CacheHitSkipsDatabase(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rdb, redisMock := redismock.NewClientMock()
	redisMock.ExpectGet("crop:metadata:wheat").
		SetVal(`{"name":"wheat","spoilageSensitivity":"LOW","openStorageDays":180,"coldStorageDays":365}`)

	store := NewPostgresCropStore(db, rdb, time.Minute, logger.NewTestLogger(t))

	meta, err := store.Get(context.Background(), "wheat")
	require.NoError(t, err)

	assert.Equal(t, "wheat", meta.Name)
	assert.Equal(t, 180, meta.OpenStorageDays)
	assert.NoError(t, redisMock.ExpectationsWereMet())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresCropStore_SurvivesRedisOutage(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mini := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mini.Addr()})
	defer rdb.Close()
	mini.Close()

	mock.ExpectQuery("SELECT name, spoilage_sensitivity, open_storage_days, cold_storage_days").
		WithArgs("potato").
		WillReturnRows(sqlmock.NewRows([]string{"name", "spoilage_sensitivity", "open_storage_days", "cold_storage_days"}).
			AddRow("potato", "MEDIUM", 21, 120))

	store := NewPostgresCropStore(db, rdb, time.Minute, logger.NewTestLogger(t))

	meta, err := store.Get(context.Background(), "potato")
	require.NoError(t, err)
	assert.Equal(t, "potato", meta.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}
