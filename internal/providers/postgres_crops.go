// internal/providers/postgres_crops.go
package providers

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"postharvest-engine/internal/common/logger"
	"postharvest-engine/internal/common/metrics"
	"postharvest-engine/internal/models"
)

// PostgresCropStore reads crop shelf-life reference data from Postgres with
// a read-through Redis cache. Cache misses and cache write failures are
// tolerated silently; the database is the source of truth.
type PostgresCropStore struct {
	db       *sql.DB
	redis    *redis.Client
	cacheTTL time.Duration
	logger   logger.Logger
}

func NewPostgresCropStore(db *sql.DB, rdb *redis.Client, cacheTTL time.Duration, log logger.Logger) *PostgresCropStore {
	return &PostgresCropStore{
		db:       db,
		redis:    rdb,
		cacheTTL: cacheTTL,
		logger:   log.WithFields(map[string]interface{}{"provider": "crop-metadata"}),
	}
}

func (s *PostgresCropStore) Get(ctx context.Context, cropName string) (*models.CropMetadata, error) {
	name := models.NormalizeCropName(cropName)

	cacheKey := "crop:metadata:" + name
	if s.redis != nil {
		if val, err := s.redis.Get(ctx, cacheKey).Result(); err == nil {
			var meta models.CropMetadata
			if err := json.Unmarshal([]byte(val), &meta); err == nil {
				return &meta, nil
			}
		}
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT name, spoilage_sensitivity, open_storage_days, cold_storage_days
		FROM crop_metadata WHERE name = $1`, name)

	var meta models.CropMetadata
	err := row.Scan(&meta.Name, &meta.Spoilage, &meta.OpenStorageDays, &meta.ColdStorageDays)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrCropNotFound, name)
	}
	if err != nil {
		metrics.ProviderErrors.WithLabelValues("crop-metadata").Inc()
		return nil, fmt.Errorf("crop metadata query: %w", err)
	}

	if s.redis != nil {
		if data, err := json.Marshal(meta); err == nil {
			if err := s.redis.Set(ctx, cacheKey, data, s.cacheTTL).Err(); err != nil {
				s.logger.Warn("crop metadata cache write failed", map[string]interface{}{
					"crop":  name,
					"error": err,
				})
			}
		}
	}

	return &meta, nil
}
