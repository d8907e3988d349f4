// internal/providers/postgres_storage.go
package providers

import (
	"context"
	"database/sql"
	"fmt"

	"postharvest-engine/internal/common/logger"
	"postharvest-engine/internal/common/metrics"
	"postharvest-engine/internal/models"
	"postharvest-engine/pkg/geo"
)

// PostgresStorageFinder matches storage facilities from Postgres. Candidates
// of the right type with spare capacity are ranked by distance to the
// farmer, cheapest daily rate breaking ties.
type PostgresStorageFinder struct {
	db       *sql.DB
	searchKm float64
	logger   logger.Logger
}

func NewPostgresStorageFinder(db *sql.DB, searchKm float64, log logger.Logger) *PostgresStorageFinder {
	if searchKm <= 0 {
		searchKm = 50
	}
	return &PostgresStorageFinder{
		db:       db,
		searchKm: searchKm,
		logger:   log.WithFields(map[string]interface{}{"provider": "storage-facilities"}),
	}
}

func (f *PostgresStorageFinder) FindBest(ctx context.Context, location geo.Point, cropName string, quantityKg float64, storageType models.StorageType, daysNeeded int) (*models.StorageFacility, error) {
	rows, err := f.db.QueryContext(ctx, `
		SELECT name, latitude, longitude, storage_type, capacity_kg, daily_rate_per_kg
		FROM storage_facilities
		WHERE storage_type = $1 AND capacity_kg >= $2`, string(storageType), quantityKg)
	if err != nil {
		metrics.ProviderErrors.WithLabelValues("storage-facilities").Inc()
		return nil, fmt.Errorf("storage facility query: %w", err)
	}
	defer rows.Close()

	var best *models.StorageFacility
	bestDistance := f.searchKm

	for rows.Next() {
		var (
			name         string
			lat, lon     float64
			facilityType string
			capacityKg   float64
			ratePerKg    float64
		)
		if err := rows.Scan(&name, &lat, &lon, &facilityType, &capacityKg, &ratePerKg); err != nil {
			return nil, fmt.Errorf("storage facility scan: %w", err)
		}

		facilityLoc := geo.Point{Latitude: lat, Longitude: lon}
		distance := geo.HaversineKm(location, facilityLoc)
		if distance > bestDistance {
			continue
		}

		dailyRate := ratePerKg * quantityKg
		candidate := &models.StorageFacility{
			Name:               name,
			Location:           facilityLoc,
			Type:               models.StorageType(facilityType),
			DailyRate:          dailyRate,
			TotalCostForPeriod: dailyRate * float64(daysNeeded),
		}

		if best == nil || distance < bestDistance || candidate.DailyRate < best.DailyRate {
			best = candidate
			bestDistance = distance
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage facility rows: %w", err)
	}

	if best == nil {
		return nil, ErrNoFacility
	}

	return best, nil
}
