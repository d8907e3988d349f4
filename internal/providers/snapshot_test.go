// internal/providers/snapshot_test.go
package providers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"postharvest-engine/internal/models"
	"postharvest-engine/pkg/geo"
)

func TestSnapshot_CropLookupIsCaseInsensitive(t *testing.T) {
	snapshot := NewSnapshot([]models.CropMetadata{
		{Name: "Tomato", Spoilage: models.SpoilageHigh, OpenStorageDays: 3, ColdStorageDays: 21},
	}, nil, nil)

	meta, err := snapshot.Get(context.Background(), "  TOMATO ")
	require.NoError(t, err)
	assert.Equal(t, models.SpoilageHigh, meta.Spoilage)

	_, err = snapshot.Get(context.Background(), "mango")
	assert.ErrorIs(t, err, ErrCropNotFound)
}

func TestSnapshot_PriceLookup(t *testing.T) {
	snapshot := NewSnapshot(nil, []models.MandiInfo{{Name: "Pune Market Yard"}}, nil)
	snapshot.SetPrice("Pune Market Yard", "Onion", models.MandiPriceData{CurrentPrice: 18})

	data, err := snapshot.GetPrice(context.Background(), "Pune Market Yard", "onion")
	require.NoError(t, err)
	assert.Equal(t, 18.0, data.CurrentPrice)

	_, err = snapshot.GetPrice(context.Background(), "Pune Market Yard", "wheat")
	assert.ErrorIs(t, err, ErrPriceNotFound)

	mandis, err := snapshot.ListMandis(context.Background())
	require.NoError(t, err)
	assert.Len(t, mandis, 1)
}

func TestSnapshot_FindBest(t *testing.T) {
	farm := geo.Point{Latitude: 18.52, Longitude: 73.85}

	snapshot := NewSnapshot(nil, nil, []models.StorageFacilityRecord{
		{Name: "Near Open", Location: geo.Point{Latitude: 18.53, Longitude: 73.85}, Type: models.StorageOpen, CapacityKg: 1000, DailyRatePerKg: 0.02},
		{Name: "Near Cold", Location: geo.Point{Latitude: 18.54, Longitude: 73.85}, Type: models.StorageCold, CapacityKg: 1000, DailyRatePerKg: 0.05},
		{Name: "Tiny Open", Location: farm, Type: models.StorageOpen, CapacityKg: 100, DailyRatePerKg: 0.01},
	})

	t.Run("matches type and capacity", func(t *testing.T) {
		facility, err := snapshot.FindBest(context.Background(), farm, "onion", 500, models.StorageOpen, 4)
		require.NoError(t, err)
		assert.Equal(t, "Near Open", facility.Name)
		assert.InDelta(t, 40.0, facility.TotalCostForPeriod, 0.001) // 0.02 × 500 × 4
	})

	t.Run("cold requirement ignores open godowns", func(t *testing.T) {
		facility, err := snapshot.FindBest(context.Background(), farm, "tomato", 500, models.StorageCold, 2)
		require.NoError(t, err)
		assert.Equal(t, "Near Cold", facility.Name)
	})

	t.Run("nothing suitable", func(t *testing.T) {
		_, err := snapshot.FindBest(context.Background(), farm, "onion", 5000, models.StorageOpen, 4)
		assert.ErrorIs(t, err, ErrNoFacility)
	})
}
