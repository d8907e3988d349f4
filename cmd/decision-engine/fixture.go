// cmd/decision-engine/fixture.go
package main

import (
	"time"

	"postharvest-engine/internal/models"
	"postharvest-engine/internal/providers"
	"postharvest-engine/pkg/geo"
)

// demoSnapshot builds the self-contained data snapshot the binary uses
// when no database backend is configured. Prices and coordinates are
// representative of western Maharashtra mandis.
func demoSnapshot() *providers.Snapshot {
	crops := []models.CropMetadata{
		{Name: "tomato", Spoilage: models.SpoilageHigh, OpenStorageDays: 3, ColdStorageDays: 21},
		{Name: "onion", Spoilage: models.SpoilageLow, OpenStorageDays: 60, ColdStorageDays: 180},
		{Name: "potato", Spoilage: models.SpoilageMedium, OpenStorageDays: 21, ColdStorageDays: 120},
		{Name: "wheat", Spoilage: models.SpoilageLow, OpenStorageDays: 180, ColdStorageDays: 365},
	}

	mandis := []models.MandiInfo{
		{Name: "Pune Market Yard", Location: geo.Point{Latitude: 18.4966, Longitude: 73.8610}},
		{Name: "Nashik Mandi", Location: geo.Point{Latitude: 19.9975, Longitude: 73.7898}},
		{Name: "Solapur APMC", Location: geo.Point{Latitude: 17.6599, Longitude: 75.9064}},
		{Name: "Mumbai Vashi APMC", Location: geo.Point{Latitude: 19.0640, Longitude: 72.9990}},
	}

	facilities := []models.StorageFacilityRecord{
		{Name: "Pune Cold Chain", Location: geo.Point{Latitude: 18.55, Longitude: 73.90}, Type: models.StorageCold, CapacityKg: 50000, DailyRatePerKg: 0.05},
		{Name: "Shivajinagar Godown", Location: geo.Point{Latitude: 18.53, Longitude: 73.85}, Type: models.StorageOpen, CapacityKg: 200000, DailyRatePerKg: 0.01},
		{Name: "Nashik Agro Storage", Location: geo.Point{Latitude: 20.01, Longitude: 73.78}, Type: models.StorageOpen, CapacityKg: 100000, DailyRatePerKg: 0.012},
	}

	snapshot := providers.NewSnapshot(crops, mandis, facilities)

	base := time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC)
	series := func(prices ...float64) []models.PricePoint {
		points := make([]models.PricePoint, len(prices))
		for i, p := range prices {
			points[i] = models.PricePoint{Date: base.AddDate(0, 0, i), PricePerKg: p}
		}
		return points
	}

	snapshot.SetPrice("Pune Market Yard", "tomato", models.MandiPriceData{
		CurrentPrice: 26.50,
		PriceHistory: series(22.0, 23.1, 23.8, 24.5, 25.2, 25.9, 26.5),
	})
	snapshot.SetPrice("Nashik Mandi", "tomato", models.MandiPriceData{
		CurrentPrice: 24.00,
		PriceHistory: series(24.8, 24.5, 24.4, 24.2, 24.1, 24.0, 24.0),
	})
	snapshot.SetPrice("Mumbai Vashi APMC", "tomato", models.MandiPriceData{
		CurrentPrice: 29.00,
		PriceHistory: series(27.5, 27.8, 28.0, 28.3, 28.5, 28.8, 29.0),
	})

	snapshot.SetPrice("Pune Market Yard", "onion", models.MandiPriceData{
		CurrentPrice: 18.00,
		PriceHistory: series(16.0, 16.4, 16.9, 17.2, 17.5, 17.8, 18.0),
	})
	snapshot.SetPrice("Solapur APMC", "onion", models.MandiPriceData{
		CurrentPrice: 19.50,
		PriceHistory: series(19.0, 19.1, 19.2, 19.3, 19.3, 19.4, 19.5),
	})
	snapshot.SetPrice("Nashik Mandi", "onion", models.MandiPriceData{
		CurrentPrice: 17.00,
		PriceHistory: series(18.2, 18.0, 17.8, 17.5, 17.3, 17.1, 17.0),
	})

	snapshot.SetPrice("Pune Market Yard", "potato", models.MandiPriceData{
		CurrentPrice: 14.00,
		PriceHistory: series(13.0, 13.2, 13.3, 13.5, 13.7, 13.8, 14.0),
	})
	snapshot.SetPrice("Pune Market Yard", "wheat", models.MandiPriceData{
		CurrentPrice: 23.00,
		PriceHistory: series(22.8, 22.9, 22.9, 23.0, 23.0, 23.0, 23.0),
	})

	return snapshot
}
