// internal/providers/snapshot.go
package providers

import (
	"context"
	"fmt"

	"postharvest-engine/internal/models"
	"postharvest-engine/pkg/geo"
)

// Snapshot is a read-only, in-memory realization of all three provider
// contracts. One Snapshot carries the complete data a single decision run
// reads; it is safe for concurrent use because nothing mutates it after
// construction.
type Snapshot struct {
	Crops      map[string]models.CropMetadata
	Mandis     []models.MandiInfo
	Prices     map[string]models.MandiPriceData // keyed by mandi|crop
	Facilities []models.StorageFacilityRecord
}

func priceKey(mandiName, cropName string) string {
	return mandiName + "|" + models.NormalizeCropName(cropName)
}

// NewSnapshot builds a snapshot from its parts. Crop names are normalized
// at construction so lookups are case-insensitive.
func NewSnapshot(crops []models.CropMetadata, mandis []models.MandiInfo, facilities []models.StorageFacilityRecord) *Snapshot {
	cropMap := make(map[string]models.CropMetadata, len(crops))
	for _, c := range crops {
		cropMap[models.NormalizeCropName(c.Name)] = c
	}
	return &Snapshot{
		Crops:      cropMap,
		Mandis:     mandis,
		Prices:     make(map[string]models.MandiPriceData),
		Facilities: facilities,
	}
}

// SetPrice registers the price series for one (mandi, crop) pair.
func (s *Snapshot) SetPrice(mandiName, cropName string, data models.MandiPriceData) {
	s.Prices[priceKey(mandiName, cropName)] = data
}

func (s *Snapshot) Get(_ context.Context, cropName string) (*models.CropMetadata, error) {
	meta, ok := s.Crops[models.NormalizeCropName(cropName)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrCropNotFound, cropName)
	}
	return &meta, nil
}

func (s *Snapshot) ListMandis(_ context.Context) ([]models.MandiInfo, error) {
	out := make([]models.MandiInfo, len(s.Mandis))
	copy(out, s.Mandis)
	return out, nil
}

func (s *Snapshot) GetPrice(_ context.Context, mandiName, cropName string) (*models.MandiPriceData, error) {
	data, ok := s.Prices[priceKey(mandiName, cropName)]
	if !ok {
		return nil, fmt.Errorf("%w: mandi=%s crop=%s", ErrPriceNotFound, mandiName, cropName)
	}
	return &data, nil
}

// FindBest matches facilities by type and capacity within 50 km, nearest
// first with the cheaper daily rate breaking distance ties.
func (s *Snapshot) FindBest(_ context.Context, location geo.Point, _ string, quantityKg float64, storageType models.StorageType, daysNeeded int) (*models.StorageFacility, error) {
	const searchKm = 50.0

	var best *models.StorageFacility
	bestDistance := searchKm

	for _, rec := range s.Facilities {
		if rec.Type != storageType || rec.CapacityKg < quantityKg {
			continue
		}
		distance := geo.HaversineKm(location, rec.Location)
		if distance > bestDistance {
			continue
		}

		dailyRate := rec.DailyRatePerKg * quantityKg
		candidate := &models.StorageFacility{
			Name:               rec.Name,
			Location:           rec.Location,
			Type:               rec.Type,
			DailyRate:          dailyRate,
			TotalCostForPeriod: dailyRate * float64(daysNeeded),
		}

		if best == nil || distance < bestDistance || candidate.DailyRate < best.DailyRate {
			best = candidate
			bestDistance = distance
		}
	}

	if best == nil {
		return nil, ErrNoFacility
	}

	return best, nil
}
