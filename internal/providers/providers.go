// internal/providers/providers.go
package providers

import (
	"context"
	"errors"

	"postharvest-engine/internal/models"
	"postharvest-engine/pkg/geo"
)

var (
	// ErrCropNotFound signals the crop is absent from the metadata registry.
	ErrCropNotFound = errors.New("crop not found")
	// ErrPriceNotFound signals one mandi lacks price data for a crop. The
	// engine treats this as non-fatal and excludes the mandi from ranking.
	ErrPriceNotFound = errors.New("price data not found")
	// ErrNoFacility signals no storage facility matched. This is an expected
	// outcome, not a failure.
	ErrNoFacility = errors.New("no storage facility available")
)

// CropMetadataProvider supplies static crop reference data.
type CropMetadataProvider interface {
	Get(ctx context.Context, cropName string) (*models.CropMetadata, error)
}

// MandiPriceProvider supplies the market-price snapshot the engine reads.
type MandiPriceProvider interface {
	ListMandis(ctx context.Context) ([]models.MandiInfo, error)
	GetPrice(ctx context.Context, mandiName, cropName string) (*models.MandiPriceData, error)
}

// StorageFacilityProvider matches storage capacity near a location. Selection
// criteria (distance, capacity, rate) are internal to the provider.
type StorageFacilityProvider interface {
	FindBest(ctx context.Context, location geo.Point, cropName string, quantityKg float64, storageType models.StorageType, daysNeeded int) (*models.StorageFacility, error)
}
