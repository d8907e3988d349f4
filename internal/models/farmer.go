// internal/models/farmer.go
package models

import (
	"time"

	"postharvest-engine/internal/common/errors"
	"postharvest-engine/pkg/geo"
)

// FarmerContext is the immutable input for one decision request.
// It is validated at construction and never mutated afterwards.
type FarmerContext struct {
	CropName       string    `json:"cropName"`
	QuantityKg     float64   `json:"quantityKg"`
	FarmerLocation geo.Point `json:"farmerLocation"`
	HarvestDate    time.Time `json:"harvestDate"`
	TodayDate      time.Time `json:"todayDate"`
}

// NewFarmerContext validates the request fields and returns the context.
func NewFarmerContext(cropName string, quantityKg float64, location geo.Point, harvestDate, todayDate time.Time) (*FarmerContext, error) {
	if NormalizeCropName(cropName) == "" {
		return nil, errors.NewValidationFailedError("cropName must not be empty")
	}
	if quantityKg <= 0 {
		return nil, errors.NewValidationFailedError("quantityKg must be positive")
	}
	if !location.Valid() {
		return nil, errors.NewValidationFailedError("farmerLocation is out of range")
	}
	if todayDate.Before(harvestDate) {
		return nil, errors.NewValidationFailedError("todayDate must not precede harvestDate")
	}

	return &FarmerContext{
		CropName:       cropName,
		QuantityKg:     quantityKg,
		FarmerLocation: location,
		HarvestDate:    harvestDate,
		TodayDate:      todayDate,
	}, nil
}
