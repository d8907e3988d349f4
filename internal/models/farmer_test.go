// internal/models/farmer_test.go
package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	stderrors "postharvest-engine/internal/common/errors"
	"postharvest-engine/pkg/geo"
)

func TestNewFarmerContext(t *testing.T) {
	pune := geo.Point{Latitude: 18.52, Longitude: 73.85}
	harvest := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	today := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		cropName    string
		quantityKg  float64
		location    geo.Point
		harvestDate time.Time
		todayDate   time.Time
		wantErr     bool
	}{
		{
			name:        "valid request",
			cropName:    "tomato",
			quantityKg:  500,
			location:    pune,
			harvestDate: harvest,
			todayDate:   today,
		},
		{
			name:        "harvest day itself is valid",
			cropName:    "tomato",
			quantityKg:  500,
			location:    pune,
			harvestDate: harvest,
			todayDate:   harvest,
		},
		{
			name:        "empty crop name",
			cropName:    "   ",
			quantityKg:  500,
			location:    pune,
			harvestDate: harvest,
			todayDate:   today,
			wantErr:     true,
		},
		{
			name:        "negative quantity",
			cropName:    "tomato",
			quantityKg:  -5,
			location:    pune,
			harvestDate: harvest,
			todayDate:   today,
			wantErr:     true,
		},
		{
			name:        "zero quantity",
			cropName:    "tomato",
			quantityKg:  0,
			location:    pune,
			harvestDate: harvest,
			todayDate:   today,
			wantErr:     true,
		},
		{
			name:        "latitude out of range",
			cropName:    "tomato",
			quantityKg:  500,
			location:    geo.Point{Latitude: 91, Longitude: 73.85},
			harvestDate: harvest,
			todayDate:   today,
			wantErr:     true,
		},
		{
			name:        "today before harvest",
			cropName:    "tomato",
			quantityKg:  500,
			location:    pune,
			harvestDate: today,
			todayDate:   harvest,
			wantErr:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			farmer, err := NewFarmerContext(tt.cropName, tt.quantityKg, tt.location, tt.harvestDate, tt.todayDate)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, stderrors.HasCode(err, stderrors.ErrCodeValidationFailed))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.cropName, farmer.CropName)
			assert.Equal(t, tt.quantityKg, farmer.QuantityKg)
		})
	}
}

func TestNormalizeCropName(t *testing.T) {
	assert.Equal(t, "tomato", NormalizeCropName("  Tomato "))
	assert.Equal(t, "bottle gourd", NormalizeCropName("BOTTLE GOURD"))
	assert.Equal(t, "", NormalizeCropName("   "))
}
