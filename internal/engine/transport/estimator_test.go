// internal/engine/transport/estimator_test.go
package transport

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"postharvest-engine/pkg/geo"
)

func TestEstimator_EstimateCost(t *testing.T) {
	estimator := NewEstimator(nil)

	farm := geo.Point{Latitude: 20.0, Longitude: 75.0}
	// Due-north offsets give near-exact haversine distances.
	offsetKm := func(km float64) geo.Point {
		return geo.Point{Latitude: farm.Latitude + km/geo.EarthRadiusKm*180/math.Pi, Longitude: farm.Longitude}
	}

	tests := []struct {
		name       string
		to         geo.Point
		quantityKg float64
		expected   float64
	}{
		{
			name:       "zero distance is handling charge only",
			to:         farm,
			quantityKg: 1000,
			expected:   500,
		},
		{
			name:       "short haul without surcharge",
			to:         offsetKm(50),
			quantityKg: 1000, // 10 quintals
			expected:   50*10*4 + 500,
		},
		{
			name:       "long haul applies 20 percent surcharge",
			to:         offsetKm(150),
			quantityKg: 1000,
			expected:   150*10*4*1.2 + 500,
		},
		{
			name:       "boundary at 100km has no surcharge",
			to:         offsetKm(100),
			quantityKg: 100, // 1 quintal
			expected:   100*1*4 + 500,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := estimator.EstimateCost(farm, tt.to, tt.quantityKg)
			assert.InDelta(t, tt.expected, got, 0.01)
		})
	}
}

func TestEstimator_EstimateCost_Symmetric(t *testing.T) {
	estimator := NewEstimator(nil)

	a := geo.Point{Latitude: 18.52, Longitude: 73.85}
	b := geo.Point{Latitude: 19.99, Longitude: 73.78}

	assert.Equal(t, estimator.EstimateCost(a, b, 750), estimator.EstimateCost(b, a, 750))
}

func TestEstimator_EstimateCostPerKg(t *testing.T) {
	estimator := NewEstimator(nil)
	farm := geo.Point{Latitude: 20.0, Longitude: 75.0}

	perKg := estimator.EstimateCostPerKg(farm, farm, 1000)
	assert.InDelta(t, 0.5, perKg, 0.001)

	assert.Zero(t, estimator.EstimateCostPerKg(farm, farm, 0))
}

func TestEstimator_ConfigurableRates(t *testing.T) {
	estimator := NewEstimator(&Config{
		RatePerKmPerQuintal: 6,
		LongHaulKm:          200,
		LongHaulSurcharge:   1.5,
		HandlingCharge:      0,
	})

	farm := geo.Point{Latitude: 0, Longitude: 0}
	to := geo.Point{Latitude: 50.0 / geo.EarthRadiusKm * 180 / math.Pi, Longitude: 0}

	// 50 km, 2 quintals, no surcharge below the 200 km threshold.
	assert.InDelta(t, 50*2*6, estimator.EstimateCost(farm, to, 200), 0.01)
}
