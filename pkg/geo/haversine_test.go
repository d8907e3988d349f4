// pkg/geo/haversine_test.go
package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversineKm(t *testing.T) {
	tests := []struct {
		name      string
		a, b      Point
		expected  float64
		tolerance float64
	}{
		{
			name:      "same point",
			a:         Point{Latitude: 18.52, Longitude: 73.85},
			b:         Point{Latitude: 18.52, Longitude: 73.85},
			expected:  0,
			tolerance: 0.001,
		},
		{
			name:      "pune to mumbai",
			a:         Point{Latitude: 18.5204, Longitude: 73.8567},
			b:         Point{Latitude: 19.0760, Longitude: 72.8777},
			expected:  119.5,
			tolerance: 2,
		},
		{
			name:      "one degree of latitude",
			a:         Point{Latitude: 0, Longitude: 0},
			b:         Point{Latitude: 1, Longitude: 0},
			expected:  111.19,
			tolerance: 0.1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HaversineKm(tt.a, tt.b)
			assert.InDelta(t, tt.expected, got, tt.tolerance)
		})
	}
}

func TestHaversineKm_Symmetric(t *testing.T) {
	a := Point{Latitude: 18.52, Longitude: 73.85}
	b := Point{Latitude: 28.61, Longitude: 77.21}

	assert.Equal(t, HaversineKm(a, b), HaversineKm(b, a))
}

func TestPoint_Valid(t *testing.T) {
	assert.True(t, Point{Latitude: 90, Longitude: -180}.Valid())
	assert.True(t, Point{Latitude: -90, Longitude: 180}.Valid())
	assert.False(t, Point{Latitude: 90.1, Longitude: 0}.Valid())
	assert.False(t, Point{Latitude: 0, Longitude: 180.5}.Valid())
	assert.False(t, Point{Latitude: math.NaN(), Longitude: 0}.Valid())
}
