// internal/engine/transport/estimator.go
package transport

import (
	"math"

	"postharvest-engine/pkg/geo"
)

// Estimator prices crop haulage between two coordinates. Costing is
// symmetric in the endpoints because it depends only on great-circle
// distance.
type Estimator struct {
	config *Config
}

func NewEstimator(config *Config) *Estimator {
	if config == nil {
		config = DefaultConfig()
	}
	return &Estimator{config: config}
}

// EstimateCost returns the total transport cost in rupees, rounded to two
// decimals. Intermediate arithmetic stays at full precision; rounding
// happens once at the end.
func (e *Estimator) EstimateCost(from, to geo.Point, quantityKg float64) float64 {
	distanceKm := geo.HaversineKm(from, to)
	quintals := quantityKg / 100

	cost := distanceKm * quintals * e.config.RatePerKmPerQuintal
	if distanceKm > e.config.LongHaulKm {
		cost *= e.config.LongHaulSurcharge
	}
	cost += e.config.HandlingCharge

	return round2(cost)
}

// EstimateCostPerKg returns the per-kilogram transport cost.
func (e *Estimator) EstimateCostPerKg(from, to geo.Point, quantityKg float64) float64 {
	if quantityKg == 0 {
		return 0
	}
	return round2(e.EstimateCost(from, to, quantityKg) / quantityKg)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
