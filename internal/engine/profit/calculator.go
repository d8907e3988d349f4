// internal/engine/profit/calculator.go
package profit

import (
	"math"

	"postharvest-engine/internal/models"
)

// Calculator computes the net economics of selling a quantity at a price.
// All arithmetic runs at full precision; each output field is rounded to
// two decimals exactly once, at construction of the result.
type Calculator struct{}

func NewCalculator() *Calculator {
	return &Calculator{}
}

// Calculate returns the profit breakdown for one market candidate.
// ProfitMarginPercent is zero when gross revenue is zero.
func (c *Calculator) Calculate(sellingPricePerKg, quantityKg, transportCost, storageCost float64) models.NetProfit {
	grossRevenue := sellingPricePerKg * quantityKg
	totalCosts := transportCost + storageCost
	netProfit := grossRevenue - totalCosts

	marginPercent := 0.0
	if grossRevenue > 0 {
		marginPercent = netProfit / grossRevenue * 100
	}

	return models.NetProfit{
		GrossRevenue:        round2(grossRevenue),
		TransportCost:       round2(transportCost),
		StorageCost:         round2(storageCost),
		TotalCosts:          round2(totalCosts),
		NetProfit:           round2(netProfit),
		ProfitMarginPercent: round2(marginPercent),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
