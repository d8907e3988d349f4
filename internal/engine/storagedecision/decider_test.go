// internal/engine/storagedecision/decider_test.go
package storagedecision

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"postharvest-engine/internal/common/logger"
	"postharvest-engine/internal/models"
)

func baseInput() *Input {
	return &Input{
		QuantityKg:    1000,
		CurrentPrice:  20,
		TransportCost: 1000,
		Forecast: &models.PriceForecast{
			CurrentPrice: 20,
			PeakDay:      5,
			PeakPrice:    24,
			Trend:        models.TrendRising,
		},
		Assessment: &models.SpoilageAssessment{
			RiskLevel:     models.RiskLow,
			ShelfLifeDays: 60,
		},
		StorageOption: &models.StorageFacility{
			Name:               "Test Godown",
			Type:               models.StorageOpen,
			DailyRate:          10,
			TotalCostForPeriod: 50,
		},
	}
}

func TestDecider_NoFacilityForcesSellNow(t *testing.T) {
	decider := NewDecider(nil, logger.NewNoOpLogger())

	input := baseInput()
	input.StorageOption = nil
	// The forecast still promises a large gain; it must not matter.
	input.Forecast.PeakPrice = 40

	decision := decider.Decide(input)

	assert.Equal(t, models.DecisionSellNow, decision.Decision)
	assert.Equal(t, 0, decision.RecommendedWaitDays)
	assert.Zero(t, decision.ProfitImprovementPercent)
	assert.Contains(t, decision.Reasoning, "no storage facility")
}

func TestDecider_ProfitableWaitStores(t *testing.T) {
	decider := NewDecider(nil, logger.NewNoOpLogger())

	input := baseInput()
	// sell now: 20*1000-1000 = 19000; store: 24*1000-1000-50 = 22950.
	decision := decider.Decide(input)

	assert.Equal(t, models.DecisionStoreAndSell, decision.Decision)
	assert.Equal(t, 5, decision.RecommendedWaitDays)
	assert.InDelta(t, 20.79, decision.ProfitImprovementPercent, 0.01)
}

func TestDecider_NoImprovementSellsNow(t *testing.T) {
	decider := NewDecider(nil, logger.NewNoOpLogger())

	input := baseInput()
	input.Forecast.PeakPrice = 20
	input.Forecast.PeakDay = 0

	decision := decider.Decide(input)

	assert.Equal(t, models.DecisionSellNow, decision.Decision)
	assert.Equal(t, 0, decision.RecommendedWaitDays)
}

func TestDecider_HighRiskThreshold(t *testing.T) {
	tests := []struct {
		name      string
		peakPrice float64
		expected  models.DecisionType
	}{
		{
			// store: 22*1000-1000-50 = 20950, improvement ≈ 10.3% < 15%
			name:      "modest gain not worth the risk",
			peakPrice: 22,
			expected:  models.DecisionSellNow,
		},
		{
			// store: 26*1000-1000-50 = 24950, improvement ≈ 31.3% > 15%
			name:      "large gain outweighs the risk",
			peakPrice: 26,
			expected:  models.DecisionStoreAndSell,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decider := NewDecider(nil, logger.NewNoOpLogger())

			input := baseInput()
			input.Assessment.RiskLevel = models.RiskHigh
			input.Forecast.PeakPrice = tt.peakPrice

			decision := decider.Decide(input)
			assert.Equal(t, tt.expected, decision.Decision)
		})
	}
}

func TestDecider_HighRiskBarIsConfigurable(t *testing.T) {
	decider := NewDecider(&Config{HighRiskMinImprovementPct: 5, MinImprovementPct: 0}, logger.NewNoOpLogger())

	input := baseInput()
	input.Assessment.RiskLevel = models.RiskHigh
	input.Forecast.PeakPrice = 22 // ≈10.3% improvement clears a 5% bar

	decision := decider.Decide(input)
	assert.Equal(t, models.DecisionStoreAndSell, decision.Decision)
}

func TestDecider_NonPositiveSellProfitMeansNoImprovement(t *testing.T) {
	decider := NewDecider(nil, logger.NewNoOpLogger())

	input := baseInput()
	input.CurrentPrice = 0.5 // sell now: 500-1000 = -500
	input.Forecast.PeakPrice = 30

	decision := decider.Decide(input)

	// Improvement is undefined against a non-positive baseline, so the
	// default rule sells now.
	assert.Equal(t, models.DecisionSellNow, decision.Decision)
	assert.Zero(t, decision.ProfitImprovementPercent)
}

func TestDecider_Deterministic(t *testing.T) {
	decider := NewDecider(nil, logger.NewNoOpLogger())

	first := decider.Decide(baseInput())
	second := decider.Decide(baseInput())

	assert.Equal(t, first, second)
}
