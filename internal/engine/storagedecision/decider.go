// internal/engine/storagedecision/decider.go
package storagedecision

import (
	"fmt"
	"math"

	"postharvest-engine/internal/common/logger"
	"postharvest-engine/internal/models"
)

// Input carries everything the decision rules read. StorageOption is nil
// when no facility was found.
type Input struct {
	QuantityKg    float64
	CurrentPrice  float64
	Forecast      *models.PriceForecast
	Assessment    *models.SpoilageAssessment
	StorageOption *models.StorageFacility
	TransportCost float64
}

// facts are the derived values the rule predicates evaluate.
type facts struct {
	input          *Input
	sellNowProfit  float64
	storeProfit    float64
	improvementPct float64
}

// rule is one (predicate, outcome) pair. Rules are evaluated top-down with
// first-match-wins semantics; order is part of the contract.
type rule struct {
	name    string
	matches func(*Config, *facts) bool
	decide  func(*Config, *facts) *models.StorageDecision
}

// Decider chooses between selling immediately and storing until the
// forecast price peak.
type Decider struct {
	config *Config
	rules  []rule
	logger logger.Logger
}

func NewDecider(config *Config, log logger.Logger) *Decider {
	if config == nil {
		config = DefaultConfig()
	}
	return &Decider{
		config: config,
		rules:  decisionRules(),
		logger: log.WithFields(map[string]interface{}{"component": "storage-decider"}),
	}
}

// Decide runs the rule chain and returns the verdict. The result is
// deterministic for identical inputs.
func (d *Decider) Decide(input *Input) *models.StorageDecision {
	f := deriveFacts(input)

	for _, r := range d.rules {
		if !r.matches(d.config, f) {
			continue
		}
		decision := r.decide(d.config, f)
		d.logger.Info("storage decision made", map[string]interface{}{
			"rule":           r.name,
			"decision":       decision.Decision,
			"waitDays":       decision.RecommendedWaitDays,
			"improvementPct": decision.ProfitImprovementPercent,
		})
		return decision
	}

	// Unreachable: the last rule matches everything.
	return sellNow(f, "no storage rule matched")
}

func deriveFacts(input *Input) *facts {
	f := &facts{input: input}

	f.sellNowProfit = input.CurrentPrice*input.QuantityKg - input.TransportCost
	if input.StorageOption != nil && input.Forecast != nil {
		f.storeProfit = input.Forecast.PeakPrice*input.QuantityKg -
			input.TransportCost - input.StorageOption.TotalCostForPeriod
		if f.sellNowProfit > 0 {
			f.improvementPct = (f.storeProfit - f.sellNowProfit) / f.sellNowProfit * 100
		}
	}

	return f
}

func decisionRules() []rule {
	return []rule{
		{
			name: "no-facility",
			matches: func(_ *Config, f *facts) bool {
				return f.input.StorageOption == nil
			},
			decide: func(_ *Config, f *facts) *models.StorageDecision {
				return sellNow(f, "no storage facility available near the farm; selling now avoids unprotected holding losses")
			},
		},
		{
			name: "high-risk-insufficient-gain",
			matches: func(cfg *Config, f *facts) bool {
				return f.input.Assessment.RiskLevel == models.RiskHigh &&
					f.improvementPct <= cfg.HighRiskMinImprovementPct
			},
			decide: func(cfg *Config, f *facts) *models.StorageDecision {
				return sellNow(f, fmt.Sprintf(
					"spoilage risk is high and the projected gain of %.1f%% does not clear the %.1f%% bar for risky storage",
					f.improvementPct, cfg.HighRiskMinImprovementPct))
			},
		},
		{
			name: "high-risk-worthwhile-gain",
			matches: func(cfg *Config, f *facts) bool {
				return f.input.Assessment.RiskLevel == models.RiskHigh
			},
			decide: func(cfg *Config, f *facts) *models.StorageDecision {
				return storeAndSell(f, fmt.Sprintf(
					"projected gain of %.1f%% outweighs the high spoilage risk within the safe storage window",
					f.improvementPct))
			},
		},
		{
			name: "profitable-wait",
			matches: func(cfg *Config, f *facts) bool {
				return f.improvementPct > cfg.MinImprovementPct
			},
			decide: func(_ *Config, f *facts) *models.StorageDecision {
				return storeAndSell(f, fmt.Sprintf(
					"prices are projected to peak on day %d; storing improves profit by %.1f%%",
					f.input.Forecast.PeakDay, f.improvementPct))
			},
		},
		{
			name: "default-sell",
			matches: func(*Config, *facts) bool {
				return true
			},
			decide: func(_ *Config, f *facts) *models.StorageDecision {
				return sellNow(f, "storing offers no profit improvement over selling at the current price")
			},
		},
	}
}

func sellNow(f *facts, reasoning string) *models.StorageDecision {
	return &models.StorageDecision{
		Decision:                 models.DecisionSellNow,
		RecommendedWaitDays:      0,
		Reasoning:                reasoning,
		ProfitImprovementPercent: round2(f.improvementPct),
	}
}

func storeAndSell(f *facts, reasoning string) *models.StorageDecision {
	return &models.StorageDecision{
		Decision:                 models.DecisionStoreAndSell,
		RecommendedWaitDays:      f.input.Forecast.PeakDay,
		Reasoning:                reasoning,
		ProfitImprovementPercent: round2(f.improvementPct),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
