// internal/engine/storagedecision/config.go
package storagedecision

// Config holds the decision thresholds. These are tunable; only the
// qualitative contract is fixed: higher spoilage risk biases toward
// immediate sale, higher profit improvement biases toward storage.
type Config struct {
	// HighRiskMinImprovementPct is the profit improvement a HIGH-risk crop
	// must clear before storage is worth the spoilage exposure.
	HighRiskMinImprovementPct float64
	// MinImprovementPct is the bar for LOW/MEDIUM-risk crops.
	MinImprovementPct float64
}

func DefaultConfig() *Config {
	return &Config{
		HighRiskMinImprovementPct: 15,
		MinImprovementPct:         0,
	}
}
