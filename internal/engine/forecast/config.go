// internal/engine/forecast/config.go
package forecast

// Config holds the price projection tunables.
type Config struct {
	DaysAhead         int
	HistoryWindow     int
	RisingSlope       float64
	FallingSlope      float64
	SeasonalAmplitude float64
	DampeningFactor   float64
	FloorRatio        float64
}

// DefaultConfig returns a two-week horizon with a one-week regression
// window, ±5% weekly oscillation and a 10% confidence dampening.
func DefaultConfig() *Config {
	return &Config{
		DaysAhead:         14,
		HistoryWindow:     7,
		RisingSlope:       0.5,
		FallingSlope:      -0.5,
		SeasonalAmplitude: 0.05,
		DampeningFactor:   0.1,
		FloorRatio:        0.8,
	}
}
