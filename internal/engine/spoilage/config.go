// internal/engine/spoilage/config.go
package spoilage

// Config holds the spoilage risk banding tunables.
type Config struct {
	FallbackShelfLifeDays int
	MediumUtilization     float64
	HighUtilization       float64
	SafeUtilization       float64
}

// DefaultConfig returns risk bands at 50% and 80% shelf-life utilization.
func DefaultConfig() *Config {
	return &Config{
		FallbackShelfLifeDays: 30,
		MediumUtilization:     0.5,
		HighUtilization:       0.8,
		SafeUtilization:       0.8,
	}
}
