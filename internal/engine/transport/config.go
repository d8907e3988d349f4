// internal/engine/transport/config.go
package transport

// Config holds the transport costing tunables.
type Config struct {
	RatePerKmPerQuintal float64
	LongHaulKm          float64
	LongHaulSurcharge   float64
	HandlingCharge      float64
}

// DefaultConfig returns the standard mandi haulage rates.
func DefaultConfig() *Config {
	return &Config{
		RatePerKmPerQuintal: 4,
		LongHaulKm:          100,
		LongHaulSurcharge:   1.2,
		HandlingCharge:      500,
	}
}
