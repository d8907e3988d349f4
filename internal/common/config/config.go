// internal/common/config/config.go
package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Database DatabaseConfig `mapstructure:"database"`
	Engine   EngineConfig   `mapstructure:"engine"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type DatabaseConfig struct {
	Postgres      PostgresConfig      `mapstructure:"postgres"`
	Elasticsearch ElasticsearchConfig `mapstructure:"elasticsearch"`
	Redis         RedisConfig         `mapstructure:"redis"`
}

type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

// GetDSN returns the PostgreSQL connection string
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type ElasticsearchConfig struct {
	Addresses  []string `mapstructure:"addresses"`
	Username   string   `mapstructure:"username"`
	Password   string   `mapstructure:"password"`
	PriceIndex string   `mapstructure:"price_index"`
	MandiIndex string   `mapstructure:"mandi_index"`
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// --- Engine Configuration ---

// EngineConfig groups the tunables of the decision pipeline. The numeric
// thresholds are configuration, not constants; defaults are applied by the
// loader.
type EngineConfig struct {
	Transport TransportConfig `mapstructure:"transport"`
	Forecast  ForecastConfig  `mapstructure:"forecast"`
	Spoilage  SpoilageConfig  `mapstructure:"spoilage"`
	Decision  DecisionConfig  `mapstructure:"decision"`

	CropCacheTTLSeconds int `mapstructure:"crop_cache_ttl_seconds"`
	ProviderTimeoutMs   int `mapstructure:"provider_timeout_ms"`
}

type TransportConfig struct {
	RatePerKmPerQuintal float64 `mapstructure:"rate_per_km_per_quintal"`
	LongHaulKm          float64 `mapstructure:"long_haul_km"`
	LongHaulSurcharge   float64 `mapstructure:"long_haul_surcharge"`
	HandlingCharge      float64 `mapstructure:"handling_charge"`
}

type ForecastConfig struct {
	DaysAhead         int     `mapstructure:"days_ahead"`
	HistoryWindow     int     `mapstructure:"history_window"`
	RisingSlope       float64 `mapstructure:"rising_slope"`
	FallingSlope      float64 `mapstructure:"falling_slope"`
	SeasonalAmplitude float64 `mapstructure:"seasonal_amplitude"`
	DampeningFactor   float64 `mapstructure:"dampening_factor"`
	FloorRatio        float64 `mapstructure:"floor_ratio"`
}

type SpoilageConfig struct {
	FallbackShelfLifeDays int     `mapstructure:"fallback_shelf_life_days"`
	MediumUtilization     float64 `mapstructure:"medium_utilization"`
	HighUtilization       float64 `mapstructure:"high_utilization"`
	SafeUtilization       float64 `mapstructure:"safe_utilization"`
}

type DecisionConfig struct {
	HighRiskMinImprovementPct float64 `mapstructure:"high_risk_min_improvement_pct"`
	MinImprovementPct         float64 `mapstructure:"min_improvement_pct"`
}

// MetricsConfig holds the metrics endpoint settings.
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Port    int  `mapstructure:"port"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}
