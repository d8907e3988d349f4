// internal/common/config/loader.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

func Load() (*Config, error) {
	loadEnvFile()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("../../configs")
	viper.AddConfigPath(".")

	// Enable ENV override like DATABASE_POSTGRES_PASSWORD
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	// Environment-specific overlay, ignored when absent.
	viper.SetConfigName(fmt.Sprintf("config.%s", env))
	_ = viper.MergeInConfig()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func loadEnvFile() {
	possiblePaths := []string{
		".env",
		"../.env",
		"../../.env",
	}

	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

// Find project root by looking for go.mod
func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "postharvest-engine"
	}
	if cfg.App.Environment == "" {
		cfg.App.Environment = "development"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
	if cfg.Metrics.Port == 0 {
		cfg.Metrics.Port = 9100
	}

	if cfg.Database.Postgres.MaxConnections == 0 {
		cfg.Database.Postgres.MaxConnections = 10
	}
	if cfg.Database.Postgres.MaxIdle == 0 {
		cfg.Database.Postgres.MaxIdle = 5
	}
	if cfg.Database.Postgres.SSLMode == "" {
		cfg.Database.Postgres.SSLMode = "disable"
	}
	if cfg.Database.Elasticsearch.PriceIndex == "" {
		cfg.Database.Elasticsearch.PriceIndex = "mandi-prices"
	}
	if cfg.Database.Elasticsearch.MandiIndex == "" {
		cfg.Database.Elasticsearch.MandiIndex = "mandis"
	}

	e := &cfg.Engine
	if e.Transport.RatePerKmPerQuintal == 0 {
		e.Transport.RatePerKmPerQuintal = 4
	}
	if e.Transport.LongHaulKm == 0 {
		e.Transport.LongHaulKm = 100
	}
	if e.Transport.LongHaulSurcharge == 0 {
		e.Transport.LongHaulSurcharge = 1.2
	}
	if e.Transport.HandlingCharge == 0 {
		e.Transport.HandlingCharge = 500
	}

	if e.Forecast.DaysAhead == 0 {
		e.Forecast.DaysAhead = 14
	}
	if e.Forecast.HistoryWindow == 0 {
		e.Forecast.HistoryWindow = 7
	}
	if e.Forecast.RisingSlope == 0 {
		e.Forecast.RisingSlope = 0.5
	}
	if e.Forecast.FallingSlope == 0 {
		e.Forecast.FallingSlope = -0.5
	}
	if e.Forecast.SeasonalAmplitude == 0 {
		e.Forecast.SeasonalAmplitude = 0.05
	}
	if e.Forecast.DampeningFactor == 0 {
		e.Forecast.DampeningFactor = 0.1
	}
	if e.Forecast.FloorRatio == 0 {
		e.Forecast.FloorRatio = 0.8
	}

	if e.Spoilage.FallbackShelfLifeDays == 0 {
		e.Spoilage.FallbackShelfLifeDays = 30
	}
	if e.Spoilage.MediumUtilization == 0 {
		e.Spoilage.MediumUtilization = 0.5
	}
	if e.Spoilage.HighUtilization == 0 {
		e.Spoilage.HighUtilization = 0.8
	}
	if e.Spoilage.SafeUtilization == 0 {
		e.Spoilage.SafeUtilization = 0.8
	}

	if e.Decision.HighRiskMinImprovementPct == 0 {
		e.Decision.HighRiskMinImprovementPct = 15
	}

	if e.CropCacheTTLSeconds == 0 {
		e.CropCacheTTLSeconds = 600
	}
	if e.ProviderTimeoutMs == 0 {
		e.ProviderTimeoutMs = 5000
	}
}

func validateConfig(cfg *Config) error {
	e := cfg.Engine
	if e.Forecast.DaysAhead < 1 {
		return fmt.Errorf("engine.forecast.days_ahead must be at least 1")
	}
	if e.Forecast.FloorRatio <= 0 || e.Forecast.FloorRatio > 1 {
		return fmt.Errorf("engine.forecast.floor_ratio must be in (0, 1]")
	}
	if e.Spoilage.MediumUtilization >= e.Spoilage.HighUtilization {
		return fmt.Errorf("engine.spoilage.medium_utilization must be below high_utilization")
	}
	if e.Transport.RatePerKmPerQuintal < 0 {
		return fmt.Errorf("engine.transport.rate_per_km_per_quintal must not be negative")
	}
	return nil
}
