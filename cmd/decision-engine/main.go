// cmd/decision-engine/main.go
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/xeipuuv/gojsonschema"
	"go.uber.org/zap"

	"postharvest-engine/internal/common/config"
	"postharvest-engine/internal/common/database"
	"postharvest-engine/internal/common/logger"
	"postharvest-engine/internal/common/observability"
	"postharvest-engine/internal/engine"
	"postharvest-engine/internal/engine/forecast"
	"postharvest-engine/internal/engine/spoilage"
	"postharvest-engine/internal/engine/storagedecision"
	"postharvest-engine/internal/engine/transport"
	"postharvest-engine/internal/models"
	"postharvest-engine/internal/providers"
	"postharvest-engine/pkg/geo"
)

const requestSchema = `{
	"type": "object",
	"required": ["cropName", "quantityKg", "farmerLocation", "harvestDate", "todayDate"],
	"additionalProperties": false,
	"properties": {
		"cropName":   {"type": "string", "minLength": 1},
		"quantityKg": {"type": "number", "exclusiveMinimum": 0},
		"farmerLocation": {
			"type": "object",
			"required": ["latitude", "longitude"],
			"properties": {
				"latitude":  {"type": "number", "minimum": -90, "maximum": 90},
				"longitude": {"type": "number", "minimum": -180, "maximum": 180}
			}
		},
		"harvestDate": {"type": "string", "format": "date"},
		"todayDate":   {"type": "string", "format": "date"}
	}
}`

type decisionRequest struct {
	CropName       string    `json:"cropName"`
	QuantityKg     float64   `json:"quantityKg"`
	FarmerLocation geo.Point `json:"farmerLocation"`
	HarvestDate    string    `json:"harvestDate"`
	TodayDate      string    `json:"todayDate"`
}

func main() {
	inputPath := flag.String("input", "", "path to the decision request JSON (defaults to stdin)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	zapLogger := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLogger.Sync()
	log := logger.NewZapAdapter(zapLogger)

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	if cfg.Metrics.Enabled {
		go serveMetrics(cfg.Metrics.Port, zapLogger)
	}

	request, err := readRequest(*inputPath)
	if err != nil {
		zapLogger.Fatal("invalid request", zap.Error(err))
	}

	farmer, err := toFarmerContext(request)
	if err != nil {
		zapLogger.Fatal("invalid farmer context", zap.Error(err))
	}

	crops, prices, storage, cleanup, err := buildProviders(cfg, log)
	if err != nil {
		zapLogger.Fatal("failed to build providers", zap.Error(err))
	}
	defer cleanup()

	eng := engine.New(engineConfig(cfg), crops, prices, storage, log)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Engine.ProviderTimeoutMs)*time.Millisecond)
	defer cancel()

	started := time.Now()
	result, err := eng.RunDecision(ctx, farmer)
	obs.RecordDecisionDuration(ctx, time.Since(started), outcomeOf(result, err))
	obs.RecordDecision(ctx, outcomeOf(result, err))
	if err != nil {
		zapLogger.Fatal("decision failed", zap.Error(err))
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(result); err != nil {
		zapLogger.Fatal("failed to encode result", zap.Error(err))
	}
}

func outcomeOf(result *models.DecisionResult, err error) string {
	if err != nil {
		return "error"
	}
	return string(result.StorageDecision)
}

func readRequest(path string) (*decisionRequest, error) {
	var raw []byte
	var err error
	if path == "" {
		raw, err = os.ReadFile("/dev/stdin")
	} else {
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read request: %w", err)
	}

	schemaLoader := gojsonschema.NewStringLoader(requestSchema)
	documentLoader := gojsonschema.NewBytesLoader(raw)
	validation, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return nil, fmt.Errorf("schema validation: %w", err)
	}
	if !validation.Valid() {
		return nil, fmt.Errorf("request does not match schema: %v", validation.Errors())
	}

	var request decisionRequest
	if err := json.Unmarshal(raw, &request); err != nil {
		return nil, fmt.Errorf("parse request: %w", err)
	}
	return &request, nil
}

func toFarmerContext(request *decisionRequest) (*models.FarmerContext, error) {
	harvestDate, err := time.Parse("2006-01-02", request.HarvestDate)
	if err != nil {
		return nil, fmt.Errorf("parse harvestDate: %w", err)
	}
	todayDate, err := time.Parse("2006-01-02", request.TodayDate)
	if err != nil {
		return nil, fmt.Errorf("parse todayDate: %w", err)
	}

	return models.NewFarmerContext(request.CropName, request.QuantityKg, request.FarmerLocation, harvestDate, todayDate)
}

// buildProviders wires the configured backends, falling back to the
// built-in demo snapshot when no database is configured.
func buildProviders(cfg *config.Config, log logger.Logger) (providers.CropMetadataProvider, providers.MandiPriceProvider, providers.StorageFacilityProvider, func(), error) {
	if cfg.Database.Postgres.Host == "" || len(cfg.Database.Elasticsearch.Addresses) == 0 {
		log.Info("no database configured, using built-in snapshot", nil)
		snapshot := demoSnapshot()
		return snapshot, snapshot, snapshot, func() {}, nil
	}

	pg, err := database.NewPostgres(cfg.Database.Postgres)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	es, err := database.NewElasticsearch(cfg.Database.Elasticsearch)
	if err != nil {
		pg.Close()
		return nil, nil, nil, nil, err
	}

	var rdb *database.RedisClient
	if cfg.Database.Redis.Address != "" {
		rdb, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			pg.Close()
			return nil, nil, nil, nil, err
		}
	}

	cacheTTL := time.Duration(cfg.Engine.CropCacheTTLSeconds) * time.Second
	var redisConn *redis.Client
	if rdb != nil {
		redisConn = rdb.GetClient()
	}
	cropStore := providers.NewPostgresCropStore(pg.GetDB(), redisConn, cacheTTL, log)

	priceStore := providers.NewElasticMandiPrices(es.GetClient(), cfg.Database.Elasticsearch.MandiIndex, cfg.Database.Elasticsearch.PriceIndex, log)
	storageFinder := providers.NewPostgresStorageFinder(pg.GetDB(), 50, log)

	cleanup := func() {
		pg.Close()
		if rdb != nil {
			rdb.Close()
		}
	}

	return cropStore, priceStore, storageFinder, cleanup, nil
}

func engineConfig(cfg *config.Config) *engine.Config {
	e := cfg.Engine
	return &engine.Config{
		Transport: &transport.Config{
			RatePerKmPerQuintal: e.Transport.RatePerKmPerQuintal,
			LongHaulKm:          e.Transport.LongHaulKm,
			LongHaulSurcharge:   e.Transport.LongHaulSurcharge,
			HandlingCharge:      e.Transport.HandlingCharge,
		},
		Forecast: &forecast.Config{
			DaysAhead:         e.Forecast.DaysAhead,
			HistoryWindow:     e.Forecast.HistoryWindow,
			RisingSlope:       e.Forecast.RisingSlope,
			FallingSlope:      e.Forecast.FallingSlope,
			SeasonalAmplitude: e.Forecast.SeasonalAmplitude,
			DampeningFactor:   e.Forecast.DampeningFactor,
			FloorRatio:        e.Forecast.FloorRatio,
		},
		Spoilage: &spoilage.Config{
			FallbackShelfLifeDays: e.Spoilage.FallbackShelfLifeDays,
			MediumUtilization:     e.Spoilage.MediumUtilization,
			HighUtilization:       e.Spoilage.HighUtilization,
			SafeUtilization:       e.Spoilage.SafeUtilization,
		},
		Decision: &storagedecision.Config{
			HighRiskMinImprovementPct: e.Decision.HighRiskMinImprovementPct,
			MinImprovementPct:         e.Decision.MinImprovementPct,
		},
	}
}

func serveMetrics(port int, log *zap.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	addr := fmt.Sprintf(":%d", port)
	log.Info("metrics server listening", zap.String("addr", addr))
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Warn("metrics server stopped", zap.Error(err))
	}
}
