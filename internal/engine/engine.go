// internal/engine/engine.go
package engine

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	stderrors "postharvest-engine/internal/common/errors"
	"postharvest-engine/internal/common/logger"
	"postharvest-engine/internal/common/metrics"
	"postharvest-engine/internal/engine/forecast"
	"postharvest-engine/internal/engine/market"
	"postharvest-engine/internal/engine/profit"
	"postharvest-engine/internal/engine/spoilage"
	"postharvest-engine/internal/engine/storagedecision"
	"postharvest-engine/internal/engine/transport"
	"postharvest-engine/internal/models"
	"postharvest-engine/internal/providers"
)

// Config bundles the tunables of every pipeline stage. Nil sections fall
// back to their package defaults.
type Config struct {
	Transport *transport.Config
	Forecast  *forecast.Config
	Spoilage  *spoilage.Config
	Decision  *storagedecision.Config
}

// Engine composes the full post-harvest decision pipeline. It holds no
// mutable state between runs; concurrent RunDecision calls are safe as
// long as the providers are.
type Engine struct {
	config   *Config
	crops    providers.CropMetadataProvider
	storage  providers.StorageFacilityProvider
	selector *market.Selector
	caster   *forecast.Forecaster
	assessor *spoilage.Assessor
	decider  *storagedecision.Decider
	logger   logger.Logger
}

func New(config *Config, crops providers.CropMetadataProvider, prices providers.MandiPriceProvider, storage providers.StorageFacilityProvider, log logger.Logger) *Engine {
	if config == nil {
		config = &Config{}
	}

	estimator := transport.NewEstimator(config.Transport)
	calculator := profit.NewCalculator()

	return &Engine{
		config:   config,
		crops:    crops,
		storage:  storage,
		selector: market.NewSelector(prices, estimator, calculator, log),
		caster:   forecast.NewForecaster(config.Forecast, prices, log),
		assessor: spoilage.NewAssessor(config.Spoilage, crops, log),
		decider:  storagedecision.NewDecider(config.Decision, log),
		logger:   log.WithFields(map[string]interface{}{"component": "decision-engine"}),
	}
}

// RunDecision executes the nine-step pipeline for one farmer context.
// Market selection runs twice when storage is chosen: the first pass
// (without storage cost) picks the mandi whose series is forecast, the
// second pass re-ranks with storage priced in, because a different mandi
// may be optimal once storage is paid for.
func (e *Engine) RunDecision(ctx context.Context, farmer *models.FarmerContext) (*models.DecisionResult, error) {
	start := time.Now()
	log := e.logger.WithFields(map[string]interface{}{
		"decisionId": uuid.NewString(),
		"crop":       farmer.CropName,
		"quantityKg": farmer.QuantityKg,
	})

	result, err := e.run(ctx, farmer, log)

	outcome := "error"
	if err == nil {
		outcome = string(result.StorageDecision)
	}
	metrics.DecisionRequests.WithLabelValues(outcome).Inc()
	metrics.DecisionDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		log.WithError(err).Error("decision run failed", nil)
		return nil, err
	}

	log.Info("decision run completed", map[string]interface{}{
		"decision":   result.StorageDecision,
		"bestMarket": result.BestMarketName,
		"netProfit":  result.NetProfit,
		"waitDays":   result.RecommendedWaitDays,
	})
	return result, nil
}

func (e *Engine) run(ctx context.Context, farmer *models.FarmerContext, log logger.Logger) (*models.DecisionResult, error) {
	// Step 1: crop metadata is mandatory.
	meta, err := e.crops.Get(ctx, farmer.CropName)
	if err != nil {
		if errors.Is(err, providers.ErrCropNotFound) {
			return nil, stderrors.NewCropNotFoundError(farmer.CropName)
		}
		return nil, stderrors.NewCropLookupFailedError(err)
	}

	// Step 2: provisional ranking without storage cost picks the mandi
	// whose price series drives the forecast.
	provisional, err := e.selector.Select(ctx, farmer.FarmerLocation, farmer.CropName, farmer.QuantityKg, 0)
	if err != nil {
		return nil, err
	}

	// Step 3: forecast against the provisional best market.
	priceForecast, err := e.caster.Forecast(ctx, farmer.CropName, provisional.BestMarket.MandiName, 0)
	if err != nil {
		return nil, stderrors.NewPriceLookupFailedError(provisional.BestMarket.MandiName, err)
	}

	// Step 4: highly perishable crops need cold storage to wait at all.
	storageType := models.StorageOpen
	if meta.Spoilage == models.SpoilageHigh {
		storageType = models.StorageCold
	}

	// Step 5: rate the risk of waiting until the forecast peak.
	assessment, err := e.assessor.Assess(ctx, farmer.CropName, priceForecast.PeakDay, storageType)
	if err != nil {
		return nil, stderrors.NewCropLookupFailedError(err)
	}

	// Step 6: facility absence is an expected outcome, not a failure.
	facility, err := e.storage.FindBest(ctx, farmer.FarmerLocation, farmer.CropName, farmer.QuantityKg, storageType, priceForecast.PeakDay)
	if err != nil {
		if !errors.Is(err, providers.ErrNoFacility) {
			return nil, stderrors.NewStorageLookupFailedError(err)
		}
		facility = nil
		log.Info("no storage facility matched", map[string]interface{}{
			"storageType": storageType,
			"daysNeeded":  priceForecast.PeakDay,
		})
	}

	// Step 7: run the decision rules.
	decision := e.decider.Decide(&storagedecision.Input{
		QuantityKg:    farmer.QuantityKg,
		CurrentPrice:  provisional.BestMarket.MarketPrice,
		Forecast:      priceForecast,
		Assessment:    assessment,
		StorageOption: facility,
		TransportCost: provisional.BestMarket.TransportCost,
	})

	// Step 8: when storing, re-rank markets with storage priced in.
	recommendation := provisional
	storageCost := 0.0
	if decision.Decision == models.DecisionStoreAndSell {
		storageCost = facility.TotalCostForPeriod
		recommendation, err = e.selector.Select(ctx, farmer.FarmerLocation, farmer.CropName, farmer.QuantityKg, storageCost)
		if err != nil {
			return nil, err
		}
	}

	// Step 9: flatten everything into the result.
	return assembleResult(decision, assessment, recommendation, priceForecast, storageType, storageCost), nil
}

func assembleResult(decision *models.StorageDecision, assessment *models.SpoilageAssessment, recommendation *models.MarketRecommendation, priceForecast *models.PriceForecast, storageType models.StorageType, storageCost float64) *models.DecisionResult {
	best := recommendation.BestMarket

	alternatives := make([]models.AlternativeMarket, 0, len(recommendation.AlternativeMarkets))
	for _, opt := range recommendation.AlternativeMarkets {
		alternatives = append(alternatives, models.AlternativeMarket{
			MarketName:    opt.MandiName,
			DistanceKm:    opt.DistanceKm,
			Price:         opt.MarketPrice,
			TransportCost: opt.TransportCost,
			NetProfit:     opt.Profit.NetProfit,
		})
	}

	return &models.DecisionResult{
		StorageDecision:          decision.Decision,
		RecommendedWaitDays:      decision.RecommendedWaitDays,
		SpoilageRisk:             assessment.RiskLevel,
		MaxSafeStorageDays:       assessment.MaxSafeStorageDays,
		StorageTypeRecommended:   storageType,
		BestMarketName:           best.MandiName,
		BestMarketLocation:       best.MandiLocation,
		MarketPrice:              best.MarketPrice,
		TransportCost:            best.TransportCost,
		StorageCost:              storageCost,
		NetProfit:                best.Profit.NetProfit,
		ProfitMarginPercent:      best.Profit.ProfitMarginPercent,
		AlternativeMarkets:       alternatives,
		CurrentPrice:             priceForecast.CurrentPrice,
		PeakPrice:                priceForecast.PeakPrice,
		PeakDay:                  priceForecast.PeakDay,
		PriceTrend:               priceForecast.Trend,
		StorageReasoning:         decision.Reasoning,
		ProfitImprovementPercent: decision.ProfitImprovementPercent,
	}
}
