// internal/engine/forecast/forecaster.go
package forecast

import (
	"context"
	"fmt"
	"math"

	"postharvest-engine/internal/common/logger"
	"postharvest-engine/internal/models"
	"postharvest-engine/internal/providers"
)

// Forecaster projects near-term prices for one (mandi, crop) from its
// recent history. Output is deterministic for identical history.
type Forecaster struct {
	config *Config
	prices providers.MandiPriceProvider
	logger logger.Logger
}

func NewForecaster(config *Config, prices providers.MandiPriceProvider, log logger.Logger) *Forecaster {
	if config == nil {
		config = DefaultConfig()
	}
	return &Forecaster{
		config: config,
		prices: prices,
		logger: log.WithFields(map[string]interface{}{"component": "price-forecaster"}),
	}
}

// Forecast fetches the price series and projects daysAhead days out,
// producing exactly daysAhead+1 entries (day 0 through daysAhead).
func (f *Forecaster) Forecast(ctx context.Context, cropName, mandiName string, daysAhead int) (*models.PriceForecast, error) {
	if daysAhead <= 0 {
		daysAhead = f.config.DaysAhead
	}

	data, err := f.prices.GetPrice(ctx, mandiName, cropName)
	if err != nil {
		return nil, fmt.Errorf("fetch price series: %w", err)
	}

	slope := f.regressionSlope(data.PriceHistory)
	trend := f.classifyTrend(slope)

	forecast := &models.PriceForecast{
		CropName:         cropName,
		MandiName:        mandiName,
		CurrentPrice:     data.CurrentPrice,
		ForecastedPrices: make(map[int]float64, daysAhead+1),
		Trend:            trend,
	}

	// With fewer than two observations there is nothing to extrapolate
	// from; the projection degenerates to a flat line at the current price.
	flat := len(data.PriceHistory) < 2

	peakDay := 0
	peakPrice := math.Inf(-1)
	floor := data.CurrentPrice * f.config.FloorRatio

	for day := 0; day <= daysAhead; day++ {
		var price float64
		if flat {
			price = round2(data.CurrentPrice)
		} else {
			base := data.CurrentPrice + slope*float64(day)
			seasonal := 1 + f.config.SeasonalAmplitude*(float64(day%7)-3)/3
			dampening := 1 - (float64(day)/float64(daysAhead))*f.config.DampeningFactor
			price = math.Max(round2(base*seasonal*dampening), floor)
		}

		forecast.ForecastedPrices[day] = price
		// Strict comparison keeps the earliest day on price ties.
		if price > peakPrice {
			peakPrice = price
			peakDay = day
		}
	}

	forecast.PeakDay = peakDay
	forecast.PeakPrice = peakPrice

	f.logger.Debug("price forecast computed", map[string]interface{}{
		"crop":     cropName,
		"mandi":    mandiName,
		"slope":    slope,
		"trend":    trend,
		"peakDay":  peakDay,
		"peakPrice": peakPrice,
	})

	return forecast, nil
}

// regressionSlope computes the least-squares slope over the last
// HistoryWindow points of the series, price against index. Returns zero
// when the series is too short or degenerate.
func (f *Forecaster) regressionSlope(history []models.PricePoint) float64 {
	window := f.config.HistoryWindow
	if len(history) < window {
		window = len(history)
	}
	if window < 2 {
		return 0
	}

	recent := history[len(history)-window:]

	n := float64(window)
	var sumX, sumY, sumXY, sumX2 float64
	for i, point := range recent {
		x := float64(i)
		y := point.PricePerKg
		sumX += x
		sumY += y
		sumXY += x * y
		sumX2 += x * x
	}

	denominator := n*sumX2 - sumX*sumX
	if denominator == 0 {
		return 0
	}

	return (n*sumXY - sumX*sumY) / denominator
}

func (f *Forecaster) classifyTrend(slope float64) models.PriceTrend {
	switch {
	case slope > f.config.RisingSlope:
		return models.TrendRising
	case slope < f.config.FallingSlope:
		return models.TrendFalling
	default:
		return models.TrendStable
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
