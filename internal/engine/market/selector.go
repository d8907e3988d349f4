// internal/engine/market/selector.go
package market

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"

	stderrors "postharvest-engine/internal/common/errors"
	"postharvest-engine/internal/common/logger"
	"postharvest-engine/internal/common/metrics"
	"postharvest-engine/internal/engine/profit"
	"postharvest-engine/internal/engine/transport"
	"postharvest-engine/internal/models"
	"postharvest-engine/internal/providers"
	"postharvest-engine/pkg/geo"
)

// MaxAlternatives caps the number of runner-up markets in a recommendation.
const MaxAlternatives = 3

// Selector ranks every known mandi by the net profit of selling there.
type Selector struct {
	prices    providers.MandiPriceProvider
	transport *transport.Estimator
	profit    *profit.Calculator
	logger    logger.Logger
}

func NewSelector(prices providers.MandiPriceProvider, estimator *transport.Estimator, calculator *profit.Calculator, log logger.Logger) *Selector {
	return &Selector{
		prices:    prices,
		transport: estimator,
		profit:    calculator,
		logger:    log.WithFields(map[string]interface{}{"component": "market-selector"}),
	}
}

// Select costs out every mandi with price data for the crop and ranks the
// options by net profit descending. Ties break by ascending transport
// cost, then by mandi name, so equal-profit orderings are repeatable.
// Mandis lacking price data for this crop are excluded; an empty candidate
// set is a NO_MARKET_DATA error.
func (s *Selector) Select(ctx context.Context, farmerLocation geo.Point, cropName string, quantityKg, storageCost float64) (*models.MarketRecommendation, error) {
	mandis, err := s.prices.ListMandis(ctx)
	if err != nil {
		return nil, fmt.Errorf("list mandis: %w", err)
	}

	options := make([]models.MarketOption, 0, len(mandis))
	for _, mandi := range mandis {
		data, err := s.prices.GetPrice(ctx, mandi.Name, cropName)
		if err != nil {
			if errors.Is(err, providers.ErrPriceNotFound) {
				s.logger.Debug("mandi has no price data for crop, excluding", map[string]interface{}{
					"mandi": mandi.Name,
					"crop":  cropName,
				})
				continue
			}
			return nil, fmt.Errorf("price lookup for %s: %w", mandi.Name, err)
		}

		distanceKm := geo.HaversineKm(farmerLocation, mandi.Location)
		transportCost := s.transport.EstimateCost(farmerLocation, mandi.Location, quantityKg)
		netProfit := s.profit.Calculate(data.CurrentPrice, quantityKg, transportCost, storageCost)

		options = append(options, models.MarketOption{
			MandiName:     mandi.Name,
			MandiLocation: mandi.Location,
			DistanceKm:    round2(distanceKm),
			MarketPrice:   data.CurrentPrice,
			TransportCost: transportCost,
			Profit:        netProfit,
		})
	}

	if len(options) == 0 {
		return nil, stderrors.NewNoMarketDataError(cropName)
	}

	sort.Slice(options, func(i, j int) bool {
		if options[i].Profit.NetProfit != options[j].Profit.NetProfit {
			return options[i].Profit.NetProfit > options[j].Profit.NetProfit
		}
		if options[i].TransportCost != options[j].TransportCost {
			return options[i].TransportCost < options[j].TransportCost
		}
		return options[i].MandiName < options[j].MandiName
	})

	metrics.MarketsRanked.Observe(float64(len(options)))

	alternatives := options[1:]
	if len(alternatives) > MaxAlternatives {
		alternatives = alternatives[:MaxAlternatives]
	}

	return &models.MarketRecommendation{
		BestMarket:         options[0],
		AlternativeMarkets: alternatives,
	}, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
