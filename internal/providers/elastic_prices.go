// internal/providers/elastic_prices.go
package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/elastic/go-elasticsearch/v8"

	"postharvest-engine/internal/common/logger"
	"postharvest-engine/internal/common/metrics"
	"postharvest-engine/internal/models"
	"postharvest-engine/pkg/geo"
)

// ElasticMandiPrices reads the mandi registry and per-(mandi, crop) price
// series from Elasticsearch.
type ElasticMandiPrices struct {
	client     *elasticsearch.Client
	mandiIndex string
	priceIndex string
	logger     logger.Logger
}

func NewElasticMandiPrices(client *elasticsearch.Client, mandiIndex, priceIndex string, log logger.Logger) *ElasticMandiPrices {
	return &ElasticMandiPrices{
		client:     client,
		mandiIndex: mandiIndex,
		priceIndex: priceIndex,
		logger:     log.WithFields(map[string]interface{}{"provider": "mandi-prices"}),
	}
}

type mandiDoc struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type priceDoc struct {
	MandiName    string  `json:"mandiName"`
	CropName     string  `json:"cropName"`
	Date         string  `json:"date"`
	PricePerKg   float64 `json:"pricePerKg"`
	CurrentPrice float64 `json:"currentPrice"`
}

type searchResponse struct {
	Hits struct {
		Total struct {
			Value int `json:"value"`
		} `json:"total"`
		Hits []struct {
			Source json.RawMessage `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

func (p *ElasticMandiPrices) ListMandis(ctx context.Context) ([]models.MandiInfo, error) {
	body := map[string]interface{}{
		"query": map[string]interface{}{"match_all": map[string]interface{}{}},
		"size":  1000,
	}

	resp, err := p.search(ctx, p.mandiIndex, body)
	if err != nil {
		metrics.ProviderErrors.WithLabelValues("mandi-prices").Inc()
		return nil, fmt.Errorf("list mandis: %w", err)
	}

	mandis := make([]models.MandiInfo, 0, len(resp.Hits.Hits))
	for _, hit := range resp.Hits.Hits {
		var doc mandiDoc
		if err := json.Unmarshal(hit.Source, &doc); err != nil {
			p.logger.Warn("skipping malformed mandi document", map[string]interface{}{
				"error": err,
			})
			continue
		}
		mandis = append(mandis, models.MandiInfo{
			Name:     doc.Name,
			Location: geo.Point{Latitude: doc.Latitude, Longitude: doc.Longitude},
		})
	}

	return mandis, nil
}

func (p *ElasticMandiPrices) GetPrice(ctx context.Context, mandiName, cropName string) (*models.MandiPriceData, error) {
	body := map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"filter": []map[string]interface{}{
					{"term": map[string]interface{}{"mandiName": mandiName}},
					{"term": map[string]interface{}{"cropName": models.NormalizeCropName(cropName)}},
				},
			},
		},
		"sort": []map[string]interface{}{
			{"date": map[string]interface{}{"order": "asc"}},
		},
		"size": 90,
	}

	resp, err := p.search(ctx, p.priceIndex, body)
	if err != nil {
		metrics.ProviderErrors.WithLabelValues("mandi-prices").Inc()
		return nil, fmt.Errorf("get price for %s: %w", mandiName, err)
	}

	if resp.Hits.Total.Value == 0 {
		return nil, fmt.Errorf("%w: mandi=%s crop=%s", ErrPriceNotFound, mandiName, cropName)
	}

	data := &models.MandiPriceData{}
	for _, hit := range resp.Hits.Hits {
		var doc priceDoc
		if err := json.Unmarshal(hit.Source, &doc); err != nil {
			continue
		}
		date, err := time.Parse("2006-01-02", doc.Date)
		if err != nil {
			continue
		}
		data.PriceHistory = append(data.PriceHistory, models.PricePoint{
			Date:       date,
			PricePerKg: doc.PricePerKg,
		})
		if doc.CurrentPrice > 0 {
			data.CurrentPrice = doc.CurrentPrice
		}
	}

	sort.Slice(data.PriceHistory, func(i, j int) bool {
		return data.PriceHistory[i].Date.Before(data.PriceHistory[j].Date)
	})

	// The newest point doubles as the current price when no document
	// carries one explicitly.
	if data.CurrentPrice == 0 && len(data.PriceHistory) > 0 {
		data.CurrentPrice = data.PriceHistory[len(data.PriceHistory)-1].PricePerKg
	}

	if data.CurrentPrice == 0 {
		return nil, fmt.Errorf("%w: mandi=%s crop=%s", ErrPriceNotFound, mandiName, cropName)
	}

	return data, nil
}

func (p *ElasticMandiPrices) search(ctx context.Context, index string, body map[string]interface{}) (*searchResponse, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return nil, fmt.Errorf("encode query: %w", err)
	}

	res, err := p.client.Search(
		p.client.Search.WithContext(ctx),
		p.client.Search.WithIndex(index),
		p.client.Search.WithBody(&buf),
	)
	if err != nil {
		return nil, fmt.Errorf("search request: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("search error: %s", res.Status())
	}

	var resp searchResponse
	if err := json.NewDecoder(res.Body).Decode(&resp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return &resp, nil
}
