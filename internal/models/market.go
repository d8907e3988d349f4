// internal/models/market.go
package models

import (
	"time"

	"postharvest-engine/pkg/geo"
)

// MandiInfo identifies a wholesale market.
type MandiInfo struct {
	Name     string    `json:"name"`
	Location geo.Point `json:"location"`
}

// PricePoint is one element of a mandi's price history.
type PricePoint struct {
	Date       time.Time `json:"date"`
	PricePerKg float64   `json:"pricePerKg"`
}

// MandiPriceData is the price snapshot for one (mandi, crop) pair.
// PriceHistory is ordered oldest first.
type MandiPriceData struct {
	CurrentPrice float64      `json:"currentPrice"`
	PriceHistory []PricePoint `json:"priceHistory"`
}

// NetProfit breaks down the economics of selling at one market.
// All fields are rounded to two decimals at construction.
type NetProfit struct {
	GrossRevenue        float64 `json:"grossRevenue"`
	TransportCost       float64 `json:"transportCost"`
	StorageCost         float64 `json:"storageCost"`
	TotalCosts          float64 `json:"totalCosts"`
	NetProfit           float64 `json:"netProfit"`
	ProfitMarginPercent float64 `json:"profitMarginPercent"`
}

// MarketOption is one candidate mandi with its full costing.
type MarketOption struct {
	MandiName     string    `json:"mandiName"`
	MandiLocation geo.Point `json:"mandiLocation"`
	DistanceKm    float64   `json:"distanceKm"`
	MarketPrice   float64   `json:"marketPrice"`
	TransportCost float64   `json:"transportCost"`
	Profit        NetProfit `json:"netProfitDetails"`
}

// MarketRecommendation ranks the candidate markets.
// AlternativeMarkets holds at most three options, ordered by net profit
// descending, each no more profitable than BestMarket.
type MarketRecommendation struct {
	BestMarket         MarketOption   `json:"bestMarket"`
	AlternativeMarkets []MarketOption `json:"alternativeMarkets"`
}
