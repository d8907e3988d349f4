// internal/models/decision.go
package models

import "postharvest-engine/pkg/geo"

// PriceTrend classifies the direction of recent price movement.
type PriceTrend string

const (
	TrendRising  PriceTrend = "rising"
	TrendFalling PriceTrend = "falling"
	TrendStable  PriceTrend = "stable"
)

// RiskLevel classifies spoilage risk for a planned storage duration.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// DecisionType is the terminal outcome of the storage decision.
type DecisionType string

const (
	DecisionSellNow      DecisionType = "sell_now"
	DecisionStoreAndSell DecisionType = "store_and_sell"
)

// PriceForecast projects prices over a horizon for one (mandi, crop).
// ForecastedPrices has exactly daysAhead+1 entries keyed by day offset.
type PriceForecast struct {
	CropName         string          `json:"cropName"`
	MandiName        string          `json:"mandiName"`
	CurrentPrice     float64         `json:"currentPrice"`
	ForecastedPrices map[int]float64 `json:"forecastedPrices"`
	PeakDay          int             `json:"peakDay"`
	PeakPrice        float64         `json:"peakPrice"`
	Trend            PriceTrend      `json:"trend"`
}

// SpoilageAssessment describes the risk of holding a crop for a duration.
type SpoilageAssessment struct {
	RiskLevel          RiskLevel   `json:"riskLevel"`
	MaxSafeStorageDays int         `json:"maxSafeStorageDays"`
	ShelfLifeDays      int         `json:"shelfLifeDays"`
	UtilizationPercent float64     `json:"utilizationPercent"`
	StorageTypeUsed    StorageType `json:"storageTypeUsed"`
}

// StorageFacility is a matched storage option near the farmer.
type StorageFacility struct {
	Name               string      `json:"name"`
	Location           geo.Point   `json:"location"`
	Type               StorageType `json:"type"`
	DailyRate          float64     `json:"dailyRate"`
	TotalCostForPeriod float64     `json:"totalCostForPeriod"`
}

// StorageFacilityRecord is the raw facility row a storage provider matches
// against. CapacityKg and DailyRatePerKg are per-facility attributes; the
// matched StorageFacility carries quantity-scaled costs instead.
type StorageFacilityRecord struct {
	Name           string      `json:"name"`
	Location       geo.Point   `json:"location"`
	Type           StorageType `json:"type"`
	CapacityKg     float64     `json:"capacityKg"`
	DailyRatePerKg float64     `json:"dailyRatePerKg"`
}

// StorageDecision is the sell-now versus store-and-sell verdict.
type StorageDecision struct {
	Decision                 DecisionType `json:"decision"`
	RecommendedWaitDays      int          `json:"recommendedWaitDays"`
	Reasoning                string       `json:"reasoning"`
	ProfitImprovementPercent float64      `json:"profitImprovementPercent"`
}

// AlternativeMarket is the flattened per-market view in the final result.
type AlternativeMarket struct {
	MarketName    string  `json:"marketName"`
	DistanceKm    float64 `json:"distanceKm"`
	Price         float64 `json:"price"`
	TransportCost float64 `json:"transportCost"`
	NetProfit     float64 `json:"netProfit"`
}

// DecisionResult is the flattened output of one engine run. It has no
// identity beyond the call that produced it.
type DecisionResult struct {
	StorageDecision          DecisionType        `json:"storageDecision"`
	RecommendedWaitDays      int                 `json:"recommendedWaitDays"`
	SpoilageRisk             RiskLevel           `json:"spoilageRisk"`
	MaxSafeStorageDays       int                 `json:"maxSafeStorageDays"`
	StorageTypeRecommended   StorageType         `json:"storageTypeRecommended"`
	BestMarketName           string              `json:"bestMarketName"`
	BestMarketLocation       geo.Point           `json:"bestMarketLocation"`
	MarketPrice              float64             `json:"marketPrice"`
	TransportCost            float64             `json:"transportCost"`
	StorageCost              float64             `json:"storageCost"`
	NetProfit                float64             `json:"netProfit"`
	ProfitMarginPercent      float64             `json:"profitMarginPercent"`
	AlternativeMarkets       []AlternativeMarket `json:"alternativeMarkets"`
	CurrentPrice             float64             `json:"currentPrice"`
	PeakPrice                float64             `json:"peakPrice"`
	PeakDay                  int                 `json:"peakDay"`
	PriceTrend               PriceTrend          `json:"priceTrend"`
	StorageReasoning         string              `json:"storageReasoning"`
	ProfitImprovementPercent float64             `json:"profitImprovementPercent"`
}
