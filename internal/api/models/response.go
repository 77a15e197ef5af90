package models

import "time"

// PriceChangeResponse is returned by GET /api/v1/simulator/{product}/price_change.
type PriceChangeResponse struct {
	RevenueChangePct float64 `json:"revenue_change_pct"`
	DemandChangePct  float64 `json:"demand_change_pct"`
	PriceChangePct   float64 `json:"price_change_pct,omitempty"`
	Recommendation   string  `json:"recommendation"`
}

// PromotionResponse is returned by GET /api/v1/simulator/{product}/promotion.
type PromotionResponse struct {
	RevenueImpact       float64 `json:"revenue_impact"`
	IsProfitable        bool    `json:"is_profitable"`
	LiftPct             float64 `json:"lift_pct"`
	PredictedDailySales float64 `json:"predicted_daily_sales,omitempty"`
	Recommendation      string  `json:"recommendation"`
}

// InventoryChangeResponse is returned by GET /api/v1/simulator/{product}/inventory_change.
type InventoryChangeResponse struct {
	HoldingCostChange     float64 `json:"holding_cost_change"`
	StockoutRiskReduction float64 `json:"stockout_risk_reduction"`
	LostSalesRiskPct      float64 `json:"lost_sales_risk_pct,omitempty"`
	Recommendation        string  `json:"recommendation"`
}

// CompetitorMoveResponse is returned by GET /api/v1/simulator/{product}/competitor_move.
type CompetitorMoveResponse struct {
	RevenueImpactPct float64 `json:"revenue_impact_pct"`
	DemandImpactPct  float64 `json:"demand_impact_pct"`
	Recommendation   string  `json:"recommendation"`
}

// MarketingResponse is returned by GET /api/v1/simulator/{product}/marketing.
type MarketingResponse struct {
	DailyRevenueIncrease float64 `json:"daily_revenue_increase"`
	TrafficLiftPct       float64 `json:"traffic_lift_pct"`
	BreakEvenDays        float64 `json:"break_even_days"`
	Recommendation       string  `json:"recommendation"`
}

// StoreSimulationResponse is returned by GET /api/v1/simulator/all.
type StoreSimulationResponse struct {
	ProductsImpacted int          `json:"products_impacted"`
	Summary          StoreSummary `json:"summary"`
}

// StoreSummary aggregates a store-wide scenario.
type StoreSummary struct {
	TotalRevenueChange float64  `json:"total_revenue_change"`
	RevenueChangePct   float64  `json:"revenue_change_pct"`
	DemandChangePct    float64  `json:"demand_change_pct"`
	NetProfitImpact    *float64 `json:"net_profit_impact,omitempty"` // marketing only
	Action             string   `json:"action"`                      // POSITIVE, NEGATIVE
}

// UploadResponse is the body of POST /api/upload_inventory, success or error.
type UploadResponse struct {
	Status         string   `json:"status"`
	Message        string   `json:"message,omitempty"`
	Warnings       []string `json:"warnings,omitempty"`
	Error          string   `json:"error,omitempty"`
	MissingColumns []string `json:"missing_columns,omitempty"`
}

// ProductSummary is one row of the product listing.
type ProductSummary struct {
	ProductName    string  `json:"product_name"`
	RiskLevel      string  `json:"risk_level"`
	DaysOfStock    float64 `json:"days_of_stock"`
	DemandTrendPct float64 `json:"demand_trend_pct"`
	CurrentPrice   float64 `json:"current_price"`
	ExpiryRisk     string  `json:"expiry_risk"`
	PricingAction  string  `json:"pricing_action,omitempty"`
	ConfidenceTier string  `json:"confidence_tier,omitempty"`
	MarketPosition string  `json:"market_position,omitempty"`
	RiskReason     string  `json:"risk_reason,omitempty"`
}

// ProductListResponse is returned by GET /api/v1/products/.
type ProductListResponse struct {
	Products   []ProductSummary `json:"products"`
	TotalCount int              `json:"total_count"`
}

// ProductAnalysisResponse is returned by GET /api/v1/products/{product}/analyze.
// Section contents are produced by backend models and are kept opaque.
type ProductAnalysisResponse struct {
	ProductName           string         `json:"product_name" yaml:"product_name"`
	CurrentPrice          float64        `json:"current_price" yaml:"current_price"`
	Forecast              map[string]any `json:"forecast" yaml:"forecast"`
	InventoryRisk         map[string]any `json:"inventory_risk" yaml:"inventory_risk"`
	PricingRecommendation map[string]any `json:"pricing_recommendation" yaml:"pricing_recommendation"`
	Competition           map[string]any `json:"competition" yaml:"competition"`
	Seasonality           map[string]any `json:"seasonality" yaml:"seasonality"`
	Recommendation        map[string]any `json:"recommendation" yaml:"recommendation"`
	AnalysisTimestamp     time.Time      `json:"analysis_timestamp" yaml:"analysis_timestamp"`
}

// InsightsResponse is returned by GET /api/v1/products/insights.
type InsightsResponse struct {
	Counts              map[string]int `json:"counts"`
	Insights            []string       `json:"insights"`
	HighRiskProducts    []string       `json:"high_risk_products"`
	OpportunityProducts []string       `json:"opportunity_products"`
	DailyActions        []string       `json:"daily_actions"`
	WeeklyStrategy      []string       `json:"weekly_strategy"`
}

// CopilotResponse is returned by POST /api/v1/copilot/query.
type CopilotResponse struct {
	Query       string         `json:"query"`
	Response    string         `json:"response"`
	Intent      string         `json:"intent"` // forecast, pricing, inventory, simulation, general
	Data        map[string]any `json:"data,omitempty"`
	Suggestions []string       `json:"suggestions"`
}

// SuggestionsResponse is returned by GET /api/v1/copilot/suggestions.
type SuggestionsResponse struct {
	Suggestions []string            `json:"suggestions"`
	Categories  map[string][]string `json:"categories"`
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}

// BackendErrorBody covers both FastAPI error shapes: {"detail": "..."} from
// HTTPException and {"error": "...", "detail": "..."} from the global handlers.
type BackendErrorBody struct {
	Error  string `json:"error,omitempty"`
	Detail any    `json:"detail,omitempty"`
}

// ErrorResponse represents an error response served by the dashboard itself.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}
