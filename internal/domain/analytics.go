package domain

// Priority ranks how urgently a pricing recommendation should be acted on.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// YearlyProjection is one simulated year of demand for a product.
type YearlyProjection struct {
	Year         int     `json:"year"`
	Demand       int     `json:"demand"`
	SellingPrice float64 `json:"selling_price"`
}

// RevenueImpact compares revenue at the current and optimized price,
// both taken over the same forecast demand. PercentageIncrease is nil
// when current revenue is zero and the ratio is undefined.
type RevenueImpact struct {
	CurrentRevenue     float64  `json:"current_revenue"`
	OptimizedRevenue   float64  `json:"optimized_revenue"`
	RevenueIncrease    float64  `json:"revenue_increase"`
	PercentageIncrease *float64 `json:"percentage_increase"`
}

// PricingRecommendation classifies the gap between current and
// optimized price into an actionable band.
type PricingRecommendation struct {
	CurrentPrice     float64  `json:"current_price"`
	OptimizedPrice   float64  `json:"optimized_price"`
	Difference       float64  `json:"difference"`
	PercentageChange float64  `json:"percentage_change"`
	Recommendation   string   `json:"recommendation"`
	Priority         Priority `json:"priority"`
}

// PricingDetail bundles everything the pricing endpoints return for a
// single product.
type PricingDetail struct {
	Product        Product               `json:"product"`
	DemandForecast int                   `json:"demand_forecast"`
	Recommendation PricingRecommendation `json:"recommendation"`
	Impact         RevenueImpact         `json:"revenue_impact"`
}

// ProductPricing is one row of a batch optimization summary.
type ProductPricing struct {
	Product        Product       `json:"product"`
	OptimizedPrice float64       `json:"optimized_price"`
	Impact         RevenueImpact `json:"revenue_impact"`
	PriceChangePct float64       `json:"price_change_pct"`
}

// SummaryTotals aggregates a batch of product pricings.
type SummaryTotals struct {
	TotalCurrentRevenue     float64 `json:"total_current_revenue"`
	TotalOptimizedRevenue   float64 `json:"total_optimized_revenue"`
	TotalRevenueIncrease    float64 `json:"total_revenue_increase"`
	TotalPercentageIncrease float64 `json:"total_percentage_increase"`
	AveragePriceIncrease    float64 `json:"average_price_increase"`
}

// OptimizationSummary is the full batch result.
type OptimizationSummary struct {
	Products []ProductPricing `json:"products"`
	Totals   SummaryTotals    `json:"totals"`
}
