package engine

import (
	"math"

	"github.com/shopmetrics/pricecast/internal/domain"
)

// minMarginMultiplier floors the optimized price at cost plus 20%.
const minMarginMultiplier = 1.2

// PricingModel computes a recommended selling price from competitive,
// market, inventory, profitability and elasticity adjustments. Like
// ForecastModel it is stateless and safe for concurrent use.
type PricingModel struct {
	forecast ForecastModel
}

func NewPricingModel() PricingModel {
	return PricingModel{forecast: NewForecastModel()}
}

// Optimize returns the recommended selling price, rounded to two
// decimals and never below cost price times minMarginMultiplier.
func (m PricingModel) Optimize(p domain.Product) float64 {
	profile := profileFor(p.Category)
	demandForecast := m.forecast.Forecast(p)

	price := p.SellingPrice *
		profile.CompetitiveAdjustment *
		profile.MarketCondition *
		inventoryPressure(p.StockAvailable, p.UnitsSold) *
		profitabilityTarget(p.CostPrice, p.SellingPrice) *
		elasticityAdjustment(profile.DemandElasticity, demandForecast)

	if minimum := p.CostPrice * minMarginMultiplier; price < minimum {
		price = minimum
	}

	return roundFloat(price, 2)
}

// RevenueImpact compares revenue at the current and optimized price
// over the same forecast demand. PercentageIncrease is left nil when
// current revenue is zero.
func (m PricingModel) RevenueImpact(p domain.Product) domain.RevenueImpact {
	demand := float64(m.forecast.Forecast(p))
	currentRevenue := p.SellingPrice * demand
	optimizedRevenue := m.Optimize(p) * demand

	impact := domain.RevenueImpact{
		CurrentRevenue:   currentRevenue,
		OptimizedRevenue: optimizedRevenue,
		RevenueIncrease:  optimizedRevenue - currentRevenue,
	}
	if currentRevenue != 0 {
		pct := roundFloat((optimizedRevenue/currentRevenue-1)*100, 2)
		impact.PercentageIncrease = &pct
	}

	return impact
}

// Recommend classifies the price change into an actionable band.
func (m PricingModel) Recommend(p domain.Product) domain.PricingRecommendation {
	optimizedPrice := m.Optimize(p)
	change := (safeRatio(optimizedPrice, p.SellingPrice, 1) - 1) * 100

	var (
		recommendation string
		priority       domain.Priority
	)
	switch {
	case math.Abs(change) < 2:
		recommendation = "Current pricing is optimal. Consider minor adjustments based on market conditions."
		priority = domain.PriorityLow
	case change > 10:
		recommendation = "Significant price increase recommended. Monitor demand response carefully."
		priority = domain.PriorityHigh
	case change > 5:
		recommendation = "Moderate price increase recommended. Good opportunity for margin improvement."
		priority = domain.PriorityHigh
	case change > 2:
		recommendation = "Small price increase recommended. Low risk, moderate gain."
		priority = domain.PriorityMedium
	case change < -5:
		recommendation = "Consider price reduction to stimulate demand and compete effectively."
		priority = domain.PriorityHigh
	default:
		recommendation = "Minor price adjustment recommended."
		priority = domain.PriorityLow
	}

	return domain.PricingRecommendation{
		CurrentPrice:     p.SellingPrice,
		OptimizedPrice:   optimizedPrice,
		Difference:       roundFloat(optimizedPrice-p.SellingPrice, 2),
		PercentageChange: roundFloat(change, 2),
		Recommendation:   recommendation,
		Priority:         priority,
	}
}

// inventoryPressure adjusts price by inventory velocity: fast-moving
// stock supports a higher price, overstock pushes it down. Zero sales
// with stock on hand is read as an overstock signal.
func inventoryPressure(stockAvailable, unitsSold int) float64 {
	if unitsSold == 0 {
		return 0.9
	}

	turnover := float64(stockAvailable) / float64(unitsSold)
	switch {
	case turnover > 10:
		return 0.9
	case turnover > 5:
		return 0.95
	case turnover > 2:
		return 1.0
	case turnover > 1:
		return 1.05
	default:
		return 1.1
	}
}

// profitabilityTarget pushes thin margins up and trims excessive ones.
// A zero cost price is treated as the lowest-margin tier.
func profitabilityTarget(costPrice, sellingPrice float64) float64 {
	margin := safeRatio(sellingPrice-costPrice, costPrice, math.Inf(-1))

	switch {
	case margin < 0.3:
		return 1.15
	case margin < 0.5:
		return 1.08
	case margin < 1.0:
		return 1.02
	case margin < 2.0:
		return 1.0
	default:
		return 0.95
	}
}

// elasticityAdjustment grants a price-increase allowance proportional
// to forecast demand, scaled back for more elastic categories.
func elasticityAdjustment(elasticity float64, demandForecast int) float64 {
	demandFactor := math.Min(float64(demandForecast)/1000, 2.0)

	switch magnitude := math.Abs(elasticity); {
	case magnitude > 1.4:
		return 0.98 + demandFactor*0.02
	case magnitude > 1.0:
		return 0.97 + demandFactor*0.05
	default:
		return 0.95 + demandFactor*0.08
	}
}
