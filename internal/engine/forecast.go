package engine

import (
	"math"
	"math/rand"
	"time"

	"github.com/shopmetrics/pricecast/internal/domain"
)

const (
	// baselineTraffic is the base market traffic every forecast starts from.
	baselineTraffic = 1000

	// minForecastUnits floors the single-period forecast.
	minForecastUnits = 100

	// minProjectedUnits floors each year of a multi-year projection.
	minProjectedUnits = 50

	// annualInflation drives projected selling prices.
	annualInflation = 0.03

	// DefaultHorizon is the number of years projected when the caller
	// does not ask for a specific horizon.
	DefaultHorizon = 5
)

// ForecastModel estimates unit demand for a product from heuristic
// category tables and product attributes. It holds no state; the zero
// value is ready to use and safe for concurrent callers.
type ForecastModel struct{}

func NewForecastModel() ForecastModel {
	return ForecastModel{}
}

// Forecast returns the projected unit demand for the current period.
// The result is never below minForecastUnits.
func (ForecastModel) Forecast(p domain.Product) int {
	demand := baselineTraffic *
		profileFor(p.Category).DemandMultiplier *
		priceImpact(p.SellingPrice, p.CostPrice) *
		stockInfluence(p.StockAvailable) *
		salesMomentum(p.UnitsSold)

	units := int(math.Round(demand))
	if units < minForecastUnits {
		return minForecastUnits
	}
	return units
}

// Project simulates demand over the next horizon years, starting from
// the current calendar year. Each year draws a fresh market-trend
// jitter from the process-wide random source, so repeated calls with
// the same product are not bit-identical.
func (m ForecastModel) Project(p domain.Product, horizon int) []domain.YearlyProjection {
	return m.ProjectWithSource(p, horizon, nil)
}

// ProjectWithSource is Project with an explicit random source. Passing
// a seeded source makes the projection reproducible; nil falls back to
// the process-wide source.
func (m ForecastModel) ProjectWithSource(p domain.Product, horizon int, src *rand.Rand) []domain.YearlyProjection {
	if horizon <= 0 {
		horizon = DefaultHorizon
	}

	currentYear := time.Now().Year()
	currentDemand := float64(m.Forecast(p))
	curve := profileFor(p.Category).GrowthCurve

	projections := make([]domain.YearlyProjection, 0, horizon)
	for i := 0; i < horizon; i++ {
		demand := int(math.Round(currentDemand * growthRate(curve, i) * marketTrend(i, src)))
		if demand < minProjectedUnits {
			demand = minProjectedUnits
		}

		projections = append(projections, domain.YearlyProjection{
			Year:         currentYear + i,
			Demand:       demand,
			SellingPrice: projectPrice(p.SellingPrice, i),
		})
	}

	return projections
}

// priceImpact maps margin to a demand factor: higher margins dampen
// demand. A zero cost price makes the margin ratio undefined and is
// treated as the highest-margin tier.
func priceImpact(sellingPrice, costPrice float64) float64 {
	margin := safeRatio(sellingPrice-costPrice, costPrice, math.Inf(1))

	switch {
	case margin < 0.5:
		return 1.3
	case margin < 1.0:
		return 1.1
	case margin < 2.0:
		return 0.9
	default:
		return 0.7
	}
}

// stockInfluence rewards deep stock: availability signals fulfilment
// capacity, scarcity suppresses demand.
func stockInfluence(stockAvailable int) float64 {
	switch {
	case stockAvailable > 1000:
		return 1.2
	case stockAvailable > 500:
		return 1.1
	case stockAvailable > 100:
		return 1.0
	case stockAvailable > 50:
		return 0.9
	default:
		return 0.7
	}
}

// salesMomentum scales demand by historical sales volume.
func salesMomentum(unitsSold int) float64 {
	switch {
	case unitsSold > 10000:
		return 1.4
	case unitsSold > 1000:
		return 1.2
	case unitsSold > 500:
		return 1.1
	case unitsSold > 100:
		return 1.0
	default:
		return 0.8
	}
}

// growthRate reads the category growth curve, clamping past the end.
func growthRate(curve [5]float64, yearIndex int) float64 {
	if yearIndex >= len(curve) {
		yearIndex = len(curve) - 1
	}
	return curve[yearIndex]
}

// marketTrend simulates market noise: a uniform jitter in [0.9, 1.1)
// on top of a slight upward year trend.
func marketTrend(yearIndex int, src *rand.Rand) float64 {
	jitter := rand.Float64()
	if src != nil {
		jitter = src.Float64()
	}
	return (0.9 + jitter*0.2) * (1 + float64(yearIndex)*0.02)
}

// projectPrice applies annual inflation to the selling price.
func projectPrice(sellingPrice float64, yearIndex int) float64 {
	return roundFloat(sellingPrice*math.Pow(1+annualInflation, float64(yearIndex)), 2)
}
