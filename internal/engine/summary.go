package engine

import "github.com/shopmetrics/pricecast/internal/domain"

// SummaryService aggregates per-product pricing into batch totals.
// Stateless like the models it composes.
type SummaryService struct {
	pricing PricingModel
}

func NewSummaryService() SummaryService {
	return SummaryService{pricing: NewPricingModel()}
}

// Price computes one summary row. Rows are independent, so callers may
// fan Price out across a batch and Collect the results afterwards.
func (s SummaryService) Price(p domain.Product) domain.ProductPricing {
	optimizedPrice := s.pricing.Optimize(p)
	change := (safeRatio(optimizedPrice, p.SellingPrice, 1) - 1) * 100

	return domain.ProductPricing{
		Product:        p,
		OptimizedPrice: optimizedPrice,
		Impact:         s.pricing.RevenueImpact(p),
		PriceChangePct: roundFloat(change, 2),
	}
}

// Collect folds summary rows into totals. An empty batch yields zero
// totals rather than an error.
func (s SummaryService) Collect(rows []domain.ProductPricing) domain.OptimizationSummary {
	summary := domain.OptimizationSummary{Products: rows}
	if summary.Products == nil {
		summary.Products = []domain.ProductPricing{}
	}
	if len(rows) == 0 {
		return summary
	}

	var totalChange float64
	for _, row := range rows {
		summary.Totals.TotalCurrentRevenue += row.Impact.CurrentRevenue
		summary.Totals.TotalOptimizedRevenue += row.Impact.OptimizedRevenue
		totalChange += row.PriceChangePct
	}

	totals := &summary.Totals
	totals.TotalRevenueIncrease = totals.TotalOptimizedRevenue - totals.TotalCurrentRevenue
	if totals.TotalCurrentRevenue != 0 {
		totals.TotalPercentageIncrease = roundFloat((totals.TotalOptimizedRevenue/totals.TotalCurrentRevenue-1)*100, 2)
	}
	totals.AveragePriceIncrease = roundFloat(totalChange/float64(len(rows)), 2)

	return summary
}

// Summarize prices a whole batch sequentially.
func (s SummaryService) Summarize(products []domain.Product) domain.OptimizationSummary {
	rows := make([]domain.ProductPricing, 0, len(products))
	for _, p := range products {
		rows = append(rows, s.Price(p))
	}
	return s.Collect(rows)
}
