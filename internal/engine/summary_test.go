package engine

import (
	"testing"

	"github.com/shopmetrics/pricecast/internal/domain"
)

func TestSummarizeEmpty(t *testing.T) {
	summary := NewSummaryService().Summarize(nil)

	if summary.Products == nil || len(summary.Products) != 0 {
		t.Errorf("Products = %v, want empty slice", summary.Products)
	}
	if summary.Totals != (domain.SummaryTotals{}) {
		t.Errorf("Totals = %+v, want zero values", summary.Totals)
	}
}

func TestSummarizeTotals(t *testing.T) {
	products := []domain.Product{
		stationaryProduct(),
		{
			Category:       "Electronics",
			CostPrice:      10,
			SellingPrice:   25,
			StockAvailable: 600,
			UnitsSold:      250,
		},
	}

	svc := NewSummaryService()
	summary := svc.Summarize(products)

	if len(summary.Products) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(summary.Products))
	}

	var wantCurrent, wantOptimized, wantChange float64
	for i, row := range summary.Products {
		want := svc.Price(products[i])
		if row.OptimizedPrice != want.OptimizedPrice || row.PriceChangePct != want.PriceChangePct {
			t.Errorf("row %d: %+v != independently priced %+v", i, row, want)
		}
		if !almostEqual(row.Impact.CurrentRevenue, want.Impact.CurrentRevenue) ||
			!almostEqual(row.Impact.OptimizedRevenue, want.Impact.OptimizedRevenue) {
			t.Errorf("row %d: impact %+v != independently priced %+v", i, row.Impact, want.Impact)
		}
		wantCurrent += row.Impact.CurrentRevenue
		wantOptimized += row.Impact.OptimizedRevenue
		wantChange += row.PriceChangePct
	}

	totals := summary.Totals
	if !almostEqual(totals.TotalCurrentRevenue, wantCurrent) {
		t.Errorf("TotalCurrentRevenue = %v, want %v", totals.TotalCurrentRevenue, wantCurrent)
	}
	if !almostEqual(totals.TotalOptimizedRevenue, wantOptimized) {
		t.Errorf("TotalOptimizedRevenue = %v, want %v", totals.TotalOptimizedRevenue, wantOptimized)
	}
	if !almostEqual(totals.TotalRevenueIncrease, wantOptimized-wantCurrent) {
		t.Errorf("TotalRevenueIncrease = %v, want %v", totals.TotalRevenueIncrease, wantOptimized-wantCurrent)
	}
	if want := roundFloat((wantOptimized/wantCurrent-1)*100, 2); totals.TotalPercentageIncrease != want {
		t.Errorf("TotalPercentageIncrease = %v, want %v", totals.TotalPercentageIncrease, want)
	}
	if want := roundFloat(wantChange/2, 2); totals.AveragePriceIncrease != want {
		t.Errorf("AveragePriceIncrease = %v, want %v", totals.AveragePriceIncrease, want)
	}
}

func TestSummarizeZeroRevenueRow(t *testing.T) {
	// A zero-priced product contributes nothing to totals but must not
	// derail the batch.
	products := []domain.Product{
		{Category: "Stationary"},
		stationaryProduct(),
	}

	summary := NewSummaryService().Summarize(products)
	if len(summary.Products) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(summary.Products))
	}
	if summary.Products[0].Impact.PercentageIncrease != nil {
		t.Error("zero-revenue row should carry a nil percentage increase")
	}
	if summary.Totals.TotalCurrentRevenue == 0 {
		t.Error("totals should include the healthy row")
	}
}
