package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopmetrics/pricecast/internal/repository"
)

func TestForecastServiceForecast(t *testing.T) {
	products := testProducts()
	svc := NewForecastService(&fakeRepo{products: products}, 0)

	forecast, err := svc.Forecast(context.Background(), products[0].ID)
	if err != nil {
		t.Fatalf("Forecast: %v", err)
	}
	if forecast.DemandForecast != 1814 {
		t.Errorf("DemandForecast = %d, want 1814", forecast.DemandForecast)
	}

	if _, err := svc.Forecast(context.Background(), uuid.New()); err != repository.ErrNotFound {
		t.Errorf("Forecast(unknown) error = %v, want ErrNotFound", err)
	}
}

func TestForecastServiceProjectionSeeded(t *testing.T) {
	products := testProducts()
	svc := NewForecastService(&fakeRepo{products: products}, 3)

	seed := int64(42)
	first, err := svc.Projection(context.Background(), products[0].ID, 0, &seed)
	if err != nil {
		t.Fatalf("Projection: %v", err)
	}
	if len(first.Projections) != 3 {
		t.Fatalf("expected the configured 3-year horizon, got %d years", len(first.Projections))
	}

	second, err := svc.Projection(context.Background(), products[0].ID, 0, &seed)
	if err != nil {
		t.Fatalf("Projection: %v", err)
	}
	for i := range first.Projections {
		if first.Projections[i] != second.Projections[i] {
			t.Errorf("year %d: seeded projections differ: %+v vs %+v", i, first.Projections[i], second.Projections[i])
		}
	}
}

func TestForecastServiceProjectionExplicitYears(t *testing.T) {
	products := testProducts()
	svc := NewForecastService(&fakeRepo{products: products}, 5)

	projection, err := svc.Projection(context.Background(), products[1].ID, 2, nil)
	if err != nil {
		t.Fatalf("Projection: %v", err)
	}
	if len(projection.Projections) != 2 {
		t.Errorf("expected 2 years, got %d", len(projection.Projections))
	}
}
