package service

import (
	"context"
	"math/rand"

	"github.com/google/uuid"
	"github.com/shopmetrics/pricecast/internal/domain"
	"github.com/shopmetrics/pricecast/internal/engine"
	"github.com/shopmetrics/pricecast/internal/repository"
)

// DemandForecast is the single-period forecast for one product.
type DemandForecast struct {
	Product        domain.Product `json:"product"`
	DemandForecast int            `json:"demand_forecast"`
}

// DemandProjection is the multi-year projection for one product.
type DemandProjection struct {
	Product     domain.Product            `json:"product"`
	Projections []domain.YearlyProjection `json:"projections"`
}

// ForecastService resolves products from the store and runs the
// demand forecast model over them.
type ForecastService struct {
	repo           repository.ProductRepository
	model          engine.ForecastModel
	defaultHorizon int
}

func NewForecastService(repo repository.ProductRepository, defaultHorizon int) *ForecastService {
	if defaultHorizon <= 0 {
		defaultHorizon = engine.DefaultHorizon
	}
	return &ForecastService{
		repo:           repo,
		model:          engine.NewForecastModel(),
		defaultHorizon: defaultHorizon,
	}
}

func (s *ForecastService) Forecast(ctx context.Context, id uuid.UUID) (*DemandForecast, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return &DemandForecast{
		Product:        *product,
		DemandForecast: s.model.Forecast(*product),
	}, nil
}

// Projection simulates demand over the requested horizon. A non-nil
// seed makes the market-trend jitter reproducible, which the
// presentation layer uses to keep charts stable across reloads.
func (s *ForecastService) Projection(ctx context.Context, id uuid.UUID, years int, seed *int64) (*DemandProjection, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if years <= 0 {
		years = s.defaultHorizon
	}

	var src *rand.Rand
	if seed != nil {
		src = rand.New(rand.NewSource(*seed))
	}

	return &DemandProjection{
		Product:     *product,
		Projections: s.model.ProjectWithSource(*product, years, src),
	}, nil
}
