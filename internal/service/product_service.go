package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopmetrics/pricecast/internal/cache"
	"github.com/shopmetrics/pricecast/internal/domain"
	"github.com/shopmetrics/pricecast/internal/repository"
)

// ProductService wraps catalog CRUD and keeps the pricing-summary
// cache coherent with writes.
type ProductService struct {
	repo  repository.ProductRepository
	cache cache.SummaryCache
}

func NewProductService(repo repository.ProductRepository, cacheImpl cache.SummaryCache) *ProductService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopSummaryCache()
	}
	return &ProductService{repo: repo, cache: cacheImpl}
}

func (s *ProductService) List(ctx context.Context, filter domain.ProductFilter) (*domain.ProductPage, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 50
	}

	products, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &domain.ProductPage{
		Products: products,
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}, nil
}

func (s *ProductService) Get(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *ProductService) Create(ctx context.Context, input domain.ProductInput) (*domain.Product, error) {
	product, err := s.repo.Create(ctx, input)
	if err != nil {
		return nil, err
	}

	s.invalidateSummaries(ctx)
	return product, nil
}

func (s *ProductService) Update(ctx context.Context, id uuid.UUID, update domain.ProductUpdate) (*domain.Product, error) {
	product, err := s.repo.Update(ctx, id, update)
	if err != nil {
		return nil, err
	}

	s.invalidateSummaries(ctx)
	return product, nil
}

func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return err
	}

	s.invalidateSummaries(ctx)
	return nil
}

func (s *ProductService) Categories(ctx context.Context) ([]string, error) {
	return s.repo.Categories(ctx)
}

func (s *ProductService) BulkUpdatePrices(ctx context.Context, updates []domain.PriceUpdate) ([]domain.Product, error) {
	updated, err := s.repo.BulkUpdatePrices(ctx, updates)
	if err != nil {
		return nil, err
	}

	s.invalidateSummaries(ctx)
	return updated, nil
}

// Cached summaries are priced from catalog state; any write may make
// them stale. Invalidation failures are logged, not surfaced.
func (s *ProductService) invalidateSummaries(ctx context.Context) {
	if err := s.cache.InvalidateAll(ctx); err != nil {
		log.Warn().Err(err).Msg("products: summary cache invalidation failed")
	}
}
