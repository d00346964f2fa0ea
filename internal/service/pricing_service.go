package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopmetrics/pricecast/internal/cache"
	"github.com/shopmetrics/pricecast/internal/domain"
	"github.com/shopmetrics/pricecast/internal/engine"
	"github.com/shopmetrics/pricecast/internal/repository"
	"github.com/shopmetrics/pricecast/internal/storage"
	"golang.org/x/sync/errgroup"
)

const (
	defaultSummaryWorkers = 8
	reportKeyPrefix       = "reports/pricing_summary/"
)

// ErrReportsDisabled is returned when an export is requested without a
// configured report archive.
var ErrReportsDisabled = fmt.Errorf("report storage is not configured")

// PricingService resolves products from the store and runs the price
// optimization model over them, caching batch summaries.
type PricingService struct {
	repo    repository.ProductRepository
	cache   cache.SummaryCache
	reports storage.ObjectStorage
	pricing engine.PricingModel
	summary engine.SummaryService
	workers int
}

func NewPricingService(repo repository.ProductRepository, cacheImpl cache.SummaryCache, reports storage.ObjectStorage, workers int) *PricingService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopSummaryCache()
	}
	if workers <= 0 {
		workers = defaultSummaryWorkers
	}
	return &PricingService{
		repo:    repo,
		cache:   cacheImpl,
		reports: reports,
		pricing: engine.NewPricingModel(),
		summary: engine.NewSummaryService(),
		workers: workers,
	}
}

// Detail returns the full pricing bundle for one product.
func (s *PricingService) Detail(ctx context.Context, id uuid.UUID) (*domain.PricingDetail, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return &domain.PricingDetail{
		Product:        *product,
		DemandForecast: engine.NewForecastModel().Forecast(*product),
		Recommendation: s.pricing.Recommend(*product),
		Impact:         s.pricing.RevenueImpact(*product),
	}, nil
}

// Summary prices a batch of products. An empty id list means the whole
// active catalog. Per-product pricing has no cross-product dependency,
// so rows are computed concurrently.
func (s *PricingService) Summary(ctx context.Context, ids []uuid.UUID) (*domain.OptimizationSummary, error) {
	key := cache.SummaryKey(ids)
	if summary, ok, err := s.cache.GetSummary(ctx, key); err == nil && ok {
		return summary, nil
	} else if err != nil {
		log.Warn().Err(err).Msg("pricing: cache get summary failed")
	}

	products, err := s.loadProducts(ctx, ids)
	if err != nil {
		return nil, err
	}

	rows := make([]domain.ProductPricing, len(products))
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, p := range products {
		g.Go(func() error {
			rows[i] = s.summary.Price(p)
			return nil
		})
	}
	// Workers only compute; no error path.
	_ = g.Wait()

	summary := s.summary.Collect(rows)

	if err := s.cache.SetSummary(ctx, key, &summary); err != nil {
		log.Warn().Err(err).Msg("pricing: cache set summary failed")
	}

	return &summary, nil
}

// ExportSummary prices the batch and archives the result as a JSON
// report, returning the object key.
func (s *PricingService) ExportSummary(ctx context.Context, ids []uuid.UUID) (string, error) {
	if s.reports == nil {
		return "", ErrReportsDisabled
	}

	summary, err := s.Summary(ctx, ids)
	if err != nil {
		return "", err
	}

	payload, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode summary report: %w", err)
	}

	key := fmt.Sprintf("%s%s.json", reportKeyPrefix, time.Now().UTC().Format("20060102T150405Z"))
	if err := s.reports.UploadObject(ctx, key, "application/json", payload); err != nil {
		return "", err
	}

	log.Info().Str("key", key).Int("products", len(summary.Products)).Msg("pricing summary exported")
	return key, nil
}

// ListExports lists previously archived summary reports.
func (s *PricingService) ListExports(ctx context.Context) ([]storage.ObjectInfo, error) {
	if s.reports == nil {
		return nil, ErrReportsDisabled
	}
	return s.reports.ListObjects(ctx, reportKeyPrefix)
}

func (s *PricingService) loadProducts(ctx context.Context, ids []uuid.UUID) ([]domain.Product, error) {
	if len(ids) == 0 {
		return s.repo.ListActive(ctx)
	}
	return s.repo.ListByIDs(ctx, ids)
}
