package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/shopmetrics/pricecast/internal/domain"
	"github.com/shopmetrics/pricecast/internal/engine"
	"github.com/shopmetrics/pricecast/internal/repository"
	"github.com/shopmetrics/pricecast/internal/storage"
)

type fakeRepo struct {
	products []domain.Product
}

func (f *fakeRepo) List(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, int, error) {
	return f.products, len(f.products), nil
}

func (f *fakeRepo) ListActive(ctx context.Context) ([]domain.Product, error) {
	return f.products, nil
}

func (f *fakeRepo) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Product, error) {
	wanted := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	matched := []domain.Product{}
	for _, p := range f.products {
		if wanted[p.ID] {
			matched = append(matched, p)
		}
	}
	return matched, nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	for _, p := range f.products {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeRepo) Create(ctx context.Context, input domain.ProductInput) (*domain.Product, error) {
	product := domain.Product{
		ID:             uuid.New(),
		ProductID:      int64(len(f.products) + 1),
		Name:           input.Name,
		Description:    input.Description,
		Category:       input.Category,
		CostPrice:      input.CostPrice,
		SellingPrice:   input.SellingPrice,
		StockAvailable: input.StockAvailable,
		UnitsSold:      input.UnitsSold,
		IsActive:       true,
	}
	f.products = append(f.products, product)
	return &product, nil
}

func (f *fakeRepo) Update(ctx context.Context, id uuid.UUID, update domain.ProductUpdate) (*domain.Product, error) {
	for i := range f.products {
		if f.products[i].ID == id {
			if update.SellingPrice != nil {
				f.products[i].SellingPrice = *update.SellingPrice
			}
			return &f.products[i], nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	for i, p := range f.products {
		if p.ID == id {
			f.products = append(f.products[:i], f.products[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeRepo) Categories(ctx context.Context) ([]string, error) {
	seen := map[string]bool{}
	categories := []string{}
	for _, p := range f.products {
		if !seen[p.Category] {
			seen[p.Category] = true
			categories = append(categories, p.Category)
		}
	}
	return categories, nil
}

func (f *fakeRepo) BulkUpdatePrices(ctx context.Context, updates []domain.PriceUpdate) ([]domain.Product, error) {
	updated := []domain.Product{}
	for _, u := range updates {
		for i := range f.products {
			if f.products[i].ID == u.ID {
				if u.SellingPrice != nil {
					f.products[i].SellingPrice = *u.SellingPrice
				}
				if u.CostPrice != nil {
					f.products[i].CostPrice = *u.CostPrice
				}
				updated = append(updated, f.products[i])
			}
		}
	}
	return updated, nil
}

type fakeStorage struct {
	uploads map[string][]byte
}

func (f *fakeStorage) ListObjects(ctx context.Context, prefix string) ([]storage.ObjectInfo, error) {
	objects := []storage.ObjectInfo{}
	for key, data := range f.uploads {
		objects = append(objects, storage.ObjectInfo{Key: key, Size: int64(len(data))})
	}
	return objects, nil
}

func (f *fakeStorage) UploadObject(ctx context.Context, key string, contentType string, data []byte) error {
	if f.uploads == nil {
		f.uploads = map[string][]byte{}
	}
	f.uploads[key] = data
	return nil
}

func testProducts() []domain.Product {
	return []domain.Product{
		{
			ID:             uuid.MustParse("11111111-1111-1111-1111-111111111111"),
			Category:       "Stationary",
			CostPrice:      1.2,
			SellingPrice:   2.7,
			StockAvailable: 121213,
			UnitsSold:      131244,
			IsActive:       true,
		},
		{
			ID:             uuid.MustParse("22222222-2222-2222-2222-222222222222"),
			Category:       "Electronics",
			CostPrice:      10,
			SellingPrice:   25,
			StockAvailable: 600,
			UnitsSold:      250,
			IsActive:       true,
		},
	}
}

func TestPricingServiceSummaryWholeCatalog(t *testing.T) {
	repo := &fakeRepo{products: testProducts()}
	svc := NewPricingService(repo, nil, nil, 4)

	summary, err := svc.Summary(context.Background(), nil)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if len(summary.Products) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(summary.Products))
	}

	// Concurrent fan-out must preserve input order and match the
	// sequential engine result.
	want := engine.NewSummaryService().Summarize(repo.products)
	for i, row := range summary.Products {
		if row.Product.ID != repo.products[i].ID {
			t.Errorf("row %d: product order changed", i)
		}
		if row.OptimizedPrice != want.Products[i].OptimizedPrice {
			t.Errorf("row %d: optimized price %v, want %v", i, row.OptimizedPrice, want.Products[i].OptimizedPrice)
		}
	}
	if summary.Totals.AveragePriceIncrease != want.Totals.AveragePriceIncrease {
		t.Errorf("AveragePriceIncrease = %v, want %v", summary.Totals.AveragePriceIncrease, want.Totals.AveragePriceIncrease)
	}
}

func TestPricingServiceSummarySubset(t *testing.T) {
	products := testProducts()
	repo := &fakeRepo{products: products}
	svc := NewPricingService(repo, nil, nil, 0)

	summary, err := svc.Summary(context.Background(), []uuid.UUID{products[0].ID})
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if len(summary.Products) != 1 {
		t.Fatalf("expected 1 row, got %d", len(summary.Products))
	}
	if summary.Products[0].OptimizedPrice != 3.03 {
		t.Errorf("OptimizedPrice = %v, want 3.03", summary.Products[0].OptimizedPrice)
	}
}

func TestPricingServiceSummaryEmptyCatalog(t *testing.T) {
	svc := NewPricingService(&fakeRepo{}, nil, nil, 0)

	summary, err := svc.Summary(context.Background(), nil)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if len(summary.Products) != 0 {
		t.Errorf("expected empty rows, got %d", len(summary.Products))
	}
	if summary.Totals != (domain.SummaryTotals{}) {
		t.Errorf("Totals = %+v, want zero values", summary.Totals)
	}
}

func TestPricingServiceDetail(t *testing.T) {
	products := testProducts()
	svc := NewPricingService(&fakeRepo{products: products}, nil, nil, 0)

	detail, err := svc.Detail(context.Background(), products[0].ID)
	if err != nil {
		t.Fatalf("Detail: %v", err)
	}
	if detail.DemandForecast != 1814 {
		t.Errorf("DemandForecast = %d, want 1814", detail.DemandForecast)
	}
	if detail.Recommendation.OptimizedPrice != 3.03 {
		t.Errorf("OptimizedPrice = %v, want 3.03", detail.Recommendation.OptimizedPrice)
	}

	if _, err := svc.Detail(context.Background(), uuid.New()); err != repository.ErrNotFound {
		t.Errorf("Detail(unknown) error = %v, want ErrNotFound", err)
	}
}

func TestPricingServiceExportSummary(t *testing.T) {
	store := &fakeStorage{}
	svc := NewPricingService(&fakeRepo{products: testProducts()}, nil, store, 0)

	key, err := svc.ExportSummary(context.Background(), nil)
	if err != nil {
		t.Fatalf("ExportSummary: %v", err)
	}

	payload, ok := store.uploads[key]
	if !ok {
		t.Fatalf("no upload recorded under %q", key)
	}

	var summary domain.OptimizationSummary
	if err := json.Unmarshal(payload, &summary); err != nil {
		t.Fatalf("exported report is not valid JSON: %v", err)
	}
	if len(summary.Products) != 2 {
		t.Errorf("exported report has %d rows, want 2", len(summary.Products))
	}
}

func TestPricingServiceExportDisabled(t *testing.T) {
	svc := NewPricingService(&fakeRepo{}, nil, nil, 0)
	if _, err := svc.ExportSummary(context.Background(), nil); err != ErrReportsDisabled {
		t.Errorf("error = %v, want ErrReportsDisabled", err)
	}
}
