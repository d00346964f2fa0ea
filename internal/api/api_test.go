package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopmetrics/pricecast/internal/domain"
	"github.com/shopmetrics/pricecast/internal/repository"
	"github.com/shopmetrics/pricecast/internal/service"
)

type stubRepo struct {
	products []domain.Product
}

func (s *stubRepo) List(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, int, error) {
	return s.products, len(s.products), nil
}

func (s *stubRepo) ListActive(ctx context.Context) ([]domain.Product, error) {
	return s.products, nil
}

func (s *stubRepo) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Product, error) {
	matched := []domain.Product{}
	for _, id := range ids {
		for _, p := range s.products {
			if p.ID == id {
				matched = append(matched, p)
			}
		}
	}
	return matched, nil
}

func (s *stubRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	for _, p := range s.products {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *stubRepo) Create(ctx context.Context, input domain.ProductInput) (*domain.Product, error) {
	product := domain.Product{
		ID:           uuid.New(),
		ProductID:    int64(len(s.products) + 1),
		Name:         input.Name,
		Category:     input.Category,
		CostPrice:    input.CostPrice,
		SellingPrice: input.SellingPrice,
		IsActive:     true,
	}
	s.products = append(s.products, product)
	return &product, nil
}

func (s *stubRepo) Update(ctx context.Context, id uuid.UUID, update domain.ProductUpdate) (*domain.Product, error) {
	return nil, repository.ErrNotFound
}

func (s *stubRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return repository.ErrNotFound
}

func (s *stubRepo) Categories(ctx context.Context) ([]string, error) {
	return []string{"Stationary"}, nil
}

func (s *stubRepo) BulkUpdatePrices(ctx context.Context, updates []domain.PriceUpdate) ([]domain.Product, error) {
	return []domain.Product{}, nil
}

func newTestRouter(repo repository.ProductRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return NewRouter(&Services{
		ProductService:  service.NewProductService(repo, nil),
		ForecastService: service.NewForecastService(repo, 0),
		PricingService:  service.NewPricingService(repo, nil, nil, 0),
	}, nil)
}

func catalogFixture() []domain.Product {
	return []domain.Product{{
		ID:             uuid.MustParse("11111111-1111-1111-1111-111111111111"),
		ProductID:      1,
		Name:           "Ballpoint pens",
		Category:       "Stationary",
		CostPrice:      1.2,
		SellingPrice:   2.7,
		StockAvailable: 121213,
		UnitsSold:      131244,
		IsActive:       true,
	}}
}

func doRequest(t *testing.T, router *gin.Engine, method, path string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRouterGetProduct(t *testing.T) {
	products := catalogFixture()
	router := newTestRouter(&stubRepo{products: products})

	rec := doRequest(t, router, http.MethodGet, "/api/v1/products/"+products[0].ID.String(), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var got domain.Product
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Name != "Ballpoint pens" {
		t.Errorf("Name = %q", got.Name)
	}
}

func TestRouterGetProductErrors(t *testing.T) {
	router := newTestRouter(&stubRepo{})

	if rec := doRequest(t, router, http.MethodGet, "/api/v1/products/not-a-uuid", nil); rec.Code != http.StatusBadRequest {
		t.Errorf("invalid id status = %d", rec.Code)
	}
	if rec := doRequest(t, router, http.MethodGet, "/api/v1/products/"+uuid.NewString(), nil); rec.Code != http.StatusNotFound {
		t.Errorf("missing product status = %d", rec.Code)
	}
}

func TestRouterForecast(t *testing.T) {
	products := catalogFixture()
	router := newTestRouter(&stubRepo{products: products})

	rec := doRequest(t, router, http.MethodGet, "/api/v1/forecast/products/"+products[0].ID.String(), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var got service.DemandForecast
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.DemandForecast != 1814 {
		t.Errorf("DemandForecast = %d, want 1814", got.DemandForecast)
	}
}

func TestRouterProjectionSeeded(t *testing.T) {
	products := catalogFixture()
	router := newTestRouter(&stubRepo{products: products})
	path := fmt.Sprintf("/api/v1/forecast/products/%s/projection?years=3&seed=42", products[0].ID)

	first := doRequest(t, router, http.MethodGet, path, nil)
	second := doRequest(t, router, http.MethodGet, path, nil)
	if first.Code != http.StatusOK || second.Code != http.StatusOK {
		t.Fatalf("status = %d / %d", first.Code, second.Code)
	}
	if first.Body.String() != second.Body.String() {
		t.Error("seeded projections are not reproducible")
	}

	var got service.DemandProjection
	if err := json.Unmarshal(first.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got.Projections) != 3 {
		t.Errorf("expected 3 years, got %d", len(got.Projections))
	}
}

func TestRouterSummaryEmptyBody(t *testing.T) {
	products := catalogFixture()
	router := newTestRouter(&stubRepo{products: products})

	// No body means the whole active catalog.
	rec := doRequest(t, router, http.MethodPost, "/api/v1/pricing/summary", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var got domain.OptimizationSummary
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got.Products) != 1 {
		t.Fatalf("expected 1 row, got %d", len(got.Products))
	}
	if got.Products[0].OptimizedPrice != 3.03 {
		t.Errorf("OptimizedPrice = %v, want 3.03", got.Products[0].OptimizedPrice)
	}
}

func TestRouterSummaryBadPayload(t *testing.T) {
	router := newTestRouter(&stubRepo{})

	rec := doRequest(t, router, http.MethodPost, "/api/v1/pricing/summary", []byte(`{"product_ids": "nope"}`))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d", rec.Code)
	}
}

func TestRouterExportWithoutReportStorage(t *testing.T) {
	router := newTestRouter(&stubRepo{products: catalogFixture()})

	if rec := doRequest(t, router, http.MethodPost, "/api/v1/pricing/summary/export", nil); rec.Code != http.StatusConflict {
		t.Errorf("export status = %d, want 409", rec.Code)
	}
	if rec := doRequest(t, router, http.MethodGet, "/api/v1/pricing/summary/exports", nil); rec.Code != http.StatusConflict {
		t.Errorf("exports status = %d, want 409", rec.Code)
	}
}
