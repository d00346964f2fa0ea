package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopmetrics/pricecast/internal/domain"
)

// ErrNotFound is returned when a product does not exist or is inactive.
var ErrNotFound = errors.New("product not found")

type ProductRepository interface {
	List(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, int, error)
	ListActive(ctx context.Context) ([]domain.Product, error)
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Product, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	Create(ctx context.Context, input domain.ProductInput) (*domain.Product, error)
	Update(ctx context.Context, id uuid.UUID, update domain.ProductUpdate) (*domain.Product, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error
	Categories(ctx context.Context) ([]string, error)
	BulkUpdatePrices(ctx context.Context, updates []domain.PriceUpdate) ([]domain.Product, error)
}
