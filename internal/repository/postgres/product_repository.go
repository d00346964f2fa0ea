package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/shopmetrics/pricecast/internal/domain"
	"github.com/shopmetrics/pricecast/internal/repository"
)

const productColumns = `id, product_id, name, description, category, cost_price,
	selling_price, stock_available, units_sold, is_active, created_at, updated_at`

type productRepository struct {
	db *DB
}

func NewProductRepository(db *DB) repository.ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) List(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, int, error) {
	where := []string{"is_active = TRUE"}
	args := []interface{}{}

	addArg := func(value interface{}) string {
		args = append(args, value)
		return fmt.Sprintf("$%d", len(args))
	}

	if search := strings.TrimSpace(filter.Search); search != "" {
		placeholder := addArg("%" + search + "%")
		where = append(where, fmt.Sprintf("(name ILIKE %s OR description ILIKE %s)", placeholder, placeholder))
	}
	if filter.Category != "" {
		where = append(where, "category = "+addArg(filter.Category))
	}
	if filter.MinPrice != nil {
		where = append(where, "selling_price >= "+addArg(*filter.MinPrice))
	}
	if filter.MaxPrice != nil {
		where = append(where, "selling_price <= "+addArg(*filter.MaxPrice))
	}

	whereClause := strings.Join(where, " AND ")

	var total int
	countQuery := "SELECT COUNT(*) FROM products WHERE " + whereClause
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = 50
	}

	query := fmt.Sprintf(`
		SELECT %s FROM products
		WHERE %s
		ORDER BY created_at DESC
		LIMIT %s OFFSET %s`,
		productColumns, whereClause, addArg(pageSize), addArg((page-1)*pageSize))

	products := []domain.Product{}
	if err := r.db.SelectContext(ctx, &products, query, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}

	return products, total, nil
}

func (r *productRepository) ListActive(ctx context.Context) ([]domain.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM products WHERE is_active = TRUE ORDER BY created_at DESC`, productColumns)

	products := []domain.Product{}
	if err := r.db.SelectContext(ctx, &products, query); err != nil {
		return nil, fmt.Errorf("failed to list active products: %w", err)
	}
	return products, nil
}

func (r *productRepository) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Product, error) {
	if len(ids) == 0 {
		return []domain.Product{}, nil
	}

	raw := make([]string, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, id.String())
	}

	query := fmt.Sprintf(`SELECT %s FROM products WHERE is_active = TRUE AND id = ANY($1::uuid[])`, productColumns)

	products := []domain.Product{}
	if err := r.db.SelectContext(ctx, &products, query, pq.Array(raw)); err != nil {
		return nil, fmt.Errorf("failed to list products by ids: %w", err)
	}
	return products, nil
}

func (r *productRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM products WHERE id = $1 AND is_active = TRUE`, productColumns)

	var product domain.Product
	if err := r.db.GetContext(ctx, &product, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return &product, nil
}

func (r *productRepository) Create(ctx context.Context, input domain.ProductInput) (*domain.Product, error) {
	var product domain.Product

	err := r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		// product_id is a human-friendly sequential id alongside the
		// uuid primary key; allocate it inside the transaction.
		var maxProductID sql.NullInt64
		if err := tx.GetContext(ctx, &maxProductID, `SELECT MAX(product_id) FROM products`); err != nil {
			return fmt.Errorf("failed to allocate product_id: %w", err)
		}

		query := fmt.Sprintf(`
			INSERT INTO products (
				id, product_id, name, description, category, cost_price,
				selling_price, stock_available, units_sold, is_active
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, TRUE)
			RETURNING %s`, productColumns)

		return tx.GetContext(ctx, &product, query,
			uuid.New(),
			maxProductID.Int64+1,
			input.Name,
			input.Description,
			input.Category,
			input.CostPrice,
			input.SellingPrice,
			input.StockAvailable,
			input.UnitsSold,
		)
	})
	if err != nil {
		return nil, err
	}

	return &product, nil
}

func (r *productRepository) Update(ctx context.Context, id uuid.UUID, update domain.ProductUpdate) (*domain.Product, error) {
	set := []string{"updated_at = NOW()"}
	args := []interface{}{}

	addArg := func(column string, value interface{}) {
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if update.Name != nil {
		addArg("name", *update.Name)
	}
	if update.Description != nil {
		addArg("description", *update.Description)
	}
	if update.Category != nil {
		addArg("category", *update.Category)
	}
	if update.CostPrice != nil {
		addArg("cost_price", *update.CostPrice)
	}
	if update.SellingPrice != nil {
		addArg("selling_price", *update.SellingPrice)
	}
	if update.StockAvailable != nil {
		addArg("stock_available", *update.StockAvailable)
	}
	if update.UnitsSold != nil {
		addArg("units_sold", *update.UnitsSold)
	}
	if update.IsActive != nil {
		addArg("is_active", *update.IsActive)
	}

	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE products SET %s
		WHERE id = $%d AND is_active = TRUE
		RETURNING %s`,
		strings.Join(set, ", "), len(args), productColumns)

	var product domain.Product
	if err := r.db.GetContext(ctx, &product, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return &product, nil
}

func (r *productRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE products SET is_active = FALSE, updated_at = NOW() WHERE id = $1 AND is_active = TRUE`, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if affected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *productRepository) Categories(ctx context.Context) ([]string, error) {
	categories := []string{}
	query := `SELECT DISTINCT category FROM products WHERE is_active = TRUE ORDER BY category`
	if err := r.db.SelectContext(ctx, &categories, query); err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

func (r *productRepository) BulkUpdatePrices(ctx context.Context, updates []domain.PriceUpdate) ([]domain.Product, error) {
	if len(updates) == 0 {
		return []domain.Product{}, nil
	}

	updated := make([]domain.Product, 0, len(updates))
	err := r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		for _, u := range updates {
			set := []string{"updated_at = NOW()"}
			args := []interface{}{}

			if u.CostPrice != nil {
				args = append(args, *u.CostPrice)
				set = append(set, fmt.Sprintf("cost_price = $%d", len(args)))
			}
			if u.SellingPrice != nil {
				args = append(args, *u.SellingPrice)
				set = append(set, fmt.Sprintf("selling_price = $%d", len(args)))
			}

			args = append(args, u.ID)
			query := fmt.Sprintf(`
				UPDATE products SET %s
				WHERE id = $%d AND is_active = TRUE
				RETURNING %s`,
				strings.Join(set, ", "), len(args), productColumns)

			var product domain.Product
			if err := tx.GetContext(ctx, &product, query, args...); err != nil {
				if errors.Is(err, sql.ErrNoRows) {
					return fmt.Errorf("product %s: %w", u.ID, repository.ErrNotFound)
				}
				return fmt.Errorf("failed to update price for %s: %w", u.ID, err)
			}
			updated = append(updated, product)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}
