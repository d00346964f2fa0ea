package domain

import (
	"time"

	"github.com/google/uuid"
)

// Product is a catalog entry. Price and sales fields feed the forecast
// and pricing engine; the engine never mutates a product.
type Product struct {
	ID             uuid.UUID `json:"id" db:"id"`
	ProductID      int64     `json:"product_id" db:"product_id"`
	Name           string    `json:"name" db:"name"`
	Description    string    `json:"description" db:"description"`
	Category       string    `json:"category" db:"category"`
	CostPrice      float64   `json:"cost_price" db:"cost_price"`
	SellingPrice   float64   `json:"selling_price" db:"selling_price"`
	StockAvailable int       `json:"stock_available" db:"stock_available"`
	UnitsSold      int       `json:"units_sold" db:"units_sold"`
	IsActive       bool      `json:"is_active" db:"is_active"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

// ProductInput carries the fields accepted when creating a product.
type ProductInput struct {
	Name           string  `json:"name" binding:"required"`
	Description    string  `json:"description"`
	Category       string  `json:"category" binding:"required"`
	CostPrice      float64 `json:"cost_price" binding:"required,gt=0"`
	SellingPrice   float64 `json:"selling_price" binding:"required,gt=0"`
	StockAvailable int     `json:"stock_available" binding:"gte=0"`
	UnitsSold      int     `json:"units_sold" binding:"gte=0"`
}

// ProductUpdate is a partial update; nil fields are left untouched.
type ProductUpdate struct {
	Name           *string  `json:"name"`
	Description    *string  `json:"description"`
	Category       *string  `json:"category"`
	CostPrice      *float64 `json:"cost_price"`
	SellingPrice   *float64 `json:"selling_price"`
	StockAvailable *int     `json:"stock_available"`
	UnitsSold      *int     `json:"units_sold"`
	IsActive       *bool    `json:"is_active"`
}

// PriceUpdate targets one product in a bulk price update.
type PriceUpdate struct {
	ID           uuid.UUID `json:"id" binding:"required"`
	CostPrice    *float64  `json:"cost_price"`
	SellingPrice *float64  `json:"selling_price"`
}

// ProductFilter represents filters for catalog queries
type ProductFilter struct {
	Search   string   `json:"search"`
	Category string   `json:"category"`
	MinPrice *float64 `json:"min_price"`
	MaxPrice *float64 `json:"max_price"`
	Page     int      `json:"page"`
	PageSize int      `json:"page_size"`
}

// ProductPage is one page of catalog results.
type ProductPage struct {
	Products []Product `json:"products"`
	Total    int       `json:"total"`
	Page     int       `json:"page"`
	PageSize int       `json:"page_size"`
}
