package main

import (
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/urfave/cli/v2"
)

// productRow is one CSV record from the catalog export.
type productRow struct {
	ProductID      int64
	Name           string
	Description    string
	Category       string
	CostPrice      float64
	SellingPrice   float64
	StockAvailable int
	UnitsSold      int
}

func importProducts(c *cli.Context) error {
	db, err := dbFromContext(c)
	if err != nil {
		return err
	}

	file, err := os.Open(c.String("file"))
	if err != nil {
		return fmt.Errorf("failed to open products file: %w", err)
	}
	defer file.Close()

	if c.Bool("truncate") {
		if _, err := db.ExecContext(c.Context, `DELETE FROM products`); err != nil {
			return fmt.Errorf("failed to clear products: %w", err)
		}
		log.Println("cleared existing products")
	}

	tx, err := db.BeginTx(c.Context, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(c.Context, `
		INSERT INTO products (
			id, product_id, name, description, category, cost_price,
			selling_price, stock_available, units_sold, is_active
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, TRUE)
		ON CONFLICT (product_id)
		DO UPDATE SET
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			category = EXCLUDED.category,
			cost_price = EXCLUDED.cost_price,
			selling_price = EXCLUDED.selling_price,
			stock_available = EXCLUDED.stock_available,
			units_sold = EXCLUDED.units_sold,
			is_active = TRUE,
			updated_at = NOW()`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	reader := csv.NewReader(file)
	header, err := reader.Read()
	if err != nil {
		return fmt.Errorf("failed to read CSV header: %w", err)
	}
	columns := indexColumns(header)

	imported := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read CSV record: %w", err)
		}

		row, err := parseProductRow(record, columns)
		if err != nil {
			log.Printf("skipping record: %v", err)
			continue
		}
		if row == nil {
			continue
		}

		if _, err := stmt.ExecContext(c.Context,
			uuid.New(),
			row.ProductID,
			row.Name,
			row.Description,
			row.Category,
			row.CostPrice,
			row.SellingPrice,
			row.StockAvailable,
			row.UnitsSold,
		); err != nil {
			return fmt.Errorf("failed to insert product %d: %w", row.ProductID, err)
		}
		imported++
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit import: %w", err)
	}

	log.Printf("imported %d products", imported)
	return logCategorySummary(c, db)
}

func indexColumns(header []string) map[string]int {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(strings.ToLower(name))] = i
	}
	return columns
}

// parseProductRow maps a CSV record to a productRow. Records without a
// product_id (blank padding rows in exports) return nil.
func parseProductRow(record []string, columns map[string]int) (*productRow, error) {
	field := func(name string) string {
		idx, ok := columns[name]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	rawID := field("product_id")
	if rawID == "" {
		return nil, nil
	}

	productID, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid product_id %q: %w", rawID, err)
	}

	costPrice, err := strconv.ParseFloat(field("cost_price"), 64)
	if err != nil {
		return nil, fmt.Errorf("product %d: invalid cost_price: %w", productID, err)
	}
	sellingPrice, err := strconv.ParseFloat(field("selling_price"), 64)
	if err != nil {
		return nil, fmt.Errorf("product %d: invalid selling_price: %w", productID, err)
	}

	stock, err := strconv.Atoi(field("stock_available"))
	if err != nil {
		return nil, fmt.Errorf("product %d: invalid stock_available: %w", productID, err)
	}
	sold, err := strconv.Atoi(field("units_sold"))
	if err != nil {
		return nil, fmt.Errorf("product %d: invalid units_sold: %w", productID, err)
	}

	return &productRow{
		ProductID:      productID,
		Name:           field("name"),
		Description:    field("description"),
		Category:       field("category"),
		CostPrice:      costPrice,
		SellingPrice:   sellingPrice,
		StockAvailable: stock,
		UnitsSold:      sold,
	}, nil
}

func logCategorySummary(c *cli.Context, db *sql.DB) error {
	rows, err := db.QueryContext(c.Context,
		`SELECT category, COUNT(*) FROM products WHERE is_active = TRUE GROUP BY category ORDER BY category`)
	if err != nil {
		return fmt.Errorf("failed to summarize categories: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var category string
		var count int
		if err := rows.Scan(&category, &count); err != nil {
			return fmt.Errorf("failed to scan category summary: %w", err)
		}
		log.Printf("  %s: %d products", category, count)
	}
	return rows.Err()
}
