package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

type dbKeyType struct{}

var dbKey dbKeyType

func newDBURLFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "db-url",
		Usage:    "Database connection string",
		Required: true,
		EnvVars:  []string{"DATABASE_URL"},
	}
}

func initDB(c *cli.Context) error {
	db, err := sql.Open("pgx", c.String("db-url"))
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	c.Context = context.WithValue(c.Context, dbKey, db)
	return nil
}

func closeDB(c *cli.Context) error {
	if db, ok := c.Context.Value(dbKey).(*sql.DB); ok && db != nil {
		return db.Close()
	}
	return nil
}

func dbFromContext(c *cli.Context) (*sql.DB, error) {
	db, ok := c.Context.Value(dbKey).(*sql.DB)
	if !ok || db == nil {
		return nil, fmt.Errorf("database connection not initialized")
	}
	return db, nil
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: could not load .env file: %v", err)
	}

	app := &cli.App{
		Name:  "seed",
		Usage: "Initialize the catalog schema and import product data",
		Commands: []*cli.Command{
			{
				Name:   "init",
				Usage:  "Create the products table and indexes",
				Flags:  []cli.Flag{newDBURLFlag()},
				Before: initDB,
				After:  closeDB,
				Action: initSchema,
			},
			{
				Name:  "products",
				Usage: "Import products from a CSV file",
				Flags: []cli.Flag{
					newDBURLFlag(),
					&cli.StringFlag{
						Name:     "file",
						Usage:    "Path to the products CSV file",
						Required: true,
					},
					&cli.BoolFlag{
						Name:  "truncate",
						Usage: "Delete existing products before importing",
					},
				},
				Before: initDB,
				After:  closeDB,
				Action: importProducts,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func initSchema(c *cli.Context) error {
	db, err := dbFromContext(c)
	if err != nil {
		return err
	}

	schema := `
	CREATE TABLE IF NOT EXISTS products (
		id UUID PRIMARY KEY,
		product_id BIGINT NOT NULL UNIQUE,
		name VARCHAR(255) NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		category VARCHAR(100) NOT NULL,
		cost_price NUMERIC(10,2) NOT NULL,
		selling_price NUMERIC(10,2) NOT NULL,
		stock_available INTEGER NOT NULL DEFAULT 0,
		units_sold INTEGER NOT NULL DEFAULT 0,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
	CREATE INDEX IF NOT EXISTS idx_products_category ON products (category);
	CREATE INDEX IF NOT EXISTS idx_products_active ON products (is_active);
	CREATE INDEX IF NOT EXISTS idx_products_created_at ON products (created_at DESC);`

	if _, err := db.ExecContext(c.Context, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	log.Println("schema initialized")
	return nil
}
