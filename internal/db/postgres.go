package db

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

func ConnectPostgres() *pgxpool.Pool {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}

	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		log.Fatal(err)
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = time.Hour

	db, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		log.Fatal(err)
	}

	if err := db.Ping(context.Background()); err != nil {
		log.Fatal("Postgres connection failed:", err)
	}

	log.Println("Connected to PostgreSQL")

	if err := initSchema(db); err != nil {
		log.Fatal("Failed to initialize schema:", err)
	}

	return db
}

// initSchema creates or updates the database schema
func initSchema(db *pgxpool.Pool) error {
	ctx := context.Background()

	statements := []string{
		// -------------------------------
		// CUSTOMERS
		// -------------------------------
		`CREATE TABLE IF NOT EXISTS customers (
			id UUID PRIMARY KEY,
			first_name VARCHAR(255) NOT NULL,
			last_name VARCHAR(255) NOT NULL DEFAULT '',
			email VARCHAR(255) UNIQUE NOT NULL,
			phone VARCHAR(50) NOT NULL DEFAULT '',
			postcode VARCHAR(20) NOT NULL DEFAULT '',
			address TEXT NOT NULL DEFAULT '',
			password VARCHAR(255) NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,

		// -------------------------------
		// MENU CATALOG
		// -------------------------------
		`CREATE TABLE IF NOT EXISTS categories (
			id VARCHAR(64) PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			sort_order INT NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS menu_items (
			id VARCHAR(64) PRIMARY KEY,
			category_id VARCHAR(64) NOT NULL REFERENCES categories(id),
			name VARCHAR(255) NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			base_price INT NOT NULL,
			sort_order INT NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS item_options (
			id VARCHAR(64) PRIMARY KEY,
			item_id VARCHAR(64) NOT NULL REFERENCES menu_items(id),
			name VARCHAR(255) NOT NULL,
			selection_type VARCHAR(16) NOT NULL,
			required BOOLEAN NOT NULL DEFAULT FALSE,
			depends_on_option_id VARCHAR(64) NULL,
			depends_on_choice_id VARCHAR(64) NULL,
			sort_order INT NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS option_choices (
			id VARCHAR(64) PRIMARY KEY,
			option_id VARCHAR(64) NOT NULL REFERENCES item_options(id),
			name VARCHAR(255) NOT NULL,
			price_delta INT NOT NULL DEFAULT 0,
			sort_order INT NOT NULL DEFAULT 0
		)`,

		// -------------------------------
		// OPENING HOURS + STORE CONFIG
		// -------------------------------
		`CREATE TABLE IF NOT EXISTS opening_hours (
			id SERIAL PRIMARY KEY,
			day_of_week INT NOT NULL,
			mode VARCHAR(16) NOT NULL,
			open_minute INT NOT NULL,
			close_minute INT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS store_config (
			id SERIAL PRIMARY KEY,
			collection_lead_minutes INT NOT NULL DEFAULT 15,
			delivery_lead_minutes INT NOT NULL DEFAULT 45,
			collection_buffer_minutes INT NOT NULL DEFAULT 15,
			delivery_buffer_minutes INT NOT NULL DEFAULT 30
		)`,

		// -------------------------------
		// DELIVERY ZONES
		// -------------------------------
		`CREATE TABLE IF NOT EXISTS delivery_zones (
			id SERIAL PRIMARY KEY,
			postcode_prefix VARCHAR(20) NOT NULL,
			fee INT NOT NULL DEFAULT 0,
			min_order INT NOT NULL DEFAULT 0
		)`,

		// -------------------------------
		// ORDERS
		// -------------------------------
		`CREATE TABLE IF NOT EXISTS orders (
			id UUID PRIMARY KEY,
			mode VARCHAR(16) NOT NULL,
			slot VARCHAR(32) NOT NULL,
			subtotal INT NOT NULL,
			delivery_fee INT NOT NULL DEFAULT 0,
			total INT NOT NULL,
			payment_method VARCHAR(64) NOT NULL,
			notes TEXT NOT NULL DEFAULT '',
			account_type VARCHAR(16) NOT NULL,
			customer_id UUID NULL REFERENCES customers(id),
			first_name VARCHAR(255) NOT NULL,
			last_name VARCHAR(255) NOT NULL DEFAULT '',
			email VARCHAR(255) NOT NULL,
			phone VARCHAR(50) NOT NULL DEFAULT '',
			postcode VARCHAR(20) NOT NULL DEFAULT '',
			address TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS order_items (
			id SERIAL PRIMARY KEY,
			order_id UUID NOT NULL REFERENCES orders(id),
			item_id VARCHAR(64) NOT NULL,
			item_name VARCHAR(255) NOT NULL,
			unit_price INT NOT NULL,
			quantity INT NOT NULL,
			summary TEXT NOT NULL DEFAULT ''
		)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return err
		}
	}

	log.Println("Schema initialized successfully")
	return nil
}
