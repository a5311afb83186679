package postgres

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS users (
	id BIGSERIAL PRIMARY KEY,
	first_name VARCHAR(100) NOT NULL,
	last_name VARCHAR(100) NOT NULL,
	email VARCHAR(255) NOT NULL UNIQUE,
	phone VARCHAR(20),
	password_hash VARCHAR(255) NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE TABLE IF NOT EXISTS categories (
	id BIGSERIAL PRIMARY KEY,
	title VARCHAR(255) NOT NULL,
	description TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE TABLE IF NOT EXISTS products (
	id BIGSERIAL PRIMARY KEY,
	title VARCHAR(255) NOT NULL,
	description TEXT NOT NULL,
	category_id BIGINT REFERENCES categories(id) ON DELETE RESTRICT,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_products_category ON products(category_id);
`

// Seed account, used only when the users table is empty.
const (
	seedEmail    = "admin@myapp.com"
	seedPassword = "password123"
)

// EnsureSchema creates the tables if they do not exist.
func EnsureSchema(ctx context.Context, db DBTX) error {
	if _, err := db.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// Seed fills empty tables with demo rows so both count floors hold from the
// first request on.
func Seed(ctx context.Context, db DBTX) error {
	var users int64
	if err := db.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&users); err != nil {
		return fmt.Errorf("seed: count users: %w", err)
	}
	if users == 0 {
		hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("seed: hash password: %w", err)
		}
		if _, err := db.Exec(ctx, `
INSERT INTO users (first_name, last_name, email, phone, password_hash)
VALUES ($1, $2, $3, $4, $5)
`, "Admin", "User", seedEmail, "+2250102030405", string(hash)); err != nil {
			return fmt.Errorf("seed: users: %w", err)
		}
	}

	var categories int64
	if err := db.QueryRow(ctx, `SELECT COUNT(*) FROM categories`).Scan(&categories); err != nil {
		return fmt.Errorf("seed: count categories: %w", err)
	}
	if categories == 0 {
		if _, err := db.Exec(ctx, `
INSERT INTO categories (title, description) VALUES
('Électronique', 'Smartphones, ordinateurs, accessoires tech'),
('Vêtements', 'Habits pour hommes, femmes et enfants')
`); err != nil {
			return fmt.Errorf("seed: categories: %w", err)
		}
	}

	var products int64
	if err := db.QueryRow(ctx, `SELECT COUNT(*) FROM products`).Scan(&products); err != nil {
		return fmt.Errorf("seed: count products: %w", err)
	}
	if products == 0 {
		if _, err := db.Exec(ctx, `
INSERT INTO products (title, description, category_id)
SELECT v.title, v.description, c.id
FROM (VALUES
	('iPhone 14 Pro', 'Smartphone Apple 128GB avec écran Dynamic Island', 'Électronique'),
	('T-shirt Blanc', 'T-shirt coton 100% qualité premium, toutes tailles', 'Vêtements')
) AS v(title, description, category)
LEFT JOIN categories c ON c.title = v.category
`); err != nil {
			return fmt.Errorf("seed: products: %w", err)
		}
	}
	return nil
}
