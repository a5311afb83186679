package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/myapp/catalog-api/internal/core/domain"
)

// Selected from a products row aliased p joined with categories c.
const productSelect = `
SELECT p.id, p.title, p.description, p.category_id, c.title, p.created_at
FROM products p
LEFT JOIN categories c ON c.id = p.category_id`

// ProductRepository implements ports.ProductRepository.
type ProductRepository struct {
	db DBTX
}

func NewProductRepository(db DBTX) *ProductRepository {
	return &ProductRepository{db: db}
}

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var p domain.Product
	if err := row.Scan(&p.ID, &p.Title, &p.Description, &p.CategoryID, &p.CategoryTitle, &p.CreatedAt); err != nil {
		return nil, err
	}
	p.CreatedAt = p.CreatedAt.UTC()
	return &p, nil
}

func (r *ProductRepository) List(ctx context.Context) ([]domain.Product, error) {
	rows, err := r.db.Query(ctx, productSelect+` ORDER BY p.created_at DESC, p.id DESC`)
	if err != nil {
		return nil, domain.Unavailable("list products", err)
	}
	defer rows.Close()

	out := make([]domain.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, domain.Unavailable("list products", err)
		}
		out = append(out, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Unavailable("list products", err)
	}
	return out, nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id int64) (*domain.Product, error) {
	p, err := scanProduct(r.db.QueryRow(ctx, productSelect+` WHERE p.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProductNotFound
		}
		return nil, domain.Unavailable("find product", err)
	}
	return p, nil
}

func (r *ProductRepository) Create(ctx context.Context, title, description string, categoryID *int64) (*domain.Product, error) {
	p, err := scanProduct(r.db.QueryRow(ctx, `
WITH p AS (
	INSERT INTO products (title, description, category_id) VALUES ($1, $2, $3)
	RETURNING *
)
SELECT p.id, p.title, p.description, p.category_id, c.title, p.created_at
FROM p LEFT JOIN categories c ON c.id = p.category_id
`, title, description, categoryID))
	if err != nil {
		if pgCode(err) == codeForeignKeyViolation {
			return nil, domain.ErrUnknownCategory
		}
		return nil, domain.Unavailable("create product", err)
	}
	return p, nil
}

func (r *ProductRepository) Update(ctx context.Context, id int64, title, description string, categoryID *int64) (*domain.Product, error) {
	p, err := scanProduct(r.db.QueryRow(ctx, `
WITH p AS (
	UPDATE products SET title = $1, description = $2, category_id = $3 WHERE id = $4
	RETURNING *
)
SELECT p.id, p.title, p.description, p.category_id, c.title, p.created_at
FROM p LEFT JOIN categories c ON c.id = p.category_id
`, title, description, categoryID, id))
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return nil, domain.ErrProductNotFound
		case pgCode(err) == codeForeignKeyViolation:
			return nil, domain.ErrUnknownCategory
		}
		return nil, domain.Unavailable("update product", err)
	}
	return p, nil
}

func (r *ProductRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM products`).Scan(&n); err != nil {
		return 0, domain.Unavailable("count products", err)
	}
	return n, nil
}

// DeleteGuarded deletes the product in one statement that re-checks the
// floor rule.
func (r *ProductRepository) DeleteGuarded(ctx context.Context, id int64) (*domain.Product, error) {
	p, err := scanProduct(r.db.QueryRow(ctx, `
WITH p AS (
	DELETE FROM products
	WHERE id = $1
	  AND (SELECT COUNT(*) FROM products) > 1
	RETURNING *
)
SELECT p.id, p.title, p.description, p.category_id, c.title, p.created_at
FROM p LEFT JOIN categories c ON c.id = p.category_id
`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProductNotFound
		}
		return nil, domain.Unavailable("delete product", err)
	}
	return p, nil
}
