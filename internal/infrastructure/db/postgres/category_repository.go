package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/myapp/catalog-api/internal/core/domain"
)

const categoryColumns = `id, title, description, created_at`

// CategoryRepository implements ports.CategoryRepository.
type CategoryRepository struct {
	db DBTX
}

func NewCategoryRepository(db DBTX) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func scanCategory(row pgx.Row) (*domain.Category, error) {
	var c domain.Category
	if err := row.Scan(&c.ID, &c.Title, &c.Description, &c.CreatedAt); err != nil {
		return nil, err
	}
	c.CreatedAt = c.CreatedAt.UTC()
	return &c, nil
}

func (r *CategoryRepository) List(ctx context.Context) ([]domain.Category, error) {
	rows, err := r.db.Query(ctx, `SELECT `+categoryColumns+` FROM categories ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, domain.Unavailable("list categories", err)
	}
	defer rows.Close()

	out := make([]domain.Category, 0)
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, domain.Unavailable("list categories", err)
		}
		out = append(out, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Unavailable("list categories", err)
	}
	return out, nil
}

func (r *CategoryRepository) FindByID(ctx context.Context, id int64) (*domain.Category, error) {
	c, err := scanCategory(r.db.QueryRow(ctx, `SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, domain.Unavailable("find category", err)
	}
	return c, nil
}

func (r *CategoryRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM categories WHERE id = $1)`, id).Scan(&exists); err != nil {
		return false, domain.Unavailable("category exists", err)
	}
	return exists, nil
}

func (r *CategoryRepository) Create(ctx context.Context, title, description string) (*domain.Category, error) {
	c, err := scanCategory(r.db.QueryRow(ctx, `
INSERT INTO categories (title, description) VALUES ($1, $2)
RETURNING `+categoryColumns, title, description))
	if err != nil {
		return nil, domain.Unavailable("create category", err)
	}
	return c, nil
}

func (r *CategoryRepository) Update(ctx context.Context, id int64, title, description string) (*domain.Category, error) {
	c, err := scanCategory(r.db.QueryRow(ctx, `
UPDATE categories SET title = $1, description = $2 WHERE id = $3
RETURNING `+categoryColumns, title, description, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, domain.Unavailable("update category", err)
	}
	return c, nil
}

func (r *CategoryRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM categories`).Scan(&n); err != nil {
		return 0, domain.Unavailable("count categories", err)
	}
	return n, nil
}

func (r *CategoryRepository) CountProducts(ctx context.Context, id int64) (int64, error) {
	var n int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM products WHERE category_id = $1`, id).Scan(&n); err != nil {
		return 0, domain.Unavailable("count category products", err)
	}
	return n, nil
}

// DeleteGuarded deletes the category in one statement that re-checks both
// the reference and the floor rule.
func (r *CategoryRepository) DeleteGuarded(ctx context.Context, id int64) (*domain.Category, error) {
	c, err := scanCategory(r.db.QueryRow(ctx, `
DELETE FROM categories
WHERE id = $1
  AND NOT EXISTS (SELECT 1 FROM products WHERE category_id = $1)
  AND (SELECT COUNT(*) FROM categories) > 1
RETURNING `+categoryColumns, id))
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return nil, domain.ErrCategoryNotFound
		case pgCode(err) == codeForeignKeyViolation:
			return nil, domain.ErrCategoryInUse
		}
		return nil, domain.Unavailable("delete category", err)
	}
	return c, nil
}

func (r *CategoryRepository) Options(ctx context.Context) ([]domain.CategoryOption, error) {
	rows, err := r.db.Query(ctx, `SELECT id, title FROM categories ORDER BY title`)
	if err != nil {
		return nil, domain.Unavailable("category options", err)
	}
	defer rows.Close()

	out := make([]domain.CategoryOption, 0)
	for rows.Next() {
		var o domain.CategoryOption
		if err := rows.Scan(&o.ID, &o.Title); err != nil {
			return nil, domain.Unavailable("category options", err)
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Unavailable("category options", err)
	}
	return out, nil
}
