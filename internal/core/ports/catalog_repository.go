package ports

import (
	"context"

	"github.com/myapp/catalog-api/internal/core/domain"
)

// CategoryRepository persists categories.
type CategoryRepository interface {
	// List returns all categories, newest first.
	List(ctx context.Context) ([]domain.Category, error)
	FindByID(ctx context.Context, id int64) (*domain.Category, error)
	Exists(ctx context.Context, id int64) (bool, error)
	Create(ctx context.Context, title, description string) (*domain.Category, error)
	Update(ctx context.Context, id int64, title, description string) (*domain.Category, error)
	Count(ctx context.Context) (int64, error)
	CountProducts(ctx context.Context, id int64) (int64, error)
	// DeleteGuarded removes the category only if it is unreferenced and not
	// the last one, in a single statement. It returns domain.ErrCategoryNotFound
	// when no row was removed.
	DeleteGuarded(ctx context.Context, id int64) (*domain.Category, error)
	// Options returns (id, title) pairs ordered by title.
	Options(ctx context.Context) ([]domain.CategoryOption, error)
}

// ProductRepository persists products. Create and Update must report a
// dangling category reference as domain.ErrUnknownCategory.
type ProductRepository interface {
	// List returns all products joined with their category title, newest first.
	List(ctx context.Context) ([]domain.Product, error)
	FindByID(ctx context.Context, id int64) (*domain.Product, error)
	Create(ctx context.Context, title, description string, categoryID *int64) (*domain.Product, error)
	Update(ctx context.Context, id int64, title, description string, categoryID *int64) (*domain.Product, error)
	Count(ctx context.Context) (int64, error)
	// DeleteGuarded removes the product only if it is not the last one. It
	// returns domain.ErrProductNotFound when no row was removed.
	DeleteGuarded(ctx context.Context, id int64) (*domain.Product, error)
}

// AuditRecorder stores an audit trail of catalog mutations.
type AuditRecorder interface {
	Record(ctx context.Context, entry domain.AuditEntry) error
}
