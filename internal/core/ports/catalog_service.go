package ports

import (
	"context"

	"github.com/myapp/catalog-api/internal/core/domain"
)

// CategoryInput is the writable part of a category.
type CategoryInput struct {
	Title       string
	Description string
}

// ProductInput is the writable part of a product.
type ProductInput struct {
	Title       string
	Description string
	CategoryID  *int64
}

// CategoryService guards category mutations.
type CategoryService interface {
	List(ctx context.Context) ([]domain.Category, error)
	Get(ctx context.Context, id int64) (*domain.Category, error)
	Create(ctx context.Context, in CategoryInput) (*domain.Category, error)
	Update(ctx context.Context, id int64, in CategoryInput) (*domain.Category, error)
	Delete(ctx context.Context, id int64) (*domain.Category, error)
	Count(ctx context.Context) (int64, error)
}

// ProductService guards product mutations.
type ProductService interface {
	List(ctx context.Context) ([]domain.Product, error)
	Get(ctx context.Context, id int64) (*domain.Product, error)
	Create(ctx context.Context, in ProductInput) (*domain.Product, error)
	Update(ctx context.Context, id int64, in ProductInput) (*domain.Product, error)
	Delete(ctx context.Context, id int64) (*domain.Product, error)
	Count(ctx context.Context) (int64, error)
	CategoryOptions(ctx context.Context) ([]domain.CategoryOption, error)
}
