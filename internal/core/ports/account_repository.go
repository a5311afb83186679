package ports

import (
	"context"

	"github.com/myapp/catalog-api/internal/core/domain"
)

// AccountRepository persists accounts. Create must report a duplicate email as
// domain.ErrEmailTaken.
type AccountRepository interface {
	EmailExists(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, account *domain.Account) (*domain.Account, error)
	// FindByEmail returns the account including its password hash.
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
	FindByID(ctx context.Context, id int64) (*domain.Account, error)
}
