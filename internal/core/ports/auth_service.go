package ports

import (
	"context"

	"github.com/myapp/catalog-api/internal/core/domain"
)

// NewAccountInput carries the registration form.
type NewAccountInput struct {
	FirstName string
	LastName  string
	Email     string
	Phone     *string
	Password  string
}

// AuthService covers registration, login and profile lookup.
type AuthService interface {
	Register(ctx context.Context, in NewAccountInput) (string, *domain.Account, error)
	Login(ctx context.Context, email, password string) (string, *domain.Account, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	Profile(ctx context.Context, accountID int64) (*domain.Account, error)
}

// TokenVerifier resolves a bearer token to an account id. Failures wrap
// domain.ErrInvalidToken.
type TokenVerifier interface {
	Verify(token string) (int64, error)
}

// LoginLimiter throttles login attempts per key. Allow returns
// domain.ErrTooManyAttempts once the budget is spent.
type LoginLimiter interface {
	Allow(ctx context.Context, key string) error
	Reset(ctx context.Context, key string) error
}
