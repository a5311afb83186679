package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/myapp/catalog-api/internal/core/domain"
)

// AccountRepository implements ports.AccountRepository on the users table.
type AccountRepository struct {
	db DBTX
}

func NewAccountRepository(db DBTX) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists)
	if err != nil {
		return false, domain.Unavailable("email exists", err)
	}
	return exists, nil
}

func (r *AccountRepository) Create(ctx context.Context, acc *domain.Account) (*domain.Account, error) {
	out := *acc
	err := r.db.QueryRow(ctx, `
INSERT INTO users (first_name, last_name, email, phone, password_hash)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, created_at
`, acc.FirstName, acc.LastName, acc.Email, acc.Phone, acc.PasswordHash).Scan(&out.ID, &out.CreatedAt)
	if err != nil {
		if pgCode(err) == codeUniqueViolation {
			return nil, domain.ErrEmailTaken
		}
		return nil, domain.Unavailable("create account", err)
	}
	out.CreatedAt = out.CreatedAt.UTC()
	return &out, nil
}

func (r *AccountRepository) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	row := r.db.QueryRow(ctx, `
SELECT id, first_name, last_name, email, phone, password_hash, created_at
FROM users WHERE email = $1
`, email)
	var acc domain.Account
	if err := row.Scan(&acc.ID, &acc.FirstName, &acc.LastName, &acc.Email, &acc.Phone, &acc.PasswordHash, &acc.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, domain.Unavailable("find account by email", err)
	}
	acc.CreatedAt = acc.CreatedAt.UTC()
	return &acc, nil
}

func (r *AccountRepository) FindByID(ctx context.Context, id int64) (*domain.Account, error) {
	row := r.db.QueryRow(ctx, `
SELECT id, first_name, last_name, email, phone, created_at
FROM users WHERE id = $1
`, id)
	var acc domain.Account
	if err := row.Scan(&acc.ID, &acc.FirstName, &acc.LastName, &acc.Email, &acc.Phone, &acc.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, domain.Unavailable("find account", err)
	}
	acc.CreatedAt = acc.CreatedAt.UTC()
	return &acc, nil
}
