package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/myapp/catalog-api/internal/core/domain"
	"github.com/myapp/catalog-api/internal/core/ports"
)

// AuthService implements registration, login and profile lookup on top of the
// account directory and the credential service.
type AuthService struct {
	repo        ports.AccountRepository
	credentials *CredentialService
	limiter     ports.LoginLimiter
	logger      zerolog.Logger
}

func NewAuthService(
	repo ports.AccountRepository,
	credentials *CredentialService,
	limiter ports.LoginLimiter,
	logger zerolog.Logger,
) *AuthService {
	if limiter == nil {
		limiter = NopLoginLimiter{}
	}
	return &AuthService{repo: repo, credentials: credentials, limiter: limiter, logger: logger}
}

func (s *AuthService) EmailExists(ctx context.Context, email string) (bool, error) {
	return s.repo.EmailExists(ctx, strings.TrimSpace(email))
}

// CreateAccount stores a new account with a hashed credential. The returned
// account never carries the credential.
func (s *AuthService) CreateAccount(ctx context.Context, in ports.NewAccountInput) (*domain.Account, error) {
	acc, err := newAccount(in)
	if err != nil {
		return nil, err
	}

	exists, err := s.repo.EmailExists(ctx, acc.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrEmailTaken
	}

	hash, err := s.credentials.Hash(in.Password)
	if err != nil {
		return nil, err
	}
	acc.PasswordHash = hash

	// The unique index still catches a concurrent registration and the
	// repository reports it as ErrEmailTaken.
	created, err := s.repo.Create(ctx, acc)
	if err != nil {
		return nil, err
	}
	return created.WithoutCredential(), nil
}

func (s *AuthService) Register(ctx context.Context, in ports.NewAccountInput) (string, *domain.Account, error) {
	acc, err := s.CreateAccount(ctx, in)
	if err != nil {
		return "", nil, err
	}

	token, err := s.credentials.Issue(acc.ID)
	if err != nil {
		return "", nil, err
	}

	s.logger.Info().Int64("account_id", acc.ID).Msg("account registered")
	return token, acc, nil
}

// Login checks the credential for email. Unknown email and wrong password
// produce the same error and cost the same hash comparison.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.Account, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	key := "login:" + email
	if err := s.limiter.Allow(ctx, key); err != nil {
		if errors.Is(err, domain.ErrTooManyAttempts) {
			return "", nil, err
		}
		s.logger.Warn().Err(err).Msg("login limiter unavailable")
	}

	acc, err := s.repo.FindByEmail(ctx, email)
	if errors.Is(err, domain.ErrAccountNotFound) {
		s.credentials.burn(password)
		return "", nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, err
	}

	if !s.credentials.Compare(password, acc.PasswordHash) {
		return "", nil, domain.ErrInvalidCredentials
	}

	if err := s.limiter.Reset(ctx, key); err != nil {
		s.logger.Warn().Err(err).Msg("failed to reset login attempts")
	}

	token, err := s.credentials.Issue(acc.ID)
	if err != nil {
		return "", nil, err
	}
	return token, acc.WithoutCredential(), nil
}

func (s *AuthService) Profile(ctx context.Context, accountID int64) (*domain.Account, error) {
	acc, err := s.repo.FindByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return acc.WithoutCredential(), nil
}

func newAccount(in ports.NewAccountInput) (*domain.Account, error) {
	acc := &domain.Account{
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		Email:     strings.TrimSpace(in.Email),
	}
	switch {
	case acc.FirstName == "":
		return nil, domain.InvalidInput("first_name is required")
	case acc.LastName == "":
		return nil, domain.InvalidInput("last_name is required")
	case acc.Email == "":
		return nil, domain.InvalidInput("email is required")
	case in.Password == "":
		return nil, domain.InvalidInput("password is required")
	}
	if in.Phone != nil {
		if phone := strings.TrimSpace(*in.Phone); phone != "" {
			acc.Phone = &phone
		}
	}
	return acc, nil
}

// NopLoginLimiter never throttles.
type NopLoginLimiter struct{}

func (NopLoginLimiter) Allow(context.Context, string) error { return nil }
func (NopLoginLimiter) Reset(context.Context, string) error { return nil }
