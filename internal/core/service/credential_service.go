package service

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/myapp/catalog-api/internal/core/domain"
)

// DefaultTokenTTL is the validity window of a session token.
const DefaultTokenTTL = 7 * 24 * time.Hour

const hashCost = bcrypt.DefaultCost

// ErrMissingSigningKey is returned at construction when no key is configured.
var ErrMissingSigningKey = errors.New("credential service: signing key is required")

// sessionClaims is the payload of a session token.
type sessionClaims struct {
	UserID int64 `json:"userId"`
	jwt.RegisteredClaims
}

// CredentialService hashes passwords and mints/verifies session tokens.
type CredentialService struct {
	secret    []byte
	tokenTTL  time.Duration
	dummyHash []byte
	now       func() time.Time
}

func NewCredentialService(secret string, tokenTTL time.Duration) (*CredentialService, error) {
	if secret == "" {
		return nil, ErrMissingSigningKey
	}
	if tokenTTL <= 0 {
		tokenTTL = DefaultTokenTTL
	}
	dummy, err := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), hashCost)
	if err != nil {
		return nil, fmt.Errorf("credential service: %w", err)
	}
	return &CredentialService{
		secret:    []byte(secret),
		tokenTTL:  tokenTTL,
		dummyHash: dummy,
		now:       time.Now,
	}, nil
}

// Hash returns a salted one-way hash of plaintext.
func (s *CredentialService) Hash(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), hashCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// Compare reports whether plaintext matches credential. A malformed
// credential never matches.
func (s *CredentialService) Compare(plaintext, credential string) bool {
	return bcrypt.CompareHashAndPassword([]byte(credential), []byte(plaintext)) == nil
}

// burn spends the same work as Compare against a hash nobody knows.
func (s *CredentialService) burn(plaintext string) {
	_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(plaintext))
}

// Issue signs a token bound to accountID that expires after the configured TTL.
func (s *CredentialService) Issue(accountID int64) (string, error) {
	now := s.now()
	claims := sessionClaims{
		UserID: accountID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   strconv.FormatInt(accountID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature and expiry and returns the embedded account id.
// Failures wrap domain.ErrTokenMalformed, domain.ErrTokenSignature or
// domain.ErrTokenExpired.
func (s *CredentialService) Verify(token string) (int64, error) {
	claims := &sessionClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return 0, domain.ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
			return 0, domain.ErrTokenSignature
		default:
			return 0, domain.ErrTokenMalformed
		}
	}
	if claims.UserID <= 0 {
		return 0, domain.ErrTokenMalformed
	}
	return claims.UserID, nil
}
