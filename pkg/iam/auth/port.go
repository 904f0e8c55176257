package auth

import (
	"context"
	"time"

	"github.com/Abraxas-365/hirely/pkg/kernel"
)

type UserRepository interface {
	// Create stores a new user, failing with ErrEmailTaken on duplicates
	Create(ctx context.Context, user *User) error

	// FindByEmail looks up a user by normalized email
	FindByEmail(ctx context.Context, email kernel.Email) (*User, error)

	// FindByID looks up a user by id
	FindByID(ctx context.Context, id kernel.UserID) (*User, error)
}

// RevocationStore remembers signed out tokens until they expire
type RevocationStore interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

type TokenService interface {
	GenerateAccessToken(user UserProfile) (token string, claims *TokenClaims, err error)
	ValidateAccessToken(token string) (*TokenClaims, error)
}
