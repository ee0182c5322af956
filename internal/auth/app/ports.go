package app

import (
	"context"
	"time"

	"github.com/antoniofernandodearujo/stg-catalog-challenge/internal/auth/domain"
)

type NewUser struct {
	Email        string
	FullName     string
	PasswordHash string
}

type UserRepo interface {
	Create(ctx context.Context, u NewUser) (domain.User, error)
	// GetByEmail returns the user and its password hash.
	GetByEmail(ctx context.Context, email string) (domain.User, string, error)
}

type SessionStore interface {
	Save(ctx context.Context, token string, user domain.User, ttl time.Duration) error
	Find(ctx context.Context, token string) (domain.User, bool, error)
	Delete(ctx context.Context, token string) error
}
