package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/antoniofernandodearujo/stg-catalog-challenge/internal/auth/app"
	"github.com/antoniofernandodearujo/stg-catalog-challenge/internal/auth/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolation = "23505"

type UserRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

func (r *UserRepo) Create(ctx context.Context, u app.NewUser) (domain.User, error) {
	row := r.pool.QueryRow(ctx,
		`INSERT INTO users (email, full_name, password_hash)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at`,
		u.Email, u.FullName, u.PasswordHash,
	)

	user := domain.User{Email: u.Email, FullName: u.FullName}
	if err := row.Scan(&user.ID, &user.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return domain.User{}, app.ErrEmailTaken
		}
		return domain.User{}, fmt.Errorf("insert user: %w", err)
	}

	return user, nil
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (domain.User, string, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT id, email, full_name, password_hash, created_at
		 FROM users
		 WHERE email = $1`,
		email,
	)

	var (
		user domain.User
		hash string
	)
	err := row.Scan(&user.ID, &user.Email, &user.FullName, &hash, &user.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.User{}, "", app.ErrUserNotFound
	}
	if err != nil {
		return domain.User{}, "", fmt.Errorf("select user: %w", err)
	}

	return user, hash, nil
}
