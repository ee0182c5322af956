package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/antoniofernandodearujo/stg-catalog-challenge/internal/auth/domain"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
)

type LoginInput struct {
	Email    string
	Password string
}

type RegisterInput struct {
	FullName        string
	Email           string
	Password        string
	ConfirmPassword string
}

type Service struct {
	users    UserRepo
	sessions SessionStore
	ttl      time.Duration
}

func NewService(users UserRepo, sessions SessionStore, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Service{users: users, sessions: sessions, ttl: ttl}
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (domain.User, string, error) {
	if err := validateRegister(in); err != nil {
		return domain.User{}, "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("bcrypt.GenerateFromPassword: %w", err)
	}

	user, err := s.users.Create(ctx, NewUser{
		Email:        strings.ToLower(strings.TrimSpace(in.Email)),
		FullName:     strings.TrimSpace(in.FullName),
		PasswordHash: string(hash),
	})
	if err != nil {
		return domain.User{}, "", err
	}

	token, err := s.newSession(ctx, user)
	if err != nil {
		return domain.User{}, "", err
	}
	return user, token, nil
}

func (s *Service) Login(ctx context.Context, in LoginInput) (domain.User, string, error) {
	if err := validateLogin(in); err != nil {
		return domain.User{}, "", err
	}

	user, hash, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(in.Email)))
	if errors.Is(err, ErrUserNotFound) {
		return domain.User{}, "", ErrInvalidCredentials
	}
	if err != nil {
		return domain.User{}, "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(in.Password)) != nil {
		return domain.User{}, "", ErrInvalidCredentials
	}

	token, err := s.newSession(ctx, user)
	if err != nil {
		return domain.User{}, "", err
	}
	return user, token, nil
}

func (s *Service) Logout(ctx context.Context, token string) error {
	return s.sessions.Delete(ctx, token)
}

// Authenticate resolves a bearer token to its user, if the session is alive.
func (s *Service) Authenticate(ctx context.Context, token string) (domain.User, bool, error) {
	if token == "" {
		return domain.User{}, false, nil
	}
	return s.sessions.Find(ctx, token)
}

func (s *Service) newSession(ctx context.Context, user domain.User) (string, error) {
	token := uuid.NewString()
	if err := s.sessions.Save(ctx, token, user, s.ttl); err != nil {
		return "", fmt.Errorf("sessions.Save: %w", err)
	}
	return token, nil
}
