package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/antoniofernandodearujo/stg-catalog-challenge/internal/auth/domain"
	"github.com/go-redis/redis/v8"
)

const keyPrefix = "session:"

// SessionStore keeps bearer sessions in Redis with a TTL, so tokens
// survive process restarts and expire without a sweeper.
type SessionStore struct {
	client *redis.Client
}

func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

type sessionRecord struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	CreatedAt time.Time `json:"created_at"`
}

func (s *SessionStore) Save(ctx context.Context, token string, user domain.User, ttl time.Duration) error {
	data, err := json.Marshal(sessionRecord{
		ID:        user.ID,
		Email:     user.Email,
		FullName:  user.FullName,
		CreatedAt: user.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	if err := s.client.Set(ctx, keyPrefix+token, data, ttl).Err(); err != nil {
		return fmt.Errorf("redis SET: %w", err)
	}
	return nil
}

func (s *SessionStore) Find(ctx context.Context, token string) (domain.User, bool, error) {
	val, err := s.client.Get(ctx, keyPrefix+token).Result()
	if err == redis.Nil {
		return domain.User{}, false, nil
	}
	if err != nil {
		return domain.User{}, false, fmt.Errorf("redis GET: %w", err)
	}

	var rec sessionRecord
	if err := json.Unmarshal([]byte(val), &rec); err != nil {
		return domain.User{}, false, fmt.Errorf("unmarshal session: %w", err)
	}

	return domain.User{
		ID:        rec.ID,
		Email:     rec.Email,
		FullName:  rec.FullName,
		CreatedAt: rec.CreatedAt,
	}, true, nil
}

func (s *SessionStore) Delete(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, keyPrefix+token).Err(); err != nil {
		return fmt.Errorf("redis DEL: %w", err)
	}
	return nil
}
