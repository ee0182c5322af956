package app

import (
	"context"
	"sync"

	authdomain "github.com/antoniofernandodearujo/stg-catalog-challenge/internal/auth/domain"
)

// Sessions hands out one cart Store per session token. The store is bound
// to the session's user on first use and loaded from the item store; it is
// discarded on logout, so an identity change always starts from a fresh
// remote read.
type Sessions struct {
	mu     sync.Mutex
	stores map[string]*Store
	build  func(user authdomain.User) *Store
}

func NewSessions(build func(user authdomain.User) *Store) *Sessions {
	return &Sessions{
		stores: make(map[string]*Store),
		build:  build,
	}
}

// For returns the session's store, creating and loading it on first use.
// A failed initial load is reported through the store's notifier; the
// caller still gets a usable (empty) store and the next operation will
// re-fetch.
func (s *Sessions) For(ctx context.Context, token string, user authdomain.User) *Store {
	s.mu.Lock()
	st, ok := s.stores[token]
	if !ok {
		st = s.build(user)
		s.stores[token] = st
	}
	s.mu.Unlock()

	if !ok {
		_ = st.Refresh(ctx)
	}
	return st
}

func (s *Sessions) Drop(token string) {
	s.mu.Lock()
	delete(s.stores, token)
	s.mu.Unlock()
}
