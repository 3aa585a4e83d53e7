// Package demoapi implements the sample workload deployed onto provisioned
// clusters. It exposes a small user CRUD API plus the metrics and health
// endpoints the monitoring stack scrapes and alerts on.
package demoapi

import (
	"context"
	"sort"
	"sync"
	"time"
)

// User is a stored application user.
type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name" validate:"required"`
	Email     string    `json:"email" validate:"required,email"`
	CreatedAt time.Time `json:"createdAt"`
}

// UserStore persists users. Implementations must be safe for concurrent use.
type UserStore interface {
	List(ctx context.Context) ([]User, error)
	Create(ctx context.Context, u User) (User, error)
	Count(ctx context.Context) (int, error)
}

// MemoryStore is an in-memory UserStore used when no database is configured.
type MemoryStore struct {
	mu     sync.RWMutex
	users  map[int64]User
	nextID int64
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{users: make(map[int64]User), nextID: 1}
}

func (s *MemoryStore) List(_ context.Context) ([]User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemoryStore) Create(_ context.Context, u User) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u.ID = s.nextID
	s.nextID++
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	s.users[u.ID] = u
	return u, nil
}

func (s *MemoryStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users), nil
}
