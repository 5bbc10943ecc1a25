package memory

import (
	"context"
	"sync"

	"github.com/msomdec/dataproc/internal/domain"
)

// ProcessedUserStore implements domain.ProcessedUserRepository with an
// in-memory map. It is the default backend: records live for the duration
// of the process and are lost on restart.
//
// A single RWMutex guards the map and the insertion-order index. Per-record
// work is trivial, so no finer-grained locking is warranted.
type ProcessedUserStore struct {
	mu    sync.RWMutex
	users map[string]domain.ProcessedUser
	order []string
}

// NewProcessedUserStore creates an empty in-memory store.
func NewProcessedUserStore() *ProcessedUserStore {
	return &ProcessedUserStore{
		users: make(map[string]domain.ProcessedUser),
	}
}

// Upsert inserts or replaces the record keyed by user.UserID. Replacing an
// existing record keeps its original position in the insertion order.
func (s *ProcessedUserStore) Upsert(ctx context.Context, user *domain.ProcessedUser) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[user.UserID]; !exists {
		s.order = append(s.order, user.UserID)
	}
	s.users[user.UserID] = *user
	return nil
}

// Get returns the stored record or domain.ErrNotFound.
func (s *ProcessedUserStore) Get(ctx context.Context, userID string) (*domain.ProcessedUser, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &user, nil
}

// List returns all stored records in insertion order.
func (s *ProcessedUserStore) List(ctx context.Context) ([]domain.ProcessedUser, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]domain.ProcessedUser, 0, len(s.order))
	for _, id := range s.order {
		users = append(users, s.users[id])
	}
	return users, nil
}

// Delete removes the record if present, or returns domain.ErrNotFound.
func (s *ProcessedUserStore) Delete(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[userID]; !ok {
		return domain.ErrNotFound
	}
	delete(s.users, userID)
	for i, id := range s.order {
		if id == userID {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// Count returns the number of stored records.
func (s *ProcessedUserStore) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users), nil
}
