package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/yigit/alumnihub/internal/app/models"
)

// MemoryStore keeps records as JSON documents in a map.
// Every read decodes a fresh copy, so callers can never mutate stored state.
type MemoryStore[T models.Entity] struct {
	mu    sync.RWMutex
	docs  map[string][]byte
	order []string
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore[T models.Entity]() *MemoryStore[T] {
	return &MemoryStore[T]{docs: make(map[string][]byte)}
}

func (s *MemoryStore[T]) List(ctx context.Context) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]T, 0, len(s.order))
	for _, id := range s.order {
		var v T
		if err := json.Unmarshal(s.docs[id], &v); err != nil {
			return nil, fmt.Errorf("decode record %s: %w", id, err)
		}
		out = append(out, v)
	}
	return out, nil
}

func (s *MemoryStore[T]) Get(ctx context.Context, id string) (T, error) {
	var v T
	if err := ctx.Err(); err != nil {
		return v, err
	}

	s.mu.RLock()
	raw, ok := s.docs[id]
	s.mu.RUnlock()
	if !ok {
		return v, ErrNotFound
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, fmt.Errorf("decode record %s: %w", id, err)
	}
	return v, nil
}

func (s *MemoryStore[T]) Save(ctx context.Context, record T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	id := record.EntityID()
	if id == "" {
		return fmt.Errorf("save record: empty id")
	}
	raw, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode record %s: %w", id, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.docs[id]; !exists {
		s.order = append(s.order, id)
	}
	s.docs[id] = raw
	return nil
}

func (s *MemoryStore[T]) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.docs[id]; !ok {
		return ErrNotFound
	}
	delete(s.docs, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// MemoryUserStore is the in-memory UserStore
type MemoryUserStore struct {
	*MemoryStore[models.User]
}

// NewMemoryUserStore creates an empty in-memory user store
func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{MemoryStore: NewMemoryStore[models.User]()}
}

// FindByEmail matches e-mails case-insensitively
func (s *MemoryUserStore) FindByEmail(ctx context.Context, email string) (models.User, error) {
	users, err := s.List(ctx)
	if err != nil {
		return models.User{}, err
	}
	for _, u := range users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return models.User{}, ErrNotFound
}
