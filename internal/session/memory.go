package session

import (
	"context"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"github.com/medagenda/agenda-api/internal/model"
)

// MemoryStore is the single-node fallback, also used by tests.
type MemoryStore struct {
	cache *gocache.Cache
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &MemoryStore{cache: gocache.New(ttl, 10*time.Minute)}
}

func (s *MemoryStore) Create(_ context.Context, state model.ViewModelState) (string, error) {
	id := uuid.New().String()
	s.cache.SetDefault(id, state)
	return id, nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (model.ViewModelState, error) {
	v, ok := s.cache.Get(id)
	if !ok {
		return model.ViewModelState{}, ErrNotFound
	}
	return v.(model.ViewModelState), nil
}

func (s *MemoryStore) Save(_ context.Context, id string, state model.ViewModelState) error {
	s.cache.SetDefault(id, state)
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.cache.Delete(id)
	return nil
}

func (s *MemoryStore) Ping(context.Context) error {
	return nil
}

// Count reports tracked sessions, expired entries included until sweep.
func (s *MemoryStore) Count() int {
	return s.cache.ItemCount()
}
