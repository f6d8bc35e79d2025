package cart

import (
	"context"
	"sync"
)

var _ Store = (*MemoryStore)(nil)

// MemoryStore keeps carts in process memory. Suitable for single-instance
// deployments and tests; carts do not survive a restart.
type MemoryStore struct {
	mu    sync.RWMutex
	carts map[string][]Item
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{carts: make(map[string][]Item)}
}

// Get returns the cart for the given id.
func (s *MemoryStore) Get(_ context.Context, cartID string) ([]Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items, ok := s.carts[cartID]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]Item, len(items))
	copy(out, items)
	return out, nil
}

// Set replaces the cart for the given id.
func (s *MemoryStore) Set(_ context.Context, cartID string, items []Item) error {
	stored := make([]Item, len(items))
	copy(stored, items)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts[cartID] = stored
	return nil
}

// Clear removes the cart for the given id. Clearing an absent cart is a no-op.
func (s *MemoryStore) Clear(_ context.Context, cartID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, cartID)
	return nil
}
