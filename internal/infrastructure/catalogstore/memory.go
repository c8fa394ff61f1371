package catalogstore

import (
	"sync"

	"github.com/kitanog/weaviate-demo/internal/domain"
)

// MemoryStore is a thread-safe in-memory catalog for the current session.
// Uploads replace the whole catalog; nothing is persisted across restarts.
type MemoryStore struct {
	products []domain.Product
	mutex    sync.RWMutex
}

// NewMemoryStore creates an empty in-memory catalog store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Replace swaps in a new catalog wholesale. The last completed upload wins.
func (s *MemoryStore) Replace(products []domain.Product) {
	copied := make([]domain.Product, len(products))
	copy(copied, products)

	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.products = copied
}

// Snapshot returns a copy of the current catalog. Callers may mutate the
// returned slice without affecting the store.
func (s *MemoryStore) Snapshot() []domain.Product {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	copied := make([]domain.Product, len(s.products))
	copy(copied, s.products)
	return copied
}

// Len returns the number of products currently loaded
func (s *MemoryStore) Len() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.products)
}

// Clear removes all products from the store
func (s *MemoryStore) Clear() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.products = nil
}
