package catalogstore

import (
	"fmt"
	"sync"
	"testing"

	"github.com/kitanog/weaviate-demo/internal/domain"
)

func TestReplace(t *testing.T) {
	t.Run("replaces wholesale with no merge", func(t *testing.T) {
		store := NewMemoryStore()
		store.Replace([]domain.Product{{ProductID: "old-1"}, {ProductID: "old-2"}})
		store.Replace([]domain.Product{{ProductID: "new-1"}})

		if store.Len() != 1 {
			t.Fatalf("Len() = %d, want 1", store.Len())
		}
		if store.Snapshot()[0].ProductID != "new-1" {
			t.Errorf("product = %s, want new-1", store.Snapshot()[0].ProductID)
		}
	})

	t.Run("copies the input slice", func(t *testing.T) {
		store := NewMemoryStore()
		input := []domain.Product{{ProductID: "p1"}}
		store.Replace(input)

		input[0].ProductID = "mutated"
		if store.Snapshot()[0].ProductID != "p1" {
			t.Error("store should not alias the caller's slice")
		}
	})

	t.Run("accepts an empty catalog", func(t *testing.T) {
		store := NewMemoryStore()
		store.Replace([]domain.Product{{ProductID: "p1"}})
		store.Replace(nil)

		if store.Len() != 0 {
			t.Errorf("Len() = %d, want 0", store.Len())
		}
	})
}

func TestSnapshot(t *testing.T) {
	t.Run("returns an independent copy", func(t *testing.T) {
		store := NewMemoryStore()
		store.Replace([]domain.Product{{ProductID: "p1"}})

		snap := store.Snapshot()
		snap[0].ProductID = "mutated"

		if store.Snapshot()[0].ProductID != "p1" {
			t.Error("mutating a snapshot should not affect the store")
		}
	})

	t.Run("empty store yields empty snapshot", func(t *testing.T) {
		store := NewMemoryStore()
		if len(store.Snapshot()) != 0 {
			t.Errorf("Snapshot() = %v, want empty", store.Snapshot())
		}
	})
}

func TestClear(t *testing.T) {
	store := NewMemoryStore()
	store.Replace([]domain.Product{{ProductID: "p1"}, {ProductID: "p2"}})
	store.Clear()

	if store.Len() != 0 {
		t.Errorf("Len() = %d, want 0 after Clear", store.Len())
	}
}

func TestConcurrentAccess(t *testing.T) {
	store := NewMemoryStore()
	var wg sync.WaitGroup

	// Concurrent replaces and reads must not race; the last completed
	// replace wins.
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			store.Replace([]domain.Product{{ProductID: fmt.Sprintf("p%d", i)}})
		}(i)
		go func() {
			defer wg.Done()
			_ = store.Snapshot()
			_ = store.Len()
		}()
	}
	wg.Wait()

	if store.Len() != 1 {
		t.Errorf("Len() = %d, want 1", store.Len())
	}
}
