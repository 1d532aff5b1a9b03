package usecase

import (
	"sort"
	"sync"

	"github.com/google/uuid"
)

// productLocks serializes reserve checks per product. The incremental overlap
// check is only sound when no two reservation attempts for the same product
// run concurrently.
type productLocks struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*sync.Mutex
}

func newProductLocks() *productLocks {
	return &productLocks{locks: make(map[uuid.UUID]*sync.Mutex)}
}

// acquire locks every product in a fixed global order so two bookings
// sharing products cannot deadlock. The returned func releases them all.
func (p *productLocks) acquire(productIDs []uuid.UUID) func() {
	sorted := make([]uuid.UUID, len(productIDs))
	copy(sorted, productIDs)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].String() < sorted[j].String()
	})

	held := make([]*sync.Mutex, 0, len(sorted))
	for _, id := range sorted {
		p.mu.Lock()
		lock, ok := p.locks[id]
		if !ok {
			lock = &sync.Mutex{}
			p.locks[id] = lock
		}
		p.mu.Unlock()

		lock.Lock()
		held = append(held, lock)
	}

	return func() {
		for i := len(held) - 1; i >= 0; i-- {
			held[i].Unlock()
		}
	}
}
