package experience

import (
	"context"
	"sync"
)

type inMemoryRepository struct {
	mu     sync.RWMutex
	counts map[string]map[string]int // roomID -> userID -> count
}

// NewInMemoryRepository creates a new in-memory experience repository
func NewInMemoryRepository() Repository {
	return &inMemoryRepository{
		counts: make(map[string]map[string]int),
	}
}

func (r *inMemoryRepository) Get(ctx context.Context, roomID, userID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.counts[roomID][userID], nil
}

func (r *inMemoryRepository) Set(ctx context.Context, roomID, userID string, count int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.counts[roomID] == nil {
		r.counts[roomID] = make(map[string]int)
	}
	r.counts[roomID][userID] = count

	return nil
}

func (r *inMemoryRepository) MigrateLegacy(ctx context.Context) ([]string, error) {
	// Nothing persisted before this process started
	return nil, nil
}
