package sheets

import (
	"context"
	"sync"

	boterr "github.com/KirkDiggler/pbta-bot-discord/internal/errors"
)

type inMemoryRepository struct {
	mu        sync.RWMutex
	statNames map[string][]string                  // roomID -> names
	sheets    map[string]map[string]map[string]int // roomID -> userID -> stats
}

// NewInMemoryRepository creates a new in-memory sheet repository
func NewInMemoryRepository() Repository {
	return &inMemoryRepository{
		statNames: make(map[string][]string),
		sheets:    make(map[string]map[string]map[string]int),
	}
}

func (r *inMemoryRepository) GetStatNames(ctx context.Context, roomID string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names, ok := r.statNames[roomID]
	if !ok {
		return nil, boterr.NotFoundf("no game selected for room %s", roomID)
	}

	return append([]string(nil), names...), nil
}

func (r *inMemoryRepository) SetStatNames(ctx context.Context, roomID string, names []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.statNames[roomID] = append([]string(nil), names...)
	return nil
}

func (r *inMemoryRepository) GetSheet(ctx context.Context, roomID, userID string) (map[string]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sheet, ok := r.sheets[roomID][userID]
	if !ok {
		return nil, boterr.NotFoundf("no stats found for %s", userID).WithMeta("user_id", userID)
	}

	out := make(map[string]int, len(sheet))
	for name, value := range sheet {
		out[name] = value
	}

	return out, nil
}

func (r *inMemoryRepository) SetSheet(ctx context.Context, roomID, userID string, stats map[string]int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sheets[roomID] == nil {
		r.sheets[roomID] = make(map[string]map[string]int)
	}

	sheet := make(map[string]int, len(stats))
	for name, value := range stats {
		sheet[name] = value
	}
	r.sheets[roomID][userID] = sheet

	return nil
}

func (r *inMemoryRepository) MigrateLegacy(ctx context.Context) ([]string, error) {
	// Nothing persisted before this process started
	return nil, nil
}
