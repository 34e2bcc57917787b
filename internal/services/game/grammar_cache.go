package game

import (
	"context"
	"sync"

	gamedomain "github.com/KirkDiggler/pbta-bot-discord/internal/domain/game"
)

// grammarCache holds the lazily-compiled stat grammar per room. It is
// a pure cache over the persisted stat-name list: entries are rebuilt,
// never patched, and invalidated whenever a room's game changes.
type grammarCache struct {
	mu sync.RWMutex
	m  map[string]*gamedomain.Grammar
}

func (c *grammarCache) get(roomID string) (*gamedomain.Grammar, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	g, ok := c.m[roomID]
	return g, ok
}

func (c *grammarCache) put(roomID string, g *gamedomain.Grammar) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.m == nil {
		c.m = make(map[string]*gamedomain.Grammar)
	}
	c.m[roomID] = g
}

func (c *grammarCache) invalidate(roomID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.m, roomID)
}

// Grammar returns the compiled grammar for a room, building it from
// the persisted stat names on first use. A room with no active game
// yields a not-found error.
func (s *service) Grammar(ctx context.Context, roomID string) (*gamedomain.Grammar, error) {
	if g, ok := s.grammars.get(roomID); ok {
		return g, nil
	}

	names, err := s.sheetRepo.GetStatNames(ctx, roomID)
	if err != nil {
		return nil, err
	}

	g := gamedomain.NewGrammar(names)
	s.grammars.put(roomID, g)
	return g, nil
}
