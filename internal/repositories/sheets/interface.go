package sheets

import "context"

//go:generate mockgen -destination=mocks/mock_repository.go -package=mocksheets -source=interface.go

// Repository stores each room's stat vocabulary and the per-player
// character sheets (stat name -> signed value)
type Repository interface {
	// GetStatNames returns the stat vocabulary of the room's active
	// game, or a not-found error when no game has been selected
	GetStatNames(ctx context.Context, roomID string) ([]string, error)

	// SetStatNames persists the stat vocabulary for a room
	SetStatNames(ctx context.Context, roomID string, names []string) error

	// GetSheet returns a player's full stat mapping. A player who has
	// never set anything yields a not-found error, distinct from an
	// empty mapping.
	GetSheet(ctx context.Context, roomID, userID string) (map[string]int, error)

	// SetSheet replaces a player's stat mapping inside the room ledger
	SetSheet(ctx context.Context, roomID, userID string, stats map[string]int) error

	// MigrateLegacy rewrites old single-game ledger keys into the
	// namespaced form and deletes them, returning the affected rooms
	MigrateLegacy(ctx context.Context) ([]string, error)
}
