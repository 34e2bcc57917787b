package experience

import "context"

//go:generate mockgen -destination=mocks/mock_repository.go -package=mockexperience -source=interface.go

// Repository stores per-room experience counts keyed by user ID
type Repository interface {
	// Get returns a player's experience count. A player with no record
	// reads as 0.
	Get(ctx context.Context, roomID, userID string) (int, error)

	// Set stores a player's experience count
	Set(ctx context.Context, roomID, userID string, count int) error

	// MigrateLegacy rewrites old single-game experience keys into the
	// namespaced form and deletes them, returning the affected rooms
	MigrateLegacy(ctx context.Context) ([]string, error)
}
