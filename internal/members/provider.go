package members

import "context"

//go:generate mockgen -destination=mocks/mock_provider.go -package=mockmembers -source=provider.go

// Provider resolves a member's display name to their durable user ID
type Provider interface {
	// ResolveDisplayName returns the user ID for a display name, or a
	// not-found error when no member of the guild carries that name
	ResolveDisplayName(ctx context.Context, guildID, displayName string) (string, error)
}
