package game

import (
	"context"
	"log"

	"golang.org/x/sync/errgroup"
)

// MigrateLegacyKeys rewrites pre-namespacing ledger keys (the old
// single-game motw deployment) into the pbta namespace. Safe to run on
// every startup; a clean store is a no-op.
func (s *service) MigrateLegacyKeys(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		rooms, err := s.sheetRepo.MigrateLegacy(ctx)
		if err != nil {
			return err
		}
		if len(rooms) > 0 {
			log.Printf("Migrated legacy stat keys for %d room(s): %v", len(rooms), rooms)
		}
		return nil
	})

	g.Go(func() error {
		rooms, err := s.experienceRepo.MigrateLegacy(ctx)
		if err != nil {
			return err
		}
		if len(rooms) > 0 {
			log.Printf("Migrated legacy experience keys for %d room(s): %v", len(rooms), rooms)
		}
		return nil
	})

	return g.Wait()
}
