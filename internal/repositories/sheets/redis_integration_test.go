//go:build integration
// +build integration

package sheets_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	boterr "github.com/KirkDiggler/pbta-bot-discord/internal/errors"
	"github.com/KirkDiggler/pbta-bot-discord/internal/repositories/sheets"
	"github.com/KirkDiggler/pbta-bot-discord/internal/testutils"
)

func TestRedisRepository_Integration(t *testing.T) {
	client := testutils.StartRedisContainer(t)
	repo := sheets.NewRedis(client)
	ctx := context.Background()

	t.Run("full room lifecycle", func(t *testing.T) {
		require.NoError(t, repo.SetStatNames(ctx, "room-1", []string{"cool", "tough", "sharp", "charm", "weird"}))

		names, err := repo.GetStatNames(ctx, "room-1")
		require.NoError(t, err)
		assert.Len(t, names, 5)

		require.NoError(t, repo.SetSheet(ctx, "room-1", "user-1", map[string]int{"cool": 1}))
		require.NoError(t, repo.SetSheet(ctx, "room-1", "user-2", map[string]int{"weird": 2}))

		sheet, err := repo.GetSheet(ctx, "room-1", "user-1")
		require.NoError(t, err)
		assert.Equal(t, map[string]int{"cool": 1}, sheet)
	})

	t.Run("legacy migration against a real server", func(t *testing.T) {
		require.NoError(t, client.Set(ctx, "room:old:motw_stats", `{"user-9":{"charm":-1}}`, 0).Err())

		migrated, err := repo.MigrateLegacy(ctx)
		require.NoError(t, err)
		assert.Contains(t, migrated, "old")

		sheet, err := repo.GetSheet(ctx, "old", "user-9")
		require.NoError(t, err)
		assert.Equal(t, map[string]int{"charm": -1}, sheet)

		_, err = client.Get(ctx, "room:old:motw_stats").Result()
		assert.Error(t, err)
	})

	t.Run("unknown player is not found", func(t *testing.T) {
		_, err := repo.GetSheet(ctx, "room-1", "nobody")
		assert.True(t, boterr.IsNotFound(err))
	})
}
