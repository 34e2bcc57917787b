package sheets

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/pbta-bot-discord/internal/domain/game"
	boterr "github.com/KirkDiggler/pbta-bot-discord/internal/errors"
)

// Key layout kept compatible with prior versions of the ledger. The
// stat payload is one JSON object per room: userID -> stat -> value.
const (
	statNamesKey    = "pbta_stat_names"
	statsKey        = "pbta_stats"
	legacyStatsKey  = "motw_stats"
	legacyStatsScan = "room:*:" + legacyStatsKey
)

func roomKey(roomID, key string) string {
	return fmt.Sprintf("room:%s:%s", roomID, key)
}

type redisRepo struct {
	client redis.UniversalClient
}

// NewRedis creates a Redis-backed sheet repository
func NewRedis(client redis.UniversalClient) Repository {
	return &redisRepo{client: client}
}

func (r *redisRepo) GetStatNames(ctx context.Context, roomID string) ([]string, error) {
	data, err := r.client.Get(ctx, roomKey(roomID, statNamesKey)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, boterr.NotFoundf("no game selected for room %s", roomID)
		}
		return nil, boterr.WrapWithCode(err, boterr.CodeInternal, "failed to get stat names from Redis")
	}

	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return nil, boterr.WrapWithCode(err, boterr.CodeInternal, "failed to unmarshal stat names")
	}

	return names, nil
}

func (r *redisRepo) SetStatNames(ctx context.Context, roomID string, names []string) error {
	data, err := json.Marshal(names)
	if err != nil {
		return boterr.WrapWithCode(err, boterr.CodeInternal, "failed to marshal stat names")
	}

	if err := r.client.Set(ctx, roomKey(roomID, statNamesKey), data, 0).Err(); err != nil {
		return boterr.WrapWithCode(err, boterr.CodeInternal, "failed to set stat names in Redis")
	}

	return nil
}

func (r *redisRepo) GetSheet(ctx context.Context, roomID, userID string) (map[string]int, error) {
	ledger, err := r.getLedger(ctx, roomID)
	if err != nil {
		return nil, err
	}

	sheet, ok := ledger[userID]
	if !ok {
		return nil, boterr.NotFoundf("no stats found for %s", userID).WithMeta("user_id", userID)
	}

	return sheet, nil
}

func (r *redisRepo) SetSheet(ctx context.Context, roomID, userID string, stats map[string]int) error {
	ledger, err := r.getLedger(ctx, roomID)
	if err != nil {
		return err
	}

	ledger[userID] = stats
	return r.setLedger(ctx, roomID, ledger)
}

// MigrateLegacy rewrites room:*:motw_stats into the pbta namespace,
// backfilling the stat vocabulary with the motw list, then deletes the
// legacy keys
func (r *redisRepo) MigrateLegacy(ctx context.Context) ([]string, error) {
	motw, ok := game.Find("motw")
	if !ok {
		return nil, boterr.Internal("motw missing from game catalog")
	}

	var migrated []string
	iter := r.client.Scan(ctx, 0, legacyStatsScan, 0).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		roomID := strings.TrimSuffix(strings.TrimPrefix(key, "room:"), ":"+legacyStatsKey)

		data, err := r.client.Get(ctx, key).Bytes()
		if err != nil {
			if err == redis.Nil {
				continue
			}
			return migrated, boterr.WrapWithCode(err, boterr.CodeInternal, "failed to read legacy stats")
		}

		pipe := r.client.Pipeline()
		pipe.Set(ctx, roomKey(roomID, statsKey), data, 0)
		pipe.Del(ctx, key)
		if _, err := pipe.Exec(ctx); err != nil {
			return migrated, boterr.WrapWithCode(err, boterr.CodeInternal, "failed to migrate legacy stats")
		}

		if err := r.SetStatNames(ctx, roomID, motw.StatNames); err != nil {
			return migrated, err
		}

		migrated = append(migrated, roomID)
	}
	if err := iter.Err(); err != nil {
		return migrated, boterr.WrapWithCode(err, boterr.CodeInternal, "failed to scan legacy stats keys")
	}

	return migrated, nil
}

func (r *redisRepo) getLedger(ctx context.Context, roomID string) (map[string]map[string]int, error) {
	data, err := r.client.Get(ctx, roomKey(roomID, statsKey)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return map[string]map[string]int{}, nil
		}
		return nil, boterr.WrapWithCode(err, boterr.CodeInternal, "failed to get stats from Redis")
	}

	var ledger map[string]map[string]int
	if err := json.Unmarshal(data, &ledger); err != nil {
		return nil, boterr.WrapWithCode(err, boterr.CodeInternal, "failed to unmarshal stats")
	}
	if ledger == nil {
		ledger = map[string]map[string]int{}
	}

	return ledger, nil
}

func (r *redisRepo) setLedger(ctx context.Context, roomID string, ledger map[string]map[string]int) error {
	data, err := json.Marshal(ledger)
	if err != nil {
		return boterr.WrapWithCode(err, boterr.CodeInternal, "failed to marshal stats")
	}

	if err := r.client.Set(ctx, roomKey(roomID, statsKey), data, 0).Err(); err != nil {
		return boterr.WrapWithCode(err, boterr.CodeInternal, "failed to set stats in Redis")
	}

	return nil
}
