package experience

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"

	boterr "github.com/KirkDiggler/pbta-bot-discord/internal/errors"
)

// The experience payload is one JSON object per room: userID -> count.
// experienceKey is the single canonical key; older deployments wrote a
// motw-scoped key that MigrateLegacy rewrites.
const (
	experienceKey        = "pbta_experience"
	legacyExperienceKey  = "motw_experience"
	legacyExperienceScan = "room:*:" + legacyExperienceKey
)

func roomKey(roomID string) string {
	return fmt.Sprintf("room:%s:%s", roomID, experienceKey)
}

type redisRepo struct {
	client redis.UniversalClient
}

// NewRedis creates a Redis-backed experience repository
func NewRedis(client redis.UniversalClient) Repository {
	return &redisRepo{client: client}
}

func (r *redisRepo) Get(ctx context.Context, roomID, userID string) (int, error) {
	counts, err := r.getCounts(ctx, roomID)
	if err != nil {
		return 0, err
	}

	return counts[userID], nil
}

func (r *redisRepo) Set(ctx context.Context, roomID, userID string, count int) error {
	counts, err := r.getCounts(ctx, roomID)
	if err != nil {
		return err
	}

	counts[userID] = count

	data, err := json.Marshal(counts)
	if err != nil {
		return boterr.WrapWithCode(err, boterr.CodeInternal, "failed to marshal experience")
	}

	if err := r.client.Set(ctx, roomKey(roomID), data, 0).Err(); err != nil {
		return boterr.WrapWithCode(err, boterr.CodeInternal, "failed to set experience in Redis")
	}

	return nil
}

// MigrateLegacy rewrites room:*:motw_experience into the pbta
// namespace and deletes the legacy keys
func (r *redisRepo) MigrateLegacy(ctx context.Context) ([]string, error) {
	var migrated []string
	iter := r.client.Scan(ctx, 0, legacyExperienceScan, 0).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		roomID := strings.TrimSuffix(strings.TrimPrefix(key, "room:"), ":"+legacyExperienceKey)

		data, err := r.client.Get(ctx, key).Bytes()
		if err != nil {
			if err == redis.Nil {
				continue
			}
			return migrated, boterr.WrapWithCode(err, boterr.CodeInternal, "failed to read legacy experience")
		}

		pipe := r.client.Pipeline()
		pipe.Set(ctx, roomKey(roomID), data, 0)
		pipe.Del(ctx, key)
		if _, err := pipe.Exec(ctx); err != nil {
			return migrated, boterr.WrapWithCode(err, boterr.CodeInternal, "failed to migrate legacy experience")
		}

		migrated = append(migrated, roomID)
	}
	if err := iter.Err(); err != nil {
		return migrated, boterr.WrapWithCode(err, boterr.CodeInternal, "failed to scan legacy experience keys")
	}

	return migrated, nil
}

func (r *redisRepo) getCounts(ctx context.Context, roomID string) (map[string]int, error) {
	data, err := r.client.Get(ctx, roomKey(roomID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return map[string]int{}, nil
		}
		return nil, boterr.WrapWithCode(err, boterr.CodeInternal, "failed to get experience from Redis")
	}

	var counts map[string]int
	if err := json.Unmarshal(data, &counts); err != nil {
		return nil, boterr.WrapWithCode(err, boterr.CodeInternal, "failed to unmarshal experience")
	}
	if counts == nil {
		counts = map[string]int{}
	}

	return counts, nil
}
