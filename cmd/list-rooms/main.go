package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"

	"github.com/redis/go-redis/v9"
)

// Lists every room with an active game, its stat vocabulary and how
// many players have sheets and experience there.
func main() {
	ctx := context.Background()

	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
	})
	defer client.Close()

	// Test connection
	if _, pingErr := client.Ping(ctx).Result(); pingErr != nil {
		log.Fatalf("Failed to connect to Redis: %v", pingErr)
	}

	// Find all rooms with an active game
	var roomKeys []string
	iter := client.Scan(ctx, 0, "room:*:pbta_stat_names", 0).Iterator()
	for iter.Next(ctx) {
		roomKeys = append(roomKeys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		log.Fatalf("Failed to scan room keys: %v", err)
	}
	sort.Strings(roomKeys)

	fmt.Printf("Found %d room(s) with an active game:\n", len(roomKeys))
	for _, key := range roomKeys {
		roomID := strings.TrimSuffix(strings.TrimPrefix(key, "room:"), ":pbta_stat_names")

		names, getErr := client.Get(ctx, key).Result()
		if getErr != nil {
			fmt.Printf("  %s: ERROR - %v\n", roomID, getErr)
			continue
		}

		var statNames []string
		if err := json.Unmarshal([]byte(names), &statNames); err != nil {
			fmt.Printf("  %s: ERROR - %v\n", roomID, err)
			continue
		}

		fmt.Printf("  %s: stats [%s], %d player sheet(s), %d experience record(s)\n",
			roomID,
			strings.Join(statNames, " "),
			countRecords(ctx, client, fmt.Sprintf("room:%s:pbta_stats", roomID)),
			countRecords(ctx, client, fmt.Sprintf("room:%s:pbta_experience", roomID)))
	}
}

// countRecords counts the users in one room's JSON ledger
func countRecords(ctx context.Context, client *redis.Client, key string) int {
	data, err := client.Get(ctx, key).Bytes()
	if err != nil {
		return 0
	}

	var ledger map[string]json.RawMessage
	if err := json.Unmarshal(data, &ledger); err != nil {
		return 0
	}

	return len(ledger)
}
