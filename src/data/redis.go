package data

import (
	"context"
	"encoding/json"
	"log"

	"github.com/redis/go-redis/v9"

	"github.com/openballot/electionbot/src/ledger"
)

const eventStream = "electionbot.events"

func MustRedis(url string) *redis.Client {
	opt, err := redis.ParseURL(url)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	return redis.NewClient(opt)
}

// PublishEvent announces an accepted event on the stream consumed by the
// confirmation worker that later fills txnHash and contractId.
func PublishEvent(ctx context.Context, rdb *redis.Client, ev ledger.Event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	_, err = rdb.XAdd(ctx, &redis.XAddArgs{
		Stream: eventStream,
		Values: map[string]interface{}{
			"type":       string(ev.Type),
			"electionId": ev.ElectionID,
			"event":      string(payload),
		},
	}).Result()
	return err
}
