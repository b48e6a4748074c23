package confirmation

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const markTTL = 24 * time.Hour

// RedisRunMarker stores step-completion marks in redis. Marks expire after
// markTTL, so deduplication is best-effort.
type RedisRunMarker struct {
	rdb *redis.Client
}

func NewRedisRunMarker(rdb *redis.Client) *RedisRunMarker {
	return &RedisRunMarker{rdb: rdb}
}

func markKey(runID, step string) string {
	return "workflow:confirmation:" + runID + ":" + step
}

func (m *RedisRunMarker) IsDone(ctx context.Context, runID, step string) (bool, error) {
	err := m.rdb.Get(ctx, markKey(runID, step)).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (m *RedisRunMarker) MarkDone(ctx context.Context, runID, step string) error {
	return m.rdb.Set(ctx, markKey(runID, step), "1", markTTL).Err()
}
