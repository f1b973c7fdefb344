package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const orphanKey = "asset:orphans"

// OrphanQueue keeps undeleted public ids in a Redis set so that repeated
// failures for the same asset are stored once.
type OrphanQueue struct {
	client *redis.Client
}

func NewOrphanQueue(client *redis.Client) *OrphanQueue {
	return &OrphanQueue{client: client}
}

func (q *OrphanQueue) Push(ctx context.Context, publicIDs ...string) error {
	if len(publicIDs) == 0 {
		return nil
	}
	members := make([]interface{}, len(publicIDs))
	for i, id := range publicIDs {
		members[i] = id
	}
	if err := q.client.SAdd(ctx, orphanKey, members...).Err(); err != nil {
		return fmt.Errorf("redis push orphans: %w", err)
	}
	return nil
}

func (q *OrphanQueue) Pop(ctx context.Context, max int) ([]string, error) {
	if max <= 0 {
		return nil, nil
	}
	ids, err := q.client.SPopN(ctx, orphanKey, int64(max)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis pop orphans: %w", err)
	}
	return ids, nil
}
