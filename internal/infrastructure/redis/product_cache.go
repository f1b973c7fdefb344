package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	domainProduct "github.com/MohdOwais22/subaku-backend/internal/domain/product"

	"github.com/redis/go-redis/v9"
)

const (
	productKeyPrefix = "product:"
	fenceKeySuffix   = ":fence"
)

// setIfNotFenced writes the entry unless the fence holds a newer version.
// KEYS: entry, fence. ARGV: payload, version, ttl in ms (0 keeps no expiry).
var setIfNotFenced = redis.NewScript(`
local fence = redis.call("GET", KEYS[2])
if fence and tonumber(ARGV[2]) < tonumber(fence) then
	return 0
end
local ttl = tonumber(ARGV[3])
if ttl > 0 then
	redis.call("SET", KEYS[1], ARGV[1], "PX", ttl)
else
	redis.call("SET", KEYS[1], ARGV[1])
end
return 1
`)

// ProductCache stores product details as JSON under product:<id>. Each
// invalidation leaves a fence at product:<id>:fence so that a reader holding
// a row older than the write cannot put it back.
type ProductCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewProductCache(client *redis.Client, ttl time.Duration) *ProductCache {
	return &ProductCache{
		client: client,
		ttl:    ttl,
	}
}

func entryKey(id string) string {
	return productKeyPrefix + id
}

func fenceKey(id string) string {
	return productKeyPrefix + id + fenceKeySuffix
}

func (c *ProductCache) Get(ctx context.Context, id string) (*domainProduct.Product, bool, error) {
	data, err := c.client.Get(ctx, entryKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get product: %w", err)
	}

	var p domainProduct.Product
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, false, fmt.Errorf("unmarshal product: %w", err)
	}
	return &p, true, nil
}

// Set caches p unless an invalidation has already fenced off its version.
func (c *ProductCache) Set(ctx context.Context, p *domainProduct.Product) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal product: %w", err)
	}

	keys := []string{entryKey(p.ID), fenceKey(p.ID)}
	if err := setIfNotFenced.Run(ctx, c.client, keys, data, p.Version, c.ttl.Milliseconds()).Err(); err != nil {
		return fmt.Errorf("redis set product: %w", err)
	}
	return nil
}

// Invalidate drops the entry and refuses later writes of any version below
// minVersion for one TTL.
func (c *ProductCache) Invalidate(ctx context.Context, id string, minVersion int64) error {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, entryKey(id))
		pipe.Set(ctx, fenceKey(id), minVersion, c.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis invalidate product: %w", err)
	}
	return nil
}
