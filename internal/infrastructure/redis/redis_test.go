package redis

import (
	"context"
	"testing"
	"time"

	"github.com/MohdOwais22/subaku-backend/internal/domain/asset"
	domainProduct "github.com/MohdOwais22/subaku-backend/internal/domain/product"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*goredis.Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return client, mr
}

func sampleProduct() *domainProduct.Product {
	now := time.Now().UTC().Truncate(time.Millisecond)
	return &domainProduct.Product{
		ID:       "prod-1",
		Name:     "Hoodie",
		Price:    49.9,
		Stock:    4,
		Category: "Clothes",
		Images:   []asset.Image{{PublicID: "products/h1", URL: "https://cdn/h1"}},
		Reviews: []domainProduct.Review{
			{ID: "r-1", UserID: "u-1", Name: "Ann", Rating: 4, Comment: "warm"},
		},
		NumOfReviews: 1,
		Ratings:      4,
		Version:      2,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestProductCache_Miss(t *testing.T) {
	client, _ := setupTestRedis(t)
	cache := NewProductCache(client, time.Minute)

	p, ok, err := cache.Get(context.Background(), "missing")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, p)
}

func TestProductCache_SetGetInvalidate(t *testing.T) {
	client, mr := setupTestRedis(t)
	cache := NewProductCache(client, time.Minute)
	ctx := context.Background()
	want := sampleProduct()

	require.NoError(t, cache.Set(ctx, want))
	assert.True(t, mr.Exists("product:prod-1"))
	assert.Equal(t, time.Minute, mr.TTL("product:prod-1"))

	got, ok, err := cache.Get(ctx, want.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, want.Name, got.Name)
	assert.Equal(t, want.Images, got.Images)
	assert.Equal(t, want.Reviews, got.Reviews)
	assert.Equal(t, want.Version, got.Version)

	require.NoError(t, cache.Invalidate(ctx, want.ID, want.Version+1))
	assert.False(t, mr.Exists("product:prod-1"))
	assert.True(t, mr.Exists("product:prod-1:fence"))
}

func TestProductCache_FenceRejectsRowsOlderThanLastWrite(t *testing.T) {
	client, _ := setupTestRedis(t)
	cache := NewProductCache(client, time.Minute)
	ctx := context.Background()

	// A reader loaded version 2, then a writer committed version 3.
	stale := sampleProduct()
	require.NoError(t, cache.Invalidate(ctx, stale.ID, 3))

	require.NoError(t, cache.Set(ctx, stale))
	_, ok, err := cache.Get(ctx, stale.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	fresh := sampleProduct()
	fresh.Version = 3
	fresh.Name = "Zip Hoodie"
	require.NoError(t, cache.Set(ctx, fresh))

	got, ok, err := cache.Get(ctx, fresh.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Zip Hoodie", got.Name)
	assert.EqualValues(t, 3, got.Version)
}

func TestProductCache_FenceExpiresWithEntryTTL(t *testing.T) {
	client, mr := setupTestRedis(t)
	cache := NewProductCache(client, time.Minute)
	ctx := context.Background()

	require.NoError(t, cache.Invalidate(ctx, "prod-1", 9))
	assert.Equal(t, time.Minute, mr.TTL("product:prod-1:fence"))

	mr.FastForward(2 * time.Minute)
	require.NoError(t, cache.Set(ctx, sampleProduct()))

	_, ok, err := cache.Get(ctx, "prod-1")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestProductCache_Expires(t *testing.T) {
	client, mr := setupTestRedis(t)
	cache := NewProductCache(client, time.Minute)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, sampleProduct()))
	mr.FastForward(2 * time.Minute)

	_, ok, err := cache.Get(ctx, "prod-1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestProductCache_CorruptEntry(t *testing.T) {
	client, mr := setupTestRedis(t)
	cache := NewProductCache(client, time.Minute)
	require.NoError(t, mr.Set("product:bad", "{not json"))

	_, ok, err := cache.Get(context.Background(), "bad")
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestOrphanQueue_PushPop(t *testing.T) {
	client, _ := setupTestRedis(t)
	queue := NewOrphanQueue(client)
	ctx := context.Background()

	require.NoError(t, queue.Push(ctx, "products/a", "products/b", "products/a"))
	require.NoError(t, queue.Push(ctx))

	first, err := queue.Pop(ctx, 1)
	require.NoError(t, err)
	require.Len(t, first, 1)

	rest, err := queue.Pop(ctx, 10)
	require.NoError(t, err)
	require.Len(t, rest, 1)

	assert.ElementsMatch(t, []string{"products/a", "products/b"}, append(first, rest...))

	empty, err := queue.Pop(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
