package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/models"
)

func setupCartRepo(t *testing.T) (*RedisCartRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisCartRepository(client, time.Hour), mr
}

func TestGet_MissingCartIsEmpty(t *testing.T) {
	repo, _ := setupCartRepo(t)

	items, err := repo.Get(context.Background(), "anon:nobody")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestIncrementItem_CreatesAndAccumulates(t *testing.T) {
	repo, _ := setupCartRepo(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.IncrementItem(ctx, "anon:v1", "classic-hb-drawing-pencil", 1))
	}

	items, err := repo.Get(ctx, "anon:v1")
	require.NoError(t, err)
	assert.Equal(t, []models.CartItem{{ProductSlug: "classic-hb-drawing-pencil", Quantity: 3}}, items)
}

func TestIncrementItem_RefreshesTTL(t *testing.T) {
	repo, mr := setupCartRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.IncrementItem(ctx, "anon:v1", "sketch-pad", 1))
	assert.Greater(t, mr.TTL("cart:anon:v1"), time.Duration(0))
}

func TestRemoveItem_AbsentSlugIsNoOp(t *testing.T) {
	repo, _ := setupCartRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.IncrementItem(ctx, "anon:v1", "sketch-pad", 2))
	require.NoError(t, repo.RemoveItem(ctx, "anon:v1", "no-such-product"))

	items, err := repo.Get(ctx, "anon:v1")
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestRemoveItem_DropsLine(t *testing.T) {
	repo, _ := setupCartRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.IncrementItem(ctx, "anon:v1", "sketch-pad", 2))
	require.NoError(t, repo.IncrementItem(ctx, "anon:v1", "vine-charcoal", 1))
	require.NoError(t, repo.RemoveItem(ctx, "anon:v1", "sketch-pad"))

	items, err := repo.Get(ctx, "anon:v1")
	require.NoError(t, err)
	assert.Equal(t, []models.CartItem{{ProductSlug: "vine-charcoal", Quantity: 1}}, items)
}

func TestClear_EmptiesCart(t *testing.T) {
	repo, _ := setupCartRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.IncrementItem(ctx, "anon:v1", "sketch-pad", 2))
	require.NoError(t, repo.Clear(ctx, "anon:v1"))

	items, err := repo.Get(ctx, "anon:v1")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestGet_SortsBySlug(t *testing.T) {
	repo, _ := setupCartRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.IncrementItem(ctx, "anon:v1", "zinc-white-paint", 1))
	require.NoError(t, repo.IncrementItem(ctx, "anon:v1", "artist-brush-set", 1))

	items, err := repo.Get(ctx, "anon:v1")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "artist-brush-set", items[0].ProductSlug)
	assert.Equal(t, "zinc-white-paint", items[1].ProductSlug)
}

func TestCartsAreScopedPerIdentity(t *testing.T) {
	repo, _ := setupCartRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.IncrementItem(ctx, "user:a", "sketch-pad", 1))

	items, err := repo.Get(ctx, "user:b")
	require.NoError(t, err)
	assert.Empty(t, items)
}
