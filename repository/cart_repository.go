package repository

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"storefront/models"
)

// CartRepository defines the interface for cart data access. Mutations are
// atomic per-field operations so two concurrent requests touching the same
// cart can never lose each other's update.
type CartRepository interface {
	Get(ctx context.Context, identity string) ([]models.CartItem, error)
	IncrementItem(ctx context.Context, identity, productSlug string, delta int) error
	RemoveItem(ctx context.Context, identity, productSlug string) error
	Clear(ctx context.Context, identity string) error
}

// RedisCartRepository stores each cart as a Redis hash mapping product slug
// to quantity, keyed by the visitor identity.
type RedisCartRepository struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCartRepository(client *redis.Client, ttl time.Duration) *RedisCartRepository {
	return &RedisCartRepository{
		client: client,
		ttl:    ttl,
	}
}

func (r *RedisCartRepository) getKey(identity string) string {
	return fmt.Sprintf("cart:%s", identity)
}

// Get returns the cart lines for an identity, sorted by slug for stable
// output. A missing cart is an empty slice, never an error.
func (r *RedisCartRepository) Get(ctx context.Context, identity string) ([]models.CartItem, error) {
	fields, err := r.client.HGetAll(ctx, r.getKey(identity)).Result()
	if err != nil {
		return nil, err
	}

	items := make([]models.CartItem, 0, len(fields))
	for slug, qty := range fields {
		quantity, err := strconv.Atoi(qty)
		if err != nil || quantity < 1 {
			continue
		}
		items = append(items, models.CartItem{ProductSlug: slug, Quantity: quantity})
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].ProductSlug < items[j].ProductSlug
	})
	return items, nil
}

// IncrementItem bumps the quantity for a slug, creating the line at the
// delta when absent. The cart TTL is refreshed on every write.
func (r *RedisCartRepository) IncrementItem(ctx context.Context, identity, productSlug string, delta int) error {
	key := r.getKey(identity)
	if err := r.client.HIncrBy(ctx, key, productSlug, int64(delta)).Err(); err != nil {
		return err
	}
	return r.client.Expire(ctx, key, r.ttl).Err()
}

// RemoveItem deletes the line for a slug. Removing an absent slug is a no-op.
func (r *RedisCartRepository) RemoveItem(ctx context.Context, identity, productSlug string) error {
	return r.client.HDel(ctx, r.getKey(identity), productSlug).Err()
}

// Clear drops the whole cart.
func (r *RedisCartRepository) Clear(ctx context.Context, identity string) error {
	return r.client.Del(ctx, r.getKey(identity)).Err()
}
