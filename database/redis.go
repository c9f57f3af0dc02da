package database

import (
	"context"
	"net/http"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	apperrors "storefront/errors"
	"storefront/logger"
)

// NewRedisClient initializes and returns a Redis client
func NewRedisClient(redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, apperrors.New(http.StatusServiceUnavailable, "Invalid Redis URL", err)
	}

	client := redis.NewClient(opts)

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, apperrors.New(http.StatusServiceUnavailable, "Redis connection error", err)
	}

	logger.Log.Info("Connected to Redis", zap.String("addr", opts.Addr))
	return client, nil
}
