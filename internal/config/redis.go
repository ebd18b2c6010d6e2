package config

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
)

// NewRedisClient اتصال به Redis را راه‌اندازی می‌کند
func NewRedisClient(ctx context.Context, cfg *Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("error connecting to Redis: %w", err)
	}
	return client, nil
}
