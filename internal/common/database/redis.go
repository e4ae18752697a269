// internal/common/database/redis.go
package database

import (
	"context"
	"fmt"
	"time"

	"legal-marketplace/internal/common/config"

	redisv8 "github.com/go-redis/redis/v8"
	"github.com/redis/go-redis/v9"
)

// RedisClient wraps the v9 client used by the directory cache.
type RedisClient struct {
	Client *redis.Client
}

// NewRedis creates the directory cache client.
func NewRedis(cfg config.RedisConfig) *RedisClient {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 5,
	})
	return &RedisClient{Client: rdb}
}

func (c *RedisClient) Ping(ctx context.Context) error {
	if err := c.Client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (c *RedisClient) Close() error {
	if c.Client != nil {
		return c.Client.Close()
	}
	return nil
}

// NewChatHistoryRedis creates the v8 client backing the chat history store.
// It shares the address with the cache but uses the next logical database.
func NewChatHistoryRedis(cfg config.RedisConfig) *redisv8.Client {
	return redisv8.NewClient(&redisv8.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.DB + 1,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     5,
	})
}
