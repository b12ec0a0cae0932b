package db

import (
	"context"
	"os"

	"github.com/go-redis/redis/v8"
)

// NewRedisClient creates and returns a new Redis client. It connects to the
// server named by REDIS_CONNSTRING, or "localhost:6379" if not set, and
// pings it to make sure the connection is live.
func NewRedisClient(ctx context.Context) (*redis.Client, error) {
	redisAddr := os.Getenv("REDIS_CONNSTRING")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}

	client := redis.NewClient(&redis.Options{
		Addr: redisAddr,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return client, nil
}
