package redis

import (
	"context"
	"fmt"
	"time"

	"showtime-booking/internal/pkg/config"

	"github.com/redis/go-redis/v9"
)

type Client struct {
	*redis.Client
}

func NewClient(cfg config.RedisConfig) *Client {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	return &Client{Client: rdb}
}

// Connect builds a client and verifies the server answers.
func Connect(cfg config.RedisConfig) (*Client, func(), error) {
	c := NewClient(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := c.Ping(ctx).Err(); err != nil {
		_ = c.Close()
		return nil, nil, fmt.Errorf("failed to ping redis at %s: %w", cfg.Addr, err)
	}

	cleanup := func() {
		_ = c.Close()
	}
	return c, cleanup, nil
}
