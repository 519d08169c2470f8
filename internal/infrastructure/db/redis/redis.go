package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Config addresses the Redis instance holding the heatmap cache. Timeout
// applies to dialing, each command and the startup ping; zero means 5s.
type Config struct {
	Addr     string
	DB       int
	Password string
	Timeout  time.Duration
}

func (c Config) timeout() time.Duration {
	if c.Timeout > 0 {
		return c.Timeout
	}
	return 5 * time.Second
}

// Connect returns a client that has answered a ping.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	timeout := cfg.timeout()
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		DB:           cfg.DB,
		Password:     cfg.Password,
		DialTimeout:  timeout,
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
	})

	if err := Ping(ctx, client, timeout); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

// Ping checks the connection within timeout. The readiness probe uses it too.
func Ping(ctx context.Context, client *redis.Client, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping %s: %w", client.Options().Addr, err)
	}
	return nil
}
