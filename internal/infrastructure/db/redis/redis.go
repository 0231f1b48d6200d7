// Package redis holds the Redis client setup and the token revocation set.
//
// Redis stores nothing but "revoked:<jti>" keys, each expiring with its
// token, so the client is tuned for short single-key commands.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	clientName     = "hrfeedback"
	connectTimeout = 5 * time.Second
	// Auth gates check revocation on every request; a slow Redis should fail
	// the check quickly rather than stall the request.
	commandTimeout = 500 * time.Millisecond
)

// Config selects the Redis instance that holds revoked token ids.
type Config struct {
	Addr     string
	Password string
	DB       int
	// ConnectTimeout bounds the startup ping. Zero means connectTimeout.
	ConnectTimeout time.Duration
}

func (c Config) options() *redis.Options {
	return &redis.Options{
		Addr:         c.Addr,
		Password:     c.Password,
		DB:           c.DB,
		ClientName:   clientName,
		DialTimeout:  connectTimeout,
		ReadTimeout:  commandTimeout,
		WriteTimeout: commandTimeout,
	}
}

// Connect opens the client and pings it once, so the service refuses to
// start when revocation checks could not succeed.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	timeout := cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = connectTimeout
	}

	client := redis.NewClient(cfg.options())

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis %s unreachable: %w", cfg.Addr, err)
	}
	return client, nil
}

// Ping returns a readiness check for client.
func Ping(client redis.Cmdable) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		return client.Ping(ctx).Err()
	}
}
