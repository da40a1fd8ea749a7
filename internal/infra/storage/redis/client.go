// Package redis provides Redis-backed adapters for the explorer's storage
// ports. Its single concern today is the shared scan-result cache, which lets
// several explorer instances behind a balancer serve each other's memoized
// scans.
package redis

import (
	"context"

	redis "github.com/redis/go-redis/v9"
)

// client wraps a single Redis connection. Every adapter in this package hangs
// off it, so one connection pool serves all storage ports.
type client struct {
	conn *redis.Client
}

// NewClient connects to the given Redis instance and verifies the connection
// with a ping before returning, so a misconfigured address fails at startup
// rather than on the first scan.
func NewClient(ctx context.Context, addr, username, password string, db int) (*client, error) {
	conn := redis.NewClient(&redis.Options{
		Addr:     addr,
		Username: username,
		Password: password,
		DB:       db,
	})

	if err := conn.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &client{
		conn: conn,
	}, nil
}

// Close releases the underlying connection pool. Call it on shutdown.
func (c *client) Close() error {
	return c.conn.Close()
}
