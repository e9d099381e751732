package redis

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	client     *redis.Client
	clientOnce sync.Once
	clientErr  error
)

// Config holds Redis connection settings. rediss:// URLs enable TLS.
type Config struct {
	URL      string
	Password string
}

// Client returns the shared Redis client, or nil when Redis is not
// configured. Callers must tolerate nil and fall back to in-process state.
func Client() *redis.Client {
	return client
}

// Initialize connects the shared client. Safe for concurrent calls; only the
// first call does work.
func Initialize(cfg Config) error {
	clientOnce.Do(func() {
		if cfg.URL == "" {
			clientErr = errors.New("redis: REDIS_URL not configured")
			return
		}

		parsed, err := url.Parse(cfg.URL)
		if err != nil {
			clientErr = fmt.Errorf("redis: invalid URL: %w", err)
			return
		}

		useTLS := parsed.Scheme == "rediss"
		addr := parsed.Host
		if parsed.Port() == "" {
			addr = parsed.Host + ":6379"
		}

		password := cfg.Password
		if password == "" && parsed.User != nil {
			password, _ = parsed.User.Password()
		}

		opts := &redis.Options{
			Addr:         addr,
			Password:     password,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
			PoolSize:     10,
			MinIdleConns: 2,
		}
		if useTLS {
			opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
		}

		c := redis.NewClient(opts)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := c.Ping(ctx).Err(); err != nil {
			clientErr = fmt.Errorf("redis: connection failed: %w", err)
			return
		}
		client = c
	})
	return clientErr
}

// Close shuts the shared client down gracefully.
func Close() error {
	if client != nil {
		return client.Close()
	}
	return nil
}
