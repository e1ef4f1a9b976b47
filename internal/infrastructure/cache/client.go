// Package cache owns the shared Redis connection.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/marketplace/backend/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ErrRedisDisabled is returned when redis.enabled is false
var ErrRedisDisabled = errors.New("redis is disabled")

const defaultPingTimeout = 5 * time.Second

// ClientFactory creates Redis clients based on configuration
type ClientFactory struct {
	cfg         config.RedisConfig
	logger      *zap.Logger
	pingTimeout time.Duration
}

// ClientFactoryOption is a functional option for configuring the factory
type ClientFactoryOption func(*ClientFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) ClientFactoryOption {
	return func(f *ClientFactory) {
		f.logger = logger
	}
}

// WithPingTimeout bounds the connectivity check done by Connect
func WithPingTimeout(d time.Duration) ClientFactoryOption {
	return func(f *ClientFactory) {
		f.pingTimeout = d
	}
}

// NewClientFactory creates a new factory
func NewClientFactory(cfg config.RedisConfig, opts ...ClientFactoryOption) *ClientFactory {
	f := &ClientFactory{
		cfg:         cfg,
		logger:      zap.NewNop(),
		pingTimeout: defaultPingTimeout,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Options returns the go-redis options for the configured server
func (f *ClientFactory) Options() *redis.Options {
	return &redis.Options{
		Addr:     f.cfg.Addr(),
		Password: f.cfg.Password,
		DB:       f.cfg.DB,
	}
}

// Connect opens a client and pings it. The client is closed when the ping
// fails.
func (f *ClientFactory) Connect(ctx context.Context) (redis.UniversalClient, error) {
	if !f.cfg.Enabled {
		return nil, ErrRedisDisabled
	}

	client := redis.NewClient(f.Options())

	pingCtx, cancel := context.WithTimeout(ctx, f.pingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", f.cfg.Addr(), err)
	}

	f.logger.Info("Connected to Redis", zap.String("addr", f.cfg.Addr()), zap.Int("db", f.cfg.DB))
	return client, nil
}
