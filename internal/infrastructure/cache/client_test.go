package cache

import (
	"context"
	"testing"
	"time"

	"github.com/marketplace/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestClientFactory_Disabled(t *testing.T) {
	f := NewClientFactory(config.RedisConfig{Enabled: false, Host: "localhost", Port: 6379})

	client, err := f.Connect(context.Background())
	assert.Nil(t, client)
	assert.ErrorIs(t, err, ErrRedisDisabled)
}

func TestClientFactory_Options(t *testing.T) {
	f := NewClientFactory(config.RedisConfig{Host: "cache.internal", Port: 6380, Password: "pw", DB: 3})

	opts := f.Options()
	assert.Equal(t, "cache.internal:6380", opts.Addr)
	assert.Equal(t, "pw", opts.Password)
	assert.Equal(t, 3, opts.DB)
}

func TestClientFactory_Unreachable(t *testing.T) {
	f := NewClientFactory(
		config.RedisConfig{Enabled: true, Host: "127.0.0.1", Port: 1},
		WithLogger(zaptest.NewLogger(t)),
		WithPingTimeout(500*time.Millisecond),
	)

	client, err := f.Connect(context.Background())
	require.Error(t, err)
	assert.Nil(t, client)
	assert.Contains(t, err.Error(), "127.0.0.1:1")
}
