package redis_test

import (
	"context"
	"strconv"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/scrobblyx/crowned/internal/redis"
	"github.com/scrobblyx/crowned/internal/setup/config"
)

func setupTest(t *testing.T) (*redis.Manager, func()) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)

	port, err := strconv.Atoi(mr.Port())
	require.NoError(t, err)

	manager := redis.NewManager(&config.Redis{
		Host: mr.Host(),
		Port: port,
		// miniredis does not support RESP3 client tracking
		DisableCache: true,
	}, zap.NewNop())

	return manager, func() {
		manager.Close()
		mr.Close()
	}
}

func TestGetClient(t *testing.T) {
	manager, cleanup := setupTest(t)
	defer cleanup()

	client, err := manager.GetClient(redis.CacheDBIndex)
	require.NoError(t, err)
	require.NotNil(t, client)

	ctx := context.Background()
	err = client.Do(ctx, client.B().Ping().Build()).Error()
	require.NoError(t, err)

	// Repeat requests for the same database reuse the connection
	again, err := manager.GetClient(redis.CacheDBIndex)
	require.NoError(t, err)
	assert.Equal(t, client, again)
}

func TestClose(t *testing.T) {
	manager, cleanup := setupTest(t)
	defer cleanup()

	client, err := manager.GetClient(redis.CacheDBIndex)
	require.NoError(t, err)

	manager.Close()

	ctx := context.Background()
	err = client.Do(ctx, client.B().Ping().Build()).Error()
	assert.Error(t, err, "clients must be unusable after shutdown")
}
