package bootstrap

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"printshop/internal/config"
	"printshop/internal/logger"
	"printshop/internal/repository/cached"
	"printshop/internal/resilience"
	"printshop/internal/storage"
)

func TestOpenStore(t *testing.T) {
	ctx := context.Background()

	t.Run("memory with printer cache", func(t *testing.T) {
		cfg := &config.AppConfig{StoreDriver: "memory", PrinterCacheTTL: time.Minute}
		store, done, err := OpenStore(ctx, cfg, logger.Discard())
		require.NoError(t, err)
		defer done()

		assert.IsType(t, &cached.PrinterRepository{}, store.Printers)
		assert.NoError(t, store.Pinger.PingContext(ctx))
	})

	t.Run("memory without cache", func(t *testing.T) {
		cfg := &config.AppConfig{StoreDriver: "memory"}
		store, done, err := OpenStore(ctx, cfg, logger.Discard())
		require.NoError(t, err)
		defer done()

		_, isCached := store.Printers.(*cached.PrinterRepository)
		assert.False(t, isCached)
	})

	t.Run("unknown driver", func(t *testing.T) {
		_, _, err := OpenStore(ctx, &config.AppConfig{StoreDriver: "mongo"}, logger.Discard())
		assert.ErrorContains(t, err, `unknown store driver "mongo"`)
	})

	t.Run("postgres without host", func(t *testing.T) {
		_, _, err := OpenStore(ctx, &config.AppConfig{StoreDriver: "postgres"}, logger.Discard())
		assert.ErrorContains(t, err, "connect database")
	})
}

func TestOpenStorage(t *testing.T) {
	exec := resilience.NewExecutor(resilience.DefaultConfig(), logger.Discard())

	t.Run("local", func(t *testing.T) {
		cfg := &config.AppConfig{Storage: config.StorageConfig{Driver: "local", LocalPath: t.TempDir()}}
		objects, err := OpenStorage(context.Background(), cfg, exec)
		require.NoError(t, err)
		assert.IsType(t, &storage.Resilient{}, objects)
	})

	t.Run("minio without endpoint", func(t *testing.T) {
		cfg := &config.AppConfig{Storage: config.StorageConfig{Driver: "minio"}}
		_, err := OpenStorage(context.Background(), cfg, exec)
		assert.ErrorContains(t, err, "minio endpoint is required")
	})

	t.Run("unknown driver", func(t *testing.T) {
		cfg := &config.AppConfig{Storage: config.StorageConfig{Driver: "ftp"}}
		_, err := OpenStorage(context.Background(), cfg, exec)
		assert.Error(t, err)
	})
}

func TestConnectBus_Disabled(t *testing.T) {
	bus, err := ConnectBus(&config.AppConfig{}, "printshop-api", nil, logger.Discard())
	assert.NoError(t, err)
	assert.Nil(t, bus)
}
