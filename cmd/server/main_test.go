package main

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"musicroom-web/internal/catalog"
	"musicroom-web/internal/config"
	"musicroom-web/internal/playback"
	"musicroom-web/internal/realtime"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"REDIS_URL", "CATALOG_DSN", "CONFIG_FILE", "ALLOWED_ORIGIN", "SESSION_TTL", "LOG_LEVEL"} {
		t.Setenv(k, "")
	}
	t.Setenv("PORT", "0")
}

func TestAppGraphValidity(t *testing.T) {
	require.NoError(t, fx.ValidateApp(AppOptions))
}

func TestEndToEndStartup(t *testing.T) {
	clearEnv(t)

	app := fx.New(AppOptions, fx.NopLogger)
	require.NoError(t, app.Err())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, app.Start(ctx))
	require.NoError(t, app.Stop(ctx))
}

func TestBuildLogger(t *testing.T) {
	log, err := buildLogger("debug", "console")
	require.NoError(t, err)
	assert.True(t, log.Core().Enabled(zap.DebugLevel))

	log, err = buildLogger("warn", "json")
	require.NoError(t, err)
	assert.False(t, log.Core().Enabled(zap.InfoLevel))

	_, err = buildLogger("loud", "json")
	assert.Error(t, err)
}

func TestSetupPlayback(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	hub := realtime.NewHub(zap.NewNop())
	go hub.Run(ctx)

	t.Run("memory", func(t *testing.T) {
		store, pub, done, err := setupPlayback(ctx, &config.Config{}, hub, zap.NewNop())
		require.NoError(t, err)
		defer done()
		assert.IsType(t, &playback.MemoryStore{}, store)
		assert.IsType(t, &realtime.HubPublisher{}, pub)
	})

	t.Run("redis", func(t *testing.T) {
		mr, err := miniredis.Run()
		require.NoError(t, err)
		defer mr.Close()

		cfg := &config.Config{RedisURL: "redis://" + mr.Addr(), SessionTTL: time.Hour}
		store, pub, done, err := setupPlayback(ctx, cfg, hub, zap.NewNop())
		require.NoError(t, err)
		defer done()
		assert.IsType(t, &playback.RedisStore{}, store)
		assert.IsType(t, &realtime.RedisPublisher{}, pub)
	})

	t.Run("bad url", func(t *testing.T) {
		_, _, _, err := setupPlayback(ctx, &config.Config{RedisURL: "://nope"}, hub, zap.NewNop())
		assert.Error(t, err)
	})
}

func TestSetupCatalogFixture(t *testing.T) {
	src, done, err := setupCatalog(context.Background(), &config.Config{}, zap.NewNop())
	require.NoError(t, err)
	defer done()
	assert.IsType(t, &catalog.MockSource{}, src)
}

func TestSessionsReleaseMemorySnapshots(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := playback.NewMemoryStore()
	m := newSessions(ctx, &config.Config{SessionTTL: -time.Second}, store, zap.NewNop())

	m.Get("abc")
	_, err := playback.NewPlayer(store, "abc", zap.NewNop()).SetVolume(ctx, 10)
	require.NoError(t, err)

	assert.Equal(t, 1, m.Sweep())
	assert.Equal(t, 0, store.Len())
}
