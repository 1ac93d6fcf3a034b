package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"musicroom-web/internal/catalog"
	"musicroom-web/internal/config"
	"musicroom-web/internal/playback"
	"musicroom-web/internal/realtime"
	"musicroom-web/internal/session"
	"musicroom-web/internal/web"
)

const (
	sweepEvery   = time.Minute
	stopTimeout  = 10 * time.Second
	readHdrLimit = 10 * time.Second
)

// AppOptions is the full dependency graph of the web client.
var AppOptions = fx.Options(
	fx.Provide(
		config.Load,
		newLogger,
		newAppContext,
		newHub,
		newPlayback,
		newCatalog,
		newSessions,
		newWebServer,
		newHTTPServer,
	),
	fx.Invoke(registerHooks),
)

func main() {
	app := fx.New(
		AppOptions,
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
	)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := app.Start(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "musicroom-web: %v\n", err)
		os.Exit(1)
	}

	<-ctx.Done()

	stopCtx, stop := context.WithTimeout(context.Background(), stopTimeout)
	defer stop()
	if err := app.Stop(stopCtx); err != nil {
		fmt.Fprintf(os.Stderr, "musicroom-web: %v\n", err)
		os.Exit(1)
	}
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	return buildLogger(cfg.LogLevel, cfg.LogFormat)
}

func buildLogger(level, format string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}
	zc := zap.NewProductionConfig()
	if format == "console" {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = lvl
	return zc.Build()
}

// newAppContext lives from construction until the app stops; background
// loops (hub, subscriber, session sweeper) run under it.
func newAppContext(lc fx.Lifecycle) context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			cancel()
			return nil
		},
	})
	return ctx
}

func newHub(ctx context.Context, log *zap.Logger) *realtime.Hub {
	hub := realtime.NewHub(log.Named("hub"))
	go hub.Run(ctx)
	return hub
}

func newPlayback(ctx context.Context, lc fx.Lifecycle, cfg *config.Config, hub *realtime.Hub, log *zap.Logger) (playback.Store, playback.Publisher, error) {
	store, pub, closeFn, err := setupPlayback(ctx, cfg, hub, log)
	if err != nil {
		return nil, nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			closeFn()
			return nil
		},
	})
	return store, pub, nil
}

func newCatalog(ctx context.Context, lc fx.Lifecycle, cfg *config.Config, log *zap.Logger) (catalog.Source, error) {
	src, closeFn, err := setupCatalog(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			closeFn()
			return nil
		},
	})
	return src, nil
}

func newSessions(ctx context.Context, cfg *config.Config, store playback.Store, log *zap.Logger) *session.Manager {
	m := session.NewManager(cfg.SessionTTL, cfg.SecureCookies, log.Named("session"))
	// Redis snapshots expire on their own ttl; memory ones go with the session.
	if mem, ok := store.(*playback.MemoryStore); ok {
		m.OnExpire(mem.Delete)
	}
	go m.Run(ctx, sweepEvery)
	return m
}

type webParams struct {
	fx.In

	Ctx       context.Context
	Config    *config.Config
	Sessions  *session.Manager
	Store     playback.Store
	Publisher playback.Publisher
	Source    catalog.Source
	Hub       *realtime.Hub
	Log       *zap.Logger
}

func newWebServer(p webParams) (*web.Server, error) {
	return web.NewServer(p.Ctx, web.Deps{
		Sessions:      p.Sessions,
		Store:         p.Store,
		Source:        p.Source,
		Publisher:     p.Publisher,
		Hub:           p.Hub,
		AllowedOrigin: p.Config.AllowedOrigin,
		Log:           p.Log,
	})
}

func newHTTPServer(cfg *config.Config, srv *web.Server) *http.Server {
	return &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           srv.Router(srv.Middlewares()...),
		ReadHeaderTimeout: readHdrLimit,
	}
}

func registerHooks(lc fx.Lifecycle, srv *http.Server, log *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return err
			}
			log.Info("musicroom-web listening", zap.String("addr", ln.Addr().String()))
			go func() {
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("http server", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("shutting down")
			return srv.Shutdown(ctx)
		},
	})
}

// setupPlayback keeps snapshots in Redis and fans state out through its
// pub/sub when REDIS_URL is set, and in memory otherwise.
func setupPlayback(ctx context.Context, cfg *config.Config, hub *realtime.Hub, log *zap.Logger) (playback.Store, playback.Publisher, func(), error) {
	if cfg.RedisURL == "" {
		log.Info("playback store: memory")
		return playback.NewMemoryStore(), realtime.NewHubPublisher(hub, log), func() {}, nil
	}

	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}
	rdb := redis.NewClient(opt)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, nil, nil, fmt.Errorf("redis ping: %w", err)
	}

	sub, err := realtime.Subscribe(ctx, rdb, hub, log.Named("subscriber"))
	if err != nil {
		_ = rdb.Close()
		return nil, nil, nil, fmt.Errorf("redis subscribe: %w", err)
	}
	go sub.Run(ctx)

	log.Info("playback store: redis", zap.String("addr", opt.Addr))
	return playback.NewRedisStore(rdb, cfg.SessionTTL), realtime.NewRedisPublisher(rdb, log), func() { _ = rdb.Close() }, nil
}

// setupCatalog reads the catalog from Postgres when CATALOG_DSN is set,
// migrating and optionally seeding it, and serves the demo fixture otherwise.
func setupCatalog(ctx context.Context, cfg *config.Config, log *zap.Logger) (catalog.Source, func(), error) {
	if cfg.CatalogDSN == "" {
		f := catalog.DefaultFixture()
		if err := f.Validate(); err != nil {
			return nil, nil, fmt.Errorf("catalog fixture: %w", err)
		}
		log.Info("catalog: in-memory fixture")
		return catalog.NewMockSource(f, log.Named("catalog")), func() {}, nil
	}

	pool, err := pgxpool.New(ctx, cfg.CatalogDSN)
	if err != nil {
		return nil, nil, fmt.Errorf("catalog db: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("catalog ping: %w", err)
	}
	if err := catalog.Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, nil, err
	}
	if cfg.CatalogSeed {
		if err := catalog.Seed(ctx, pool, catalog.DefaultFixture()); err != nil {
			pool.Close()
			return nil, nil, err
		}
		log.Info("catalog seeded")
	}
	return catalog.NewPostgresSource(pool, log.Named("catalog")), pool.Close, nil
}
