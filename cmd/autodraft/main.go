package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/palemoky/autodraft/internal/champion"
	"github.com/palemoky/autodraft/internal/champselect"
	"github.com/palemoky/autodraft/internal/config"
	"github.com/palemoky/autodraft/internal/engine"
	"github.com/palemoky/autodraft/internal/lcu"
	"github.com/palemoky/autodraft/internal/livegame"
	"github.com/palemoky/autodraft/internal/logger"
)

// discoveryInterval paces the wait-for-client retry loop.
const discoveryInterval = 2 * time.Second

func main() {
	configPath := flag.String("config", "config.yaml", "path to the configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	zlog, err := logger.New(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	zlog = zlog.With(zap.String("run_id", uuid.NewString()))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err = run(ctx, cfg, zlog)
	switch {
	case err == nil:
		// Game started; nothing left to automate.
	case errors.Is(err, context.Canceled):
		zlog.Info("shutdown requested")
	default:
		zlog.Error("autodraft stopped", zap.Error(err))
	}

	_ = zlog.Sync()
	if err != nil && !errors.Is(err, context.Canceled) {
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, zlog *zap.Logger) error {
	creds, err := locateClient(ctx, cfg, zlog)
	if err != nil {
		return err
	}
	zlog.Info("client located", zap.Int("port", creds.Port), zap.Int32("pid", creds.PID))

	client := lcu.NewClient(creds)

	// A bot launched mid-queue should say where the client already is.
	if phase, err := client.GameflowPhase(ctx); err == nil {
		zlog.Info("current gameflow phase", zap.String("phase", phase))
	}

	registry, err := buildRegistry(ctx, cfg, zlog)
	if err != nil {
		return fmt.Errorf("build champion registry: %w", err)
	}
	zlog.Info("champion registry ready", zap.Int("names", registry.Len()))

	bans := champselect.NewPreferenceList(cfg.Bans)
	picks := champselect.NewPreferenceList(cfg.Picks)
	warnUnknown(zlog, registry, "bans", bans)
	warnUnknown(zlog, registry, "picks", picks)

	sock, err := lcu.DialSocket(creds, zlog)
	if err != nil {
		return err
	}
	defer sock.Close()

	detector := livegame.New(cfg.LiveGame.Addr, cfg.LiveGame.PollInterval(), zlog)
	resolver := champselect.NewResolver(registry, bans, picks, zlog)

	loop := engine.New(engine.Deps{
		Client:   client,
		Resolver: resolver,
		Checker:  detector,
		Log:      zlog,
	})

	zlog.Info("autodraft ready",
		zap.Strings("bans", bans.Names()),
		zap.Strings("picks", picks.Names()))

	return loop.Run(ctx, sock.Events())
}

// locateClient resolves client credentials: explicit config wins, then the
// install-dir lockfile, then process discovery retried until the client
// shows up.
func locateClient(ctx context.Context, cfg *config.Config, zlog *zap.Logger) (lcu.Credentials, error) {
	if cfg.Client.Port != 0 && cfg.Client.Token != "" {
		return lcu.Credentials{Port: cfg.Client.Port, Token: cfg.Client.Token}, nil
	}

	if cfg.Client.Lockfile != "" {
		creds, err := lcu.ParseLockfile(cfg.Client.Lockfile)
		if err == nil {
			return creds, nil
		}
		zlog.Warn("lockfile unusable, falling back to process discovery", zap.Error(err))
	}

	return lcu.WaitFor(ctx, discoveryInterval, zlog)
}

// buildRegistry assembles the champion name table, with the Redis cache in
// front of Data Dragon when enabled. An unreachable Redis only costs the
// cache, never the start.
func buildRegistry(ctx context.Context, cfg *config.Config, zlog *zap.Logger) (*champion.Registry, error) {
	provider := &champion.Provider{DD: champion.NewDataDragon(), Log: zlog}

	if cfg.Cache.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Cache.Addr,
			Password: cfg.Cache.Password,
			DB:       cfg.Cache.DB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			zlog.Warn("redis unreachable, champion cache disabled", zap.Error(err))
		} else {
			provider.Cache = champion.NewCache(rdb)
		}
	}

	return provider.Registry(ctx)
}

// warnUnknown flags preference entries the registry cannot resolve. They
// would be skipped silently at draft time; a typo is better caught at
// startup.
func warnUnknown(zlog *zap.Logger, registry *champion.Registry, list string, prefs champselect.PreferenceList) {
	for _, name := range prefs.Names() {
		if _, ok := registry.Lookup(name); !ok {
			zlog.Warn("champion name not in registry",
				zap.String("list", list), zap.String("name", name))
		}
	}
}
