// backend/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aTrapDeer/portfolio/internal/cache"
	"github.com/aTrapDeer/portfolio/internal/config"
	"github.com/aTrapDeer/portfolio/internal/revalidate"
	"github.com/aTrapDeer/portfolio/internal/seed"
	"github.com/aTrapDeer/portfolio/internal/server"
	"github.com/aTrapDeer/portfolio/internal/store"
	"github.com/aTrapDeer/portfolio/internal/util"
)

func main() {
	configPath := flag.String("config", "", "optional YAML config file")
	seedFlag := flag.String("seed", "", `seed the database: "default" for the built-in content or a YAML file`)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	logger := util.InitLogger(cfg.LogLevel)

	st, err := openStore(cfg)
	if err != nil {
		log.Fatalf("failed to open store: %v", err)
	}
	defer st.Close()

	if err := runSeed(st, cfg, *seedFlag); err != nil {
		log.Fatalf("failed to seed: %v", err)
	}

	cached, closeCache := openCache(cfg, st)
	defer closeCache()

	notifier := revalidate.New(cfg.RevalidationURL, cfg.RevalidationSecret)
	if !notifier.Enabled() {
		slog.Info("revalidation disabled (REVALIDATION_URL not set)")
	}
	if cfg.AdminRoutes {
		slog.Warn("admin routes enabled without authentication")
	}

	api := server.New(server.Config{
		Store:          cached,
		Revalidator:    notifier,
		AdminRoutes:    cfg.AdminRoutes,
		AllowedOrigins: cfg.AllowedOrigins(),
	})

	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:         addr,
		Handler:      api.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown error", "err", err)
		}
	}()

	slog.Info("portfolio backend listening", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server error", "err", err)
	}
	slog.Info("portfolio backend stopped")
}

func openStore(cfg config.Config) (store.Store, error) {
	if cfg.InMemory() {
		slog.Warn("using in-memory store; data is lost on restart")
		return store.NewMemoryStore(), nil
	}
	gs, err := store.Open(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	return gs, nil
}

// openCache wraps st with the list cache: Redis when REDIS_ADDR is set and
// reachable, otherwise in-process. A zero CACHE_TTL disables caching.
func openCache(cfg config.Config, st store.Store) (store.Store, func()) {
	if cfg.CacheTTL == 0 {
		return st, func() {}
	}
	if cfg.RedisAddr != "" {
		rc := cache.NewRedis(cfg.RedisAddr, cfg.RedisPassword, "portfolio", cfg.CacheTTL)
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		err := rc.Ping(ctx)
		if err == nil {
			slog.Info("using redis cache", "addr", cfg.RedisAddr)
			return store.NewCached(st, rc), func() { _ = rc.Close() }
		}
		slog.Warn("redis unavailable, using in-process cache", "addr", cfg.RedisAddr, "err", err)
		_ = rc.Close()
	}
	return store.NewCached(st, cache.NewMemory(cfg.CacheTTL)), func() {}
}

func runSeed(st store.Store, cfg config.Config, flagValue string) error {
	source := flagValue
	if source == "" {
		source = cfg.SeedFile
	}
	if source == "" {
		return nil
	}
	data := seed.Default()
	if source != "default" {
		var err error
		if data, err = seed.LoadFile(source); err != nil {
			return err
		}
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	rep, err := seed.Run(ctx, st, data, seed.Options{})
	if err != nil {
		return err
	}
	slog.Info("seeded database", "source", source,
		"users", rep.Users, "skills", rep.Skills, "projects", rep.Projects, "milestones", rep.Milestones)
	return nil
}
