package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/futtest/voting-system/internal/api"
	"github.com/futtest/voting-system/internal/core/ports"
	"github.com/futtest/voting-system/internal/core/service"
	"github.com/futtest/voting-system/internal/infrastructure/db/file"
	"github.com/futtest/voting-system/internal/infrastructure/db/redis"
	"github.com/futtest/voting-system/internal/infrastructure/session"
	"github.com/futtest/voting-system/internal/pkg/config"
	"github.com/futtest/voting-system/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := os.MkdirAll(filepath.Dir(cfg.UsersFile), 0o700); err != nil {
		log.Fatal().Err(err).Msg("create data directory")
	}
	repo := file.NewUserRepository(cfg.UsersFile)

	// The server must not accept requests without a known administrative
	// account, so a bootstrap failure here is fatal.
	bootstrap := service.NewBootstrapService(repo, cfg.CredentialsFile, cfg.BcryptCost, log)
	if err := bootstrap.EnsureSuperAdmin(ctx); err != nil {
		log.Fatal().Err(err).Msg("super admin bootstrap failed")
	}

	var (
		sessions ports.SessionStore
		rdb      *goredis.Client
	)
	switch cfg.Session.Backend {
	case "redis":
		var err error
		rdb, err = redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			log.Fatal().Err(err).Msg("redis connection failed")
		}
		defer rdb.Close()
		sessions = redis.NewSessionStore(rdb, cfg.Session.TTL)
	default:
		sessions = session.NewMemoryStore(cfg.Session.TTL)
	}

	e := api.NewRouter(cfg, repo, sessions, rdb, log)

	go func() {
		log.Info().Str("port", cfg.Port).Str("session_backend", cfg.Session.Backend).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
