// Command server starts the pharmacy back-office HTTP API.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/farmaplus/pharmacy-api/internal/api"
	"github.com/farmaplus/pharmacy-api/internal/infrastructure/config"
	"github.com/farmaplus/pharmacy-api/internal/infrastructure/db/postgres"
	"github.com/farmaplus/pharmacy-api/internal/infrastructure/db/redis"
	"github.com/farmaplus/pharmacy-api/internal/migrate"
	"github.com/farmaplus/pharmacy-api/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})
	log.Info().Str("env", cfg.Env).Str("port", cfg.Port).Msg("starting")

	if err := migrate.Up(ctx, cfg.Postgres.DSN); err != nil {
		log.Fatal().Err(err).Msg("migrations failed")
	}

	db, err := postgres.Connect(ctx, cfg.Postgres.DSN)
	if err != nil {
		log.Fatal().Err(err).Msg("postgres connect failed")
	}
	defer db.Close()

	rdb, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connect failed")
	}
	defer rdb.Close()

	e := api.NewRouter(db, rdb, api.Config{
		JWTSecret: cfg.JWTSecret,
		TokenTTL:  cfg.TokenTTL,
	}, log)

	errCh := make(chan error, 1)
	go func() {
		errCh <- e.Start(":" + cfg.Port)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown error")
		}
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}

	log.Info().Msg("shutdown complete")
}
