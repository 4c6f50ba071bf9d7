package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/clientportal/intake-gateway/internal/api"
	"github.com/clientportal/intake-gateway/internal/core/ports"
	"github.com/clientportal/intake-gateway/internal/core/service"
	"github.com/clientportal/intake-gateway/internal/core/session"
	"github.com/clientportal/intake-gateway/internal/core/validate"
	"github.com/clientportal/intake-gateway/internal/infrastructure/backend"
	"github.com/clientportal/intake-gateway/internal/infrastructure/config"
	"github.com/clientportal/intake-gateway/internal/infrastructure/tokenstore"
	"github.com/clientportal/intake-gateway/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		boot := logger.Init(logger.Options{})
		boot.Fatal().Err(err).Msg("loading configuration")
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	slot, closeSlot, err := buildTokenSlot(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("opening token store")
	}
	defer closeSlot()

	sessions := session.NewStore(ctx, slot, log)
	sessions.Subscribe(func(s session.State) {
		log.Info().Stringer("state", s).Msg("admin session changed")
	})

	client := backend.NewClient(cfg.Backend.BaseURL, cfg.Backend.Timeout, sessions, log)
	submissions := backend.NewSubmissionGateway(client)
	admin := backend.NewAdminGateway(client)

	router := api.NewRouter(sessions, api.Services{
		Intake:    service.NewIntakeService(submissions, validate.New(), log),
		Auth:      service.NewAuthService(admin, sessions, log),
		Dashboard: service.NewDashboardService(admin, log),
	}, log)

	go func() {
		log.Info().
			Str("port", cfg.Port).
			Str("backend", cfg.Backend.BaseURL).
			Str("session_store", cfg.Session.Store).
			Msg("portal gateway listening")
		if err := router.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := router.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

// buildTokenSlot picks the durable slot backing the admin session. The file
// slot needs no teardown; the redis slot returns its connection closer.
func buildTokenSlot(ctx context.Context, cfg *config.Config) (ports.TokenSlot, func(), error) {
	switch cfg.Session.Store {
	case "redis":
		slot, err := tokenstore.NewRedis(ctx, tokenstore.RedisConfig{
			Addr: cfg.Redis.Addr,
			DB:   cfg.Redis.DB,
		}, cfg.Session.TokenKey)
		if err != nil {
			return nil, nil, err
		}
		return slot, func() { _ = slot.Close() }, nil
	default:
		return tokenstore.NewFile(cfg.Session.TokenFile), func() {}, nil
	}
}
