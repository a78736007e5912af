// README: Entry point; loads config, wires the planning pipeline and serves the HTTP API.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"tripmind/internal/config"
	httptransport "tripmind/internal/http"
	"tripmind/internal/http/middleware"
	"tripmind/internal/infra"
	"tripmind/internal/observability"
	"tripmind/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx)
	stop()
	if err != nil {
		log.Error().Err(err).Msg("tripmind api failed")
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := observability.NewLogger(cfg.Env)
	log.Logger = logger

	invoker := service.NewInvoker(cfg, logger)
	planner, err := service.New(cfg, invoker, logger)
	if err != nil {
		return fmt.Errorf("wire planner: %w", err)
	}

	var limiter *middleware.RateLimiter
	if cfg.Redis.Addr != "" {
		rdb, err := infra.NewRedis(ctx, cfg.Redis.Addr)
		if err != nil {
			return fmt.Errorf("redis init: %w", err)
		}
		defer rdb.Close()
		limiter = middleware.NewRateLimiter(rdb, cfg.RateLimit.Limit, cfg.RateLimit.Window, logger)
	} else {
		logger.Warn().Msg("TRIPMIND_REDIS_ADDR not set, rate limiting disabled")
	}

	handler := httptransport.NewServer(httptransport.ServerDeps{
		Planner:     planner,
		PlanTimeout: cfg.HTTP.PlanTimeout,
		Currency:    cfg.Planning.Currency,
		CORSOrigins: cfg.HTTP.CORSOrigins,
		Limiter:     limiter,
		Registry:    observability.InitRegistry(),
		Log:         logger,
	})

	server := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           handler.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("http shutdown")
		}
	}()

	logger.Info().Str("addr", cfg.HTTP.Addr).Str("env", cfg.Env).Msg("tripmind api listening")
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}
	logger.Info().Msg("tripmind api stopped")
	return nil
}
