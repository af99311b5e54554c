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

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"ivarberg/internal/config"
	"ivarberg/internal/logging"
	"ivarberg/internal/metrics"
	"ivarberg/internal/site"
)

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("ivarberg stopped")
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logging.SetGlobalLogger(logging.New(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	}))
	for _, warning := range cfg.Warnings {
		log.Warn().Msg(warning)
	}

	siteCfg, err := site.Load(cfg.SiteConfigPath)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	data, err := openBackend(ctx, cfg)
	if err != nil {
		return err
	}
	defer data.close()

	m := metrics.New()

	scheduler := cron.New()
	limiterStore, closeLimiter, err := newLimiterStore(ctx, cfg.RateLimit, scheduler, m)
	if err != nil {
		return err
	}
	defer closeLimiter()
	scheduler.Start()
	defer scheduler.Stop()

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           newHTTPHandler(cfg, data, limiterStore, siteCfg, m),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info().
			Str("addr", server.Addr).
			Str("backend", data.name).
			Str("env", cfg.Env).
			Msg("ivarberg API listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Info().Msg("server exited")
	return nil
}
