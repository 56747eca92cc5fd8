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

	"github.com/400brands/brand-doctor/internal/bootstrap"
	"github.com/400brands/brand-doctor/internal/config"
	"github.com/400brands/brand-doctor/internal/infra/httpserver"
	"github.com/400brands/brand-doctor/internal/middleware"
)

func main() {
	path := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}

	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load error: %v\n", err)
		os.Exit(1)
	}

	logger := bootstrap.NewLogger(cfg, os.Stdout)
	ctx := logger.WithContext(context.Background())

	app, err := bootstrap.Build(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("startup failed")
	}
	defer app.Close()

	proxies, err := middleware.ParseTrustedProxies(cfg.Server.TrustedProxies)
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid trusted proxies")
	}

	limiter := middleware.NewRateLimiter(cfg.Server.RateLimit.Capacity, cfg.Server.RateLimit.RefillRate)
	done := make(chan struct{})
	defer close(done)
	go limiter.Run(done, 5*time.Minute)

	handler := httpserver.NewRouter(httpserver.Deps{
		Brand:          app.Brand,
		Waitlist:       app.Waitlist,
		Leads:          app.Leads,
		Registry:       app.Registry,
		Logger:         logger,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		AdminKeys:      cfg.Server.AdminKeys,
		TrustedProxies: proxies,
		Limiter:        limiter,
		Health:         app.Health,
	})

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		// analyses can take as long as the AI timeout
		WriteTimeout: cfg.AI.Timeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", addr).Str("db", cfg.Database.Driver).Bool("ai", cfg.Analysis.UseAI).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	logger.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("shutdown error")
	}
}
