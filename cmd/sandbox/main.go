package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/kazino55/client/internal/config"
	"github.com/kazino55/client/internal/logger"
	"github.com/kazino55/client/internal/sandbox"
)

func main() {
	// .env is optional; env vars override it either way.
	_ = godotenv.Load(".env")

	cfg, err := config.New()
	if err != nil {
		logger.L().Fatalw("load configuration", "error", err)
	}
	if err := logger.Init(cfg.Env); err != nil {
		os.Exit(1)
	}
	defer logger.Sync()

	server := sandbox.New(sandbox.Options{
		JWTSecret:  cfg.Sandbox.JWTSecret,
		AccessTTL:  cfg.Sandbox.AccessTokenTTL(),
		RefreshTTL: cfg.Sandbox.RefreshTokenTTL(),
	})

	srv := &http.Server{
		Addr:              cfg.Sandbox.Address,
		Handler:           server.Router(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		logger.L().Infow("sandbox backend starting", "addr", cfg.Sandbox.Address)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.L().Fatalw("sandbox backend failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.L().Infow("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.L().Errorw("forced shutdown", "error", err)
	}
}
