// SPDX-License-Identifier: EPL-2.0

// Command wavtomp3d serves the conversion API over HTTP.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ik5/wavtomp3"
	"github.com/ik5/wavtomp3/encoder"
	"github.com/ik5/wavtomp3/internal/api"
	"github.com/ik5/wavtomp3/internal/env"
	"github.com/ik5/wavtomp3/internal/logger"
	"github.com/ik5/wavtomp3/internal/tracing"
	"go.uber.org/zap"
)

const version = "1.0.0"

func main() {
	cfg, err := env.Load(".env")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zl, err := logger.New(cfg.LogLevel, cfg.AppEnv)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	shutdownTracing, err := tracing.Init(context.Background(), tracing.Config{
		Enabled:        cfg.OTELEnabled,
		ServiceName:    "wavtomp3d",
		ServiceVersion: version,
		Endpoint:       cfg.OTELEndpoint,
	})
	if err != nil {
		zl.Warn("failed to initialize OpenTelemetry", zap.Error(err))
		cfg.OTELEnabled = false
	} else if cfg.OTELEnabled {
		zl.Info("OpenTelemetry tracing enabled", zap.String("endpoint", cfg.OTELEndpoint))
	}

	engine, err := encoder.ParseEngine(cfg.Engine)
	if err != nil {
		zl.Fatal("invalid WAVTOMP3_ENGINE", zap.Error(err))
	}

	defaults := wavtomp3.DefaultOptions()
	defaults.Bitrate = cfg.Bitrate
	defaults.Quality = cfg.Quality
	defaults.Engine = engine

	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	h := api.NewHandler(api.Config{
		Defaults:       defaults,
		MaxUploadBytes: cfg.MaxUploadBytes(),
		Version:        version,
	}, zl)
	router := api.NewRouter(h, api.RouterConfig{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		Tracing:        cfg.OTELEnabled,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.AppPort,
		Handler:      router,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		zl.Info("wavtomp3d listening",
			zap.String("addr", srv.Addr),
			zap.String("env", cfg.AppEnv),
			zap.String("engine", engine.String()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("server failed to start", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zl.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zl.Error("server forced to shutdown", zap.Error(err))
	}
	if shutdownTracing != nil {
		if err := shutdownTracing(ctx); err != nil {
			zl.Warn("failed to flush traces", zap.Error(err))
		}
	}

	zl.Info("server exited")
}
