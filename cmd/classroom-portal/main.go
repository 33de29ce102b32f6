package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	_ "github.com/noah-isme/classroom-portal/api/swagger"
	"github.com/noah-isme/classroom-portal/internal/repository"
	"github.com/noah-isme/classroom-portal/internal/router"
	"github.com/noah-isme/classroom-portal/internal/service"
	"github.com/noah-isme/classroom-portal/pkg/config"
	"github.com/noah-isme/classroom-portal/pkg/logger"
	"github.com/noah-isme/classroom-portal/pkg/storage"
)

// @title Classroom Portal
// @version 1.0.0
// @description Lectures, assignments, submissions and grading for admins and students.
// @BasePath /
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	uploads, err := storage.NewLocalStorage(cfg.Uploads.Dir)
	if err != nil {
		logr.Fatal("failed to prepare upload directory", zap.Error(err))
	}

	store, closeStore, err := repository.OpenStore(ctx, cfg, logr)
	if err != nil {
		logr.Fatal("failed to open collection store", zap.String("driver", cfg.Storage.Driver), zap.Error(err))
	}
	defer func() {
		if err := closeStore(); err != nil {
			logr.Warn("failed to close collection store", zap.Error(err))
		}
	}()

	engine := router.New(router.Deps{
		Config:  cfg,
		Logger:  logr,
		Store:   store,
		Uploads: uploads,
		Metrics: service.NewMetricsService(),
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logr.Warn("graceful shutdown failed", zap.Error(err))
		}
	}()

	logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env, "store", cfg.Storage.Driver, "uploads", uploads.Dir())
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
