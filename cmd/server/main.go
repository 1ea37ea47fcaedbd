package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/skopeo/backend/internal/config"
	"github.com/skopeo/backend/internal/handler"
	"github.com/skopeo/backend/internal/logging"
	"github.com/skopeo/backend/internal/repository"
	"github.com/skopeo/backend/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal("invalid configuration", "error", err)
	}
	logger := logging.Setup(cfg.LogLevel)

	connectCtx, cancelConnect := context.WithTimeout(context.Background(), 10*time.Second)
	store, err := repository.Open(connectCtx, cfg.DatabaseURL, logger)
	cancelConnect()
	if err != nil {
		logging.Fatal("failed to open storage", "error", err)
	}
	defer store.Close()

	contactService := service.NewContactService(store)

	h := handler.New(store, cfg.FrontendURL, cfg.Environment)
	contactHandler := handler.NewContactHandler(contactService)

	var limiter *handler.RateLimiter
	if cfg.ContactRatePerMinute > 0 {
		limiter = handler.NewRateLimiter(cfg.ContactRatePerMinute)
	}

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      handler.Routes(h, contactHandler, limiter, logger),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	go func() {
		logger.Info("server listening", "addr", server.Addr, "backend", store.Kind(), "environment", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
}
