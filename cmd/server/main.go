package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"itemrange/internal/api"
	"itemrange/internal/config"
	"itemrange/internal/inventory"
	"itemrange/internal/logging"
)

const (
	readTimeout  = 5 * time.Second
	writeTimeout = 30 * time.Second
	idleTimeout  = 60 * time.Second
	shutdownWait = 5 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("unable to load config: %v", err)
	}

	logger := logging.New(os.Stdout, logging.ParseLevel(cfg.LogLevel))
	slog.SetDefault(logger)

	ctx := context.Background()
	pool, err := inventory.NewPool(ctx, cfg.ConnString())
	if err != nil {
		logger.Error("unable to initialize inventory pool", "error", err.Error())
		os.Exit(1)
	}
	defer pool.Close()

	loader := inventory.NewLoader(pool)
	pinger := inventory.NewPinger(pool)
	handler := api.NewHandler(loader, pinger, logger)

	addr := ":" + cfg.Port
	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: readTimeout,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}

	stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err, ok := <-serverErr:
		if ok && err != nil {
			logger.Error("server stopped", "error", err.Error())
			os.Exit(1)
		}
		return
	case <-stopCtx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownWait)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err.Error())
		os.Exit(1)
	}

	if err, ok := <-serverErr; ok && err != nil {
		logger.Error("server stopped", "error", err.Error())
		os.Exit(1)
	}

	logger.Info("server stopped")
}
