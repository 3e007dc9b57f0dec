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

	"github.com/sohamshetty07/oraculum-core/internal/config"
	"github.com/sohamshetty07/oraculum-core/internal/simstub"
	"github.com/sohamshetty07/oraculum-core/pkg/middleware"
)

const version = "1.0.0"

func main() {
	cfg := config.Load()
	config.InitLogger(cfg)

	slog.Info("Starting Oraculum stub backend", "version", version)

	stub := simstub.NewServer(simstub.Options{
		StepInterval: cfg.StubStepInterval,
		Workers:      cfg.StubWorkers,
	})

	server := &http.Server{
		Addr: ":" + cfg.StubPort,
		Handler: stub.Router(middleware.CORSConfig{
			AllowedOrigins: cfg.CORSAllowedOrigins,
			AllowedMethods: cfg.CORSAllowedMethods,
			AllowedHeaders: cfg.CORSAllowedHeaders,
		}),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		slog.Info("Stub backend listening", "port", cfg.StubPort)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("HTTP server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down stub backend")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Shutdown failed", "error", err)
	}
	slog.Info("Stub backend stopped")
}
