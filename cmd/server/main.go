package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/me/schedopt/internal/config"
	"github.com/me/schedopt/internal/logging"
	"github.com/me/schedopt/internal/server"
	"github.com/me/schedopt/internal/solver"
)

func main() {
	cfg := config.DefaultServerConfig()

	flag.StringVar(&cfg.Addr, "addr", cfg.Addr, "Listen address")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	flag.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (text, json)")
	flag.Int64Var(&cfg.Seed, "seed", cfg.Seed, "Default annealing seed (instances may override)")
	flag.IntVar(&cfg.Iterations, "iterations", cfg.Iterations, "Default annealing iteration budget (instances may override)")
	debug := flag.Bool("debug", false, "Shorthand for --log-level=debug")

	flag.Parse()

	if *debug {
		cfg.LogLevel = "debug"
	}

	logger := logging.New(cfg.LogLevel, cfg.LogFormat)

	optimizer := solver.NewAnnealing(cfg.Params(), logger)
	srv := server.New(cfg, optimizer, logger)

	httpServer := &http.Server{
		Addr:    cfg.Addr,
		Handler: srv.Handler(),
	}

	// Graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("server starting", "addr", cfg.Addr, "seed", cfg.Seed, "iterations", cfg.Iterations)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		fmt.Fprintf(os.Stderr, "shutdown error: %v\n", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}
