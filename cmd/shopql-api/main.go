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

	"github.com/joho/godotenv"

	"github.com/shopql/shopql/internal/api"
	"github.com/shopql/shopql/internal/ask"
	"github.com/shopql/shopql/internal/auth"
	"github.com/shopql/shopql/internal/config"
	"github.com/shopql/shopql/internal/observability"
	"github.com/shopql/shopql/internal/query/duckdb"
	"github.com/shopql/shopql/internal/synth"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadFromEnv("shopql-api")
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg, os.Stdout)

	db, err := duckdb.Open(cfg.Store.Path)
	if err != nil {
		logger.Error("failed to open store", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()
	executor := duckdb.NewExecutor(db, duckdb.Options{ReadOnly: cfg.Store.ReadOnly})

	synthesizer, closeSynth, err := newSynthesizer(context.Background(), cfg)
	if err != nil {
		logger.Error("failed to initialize sql synthesizer", slog.Any("error", err))
		os.Exit(1)
	}
	defer closeSynth()

	service := &ask.Service{Synth: synthesizer, Executor: executor, Logger: logger}

	deps := api.Dependencies{
		Logger:            logger,
		Ask:               service,
		Readiness:         db.PingContext,
		DependencyTimeout: time.Second,
	}
	if cfg.Auth.Required {
		deps.AuthMiddleware = auth.Middleware(logger, auth.NewStaticAPIKeyValidator(cfg.Auth.StaticKeys))
	}

	handler := api.NewHandler(cfg, deps)
	server := &http.Server{
		Addr:         cfg.HTTP.Address,
		Handler:      handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("starting api server", slog.String("addr", cfg.HTTP.Address))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("api server failed", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	logger.Info("shutting down api server")
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", slog.Any("error", err))
		_ = server.Close()
		os.Exit(1)
	}
}

func newSynthesizer(ctx context.Context, cfg config.Config) (synth.Synthesizer, func(), error) {
	switch cfg.AI.Provider {
	case "openai":
		synthesizer, err := synth.NewOpenAISynthesizer(synth.OpenAIConfig{
			BaseURL:     cfg.AI.BaseURL,
			APIKey:      cfg.AI.APIKey,
			Model:       cfg.AI.Model,
			Temperature: cfg.AI.Temperature,
			Timeout:     cfg.AI.Timeout,
		})
		if err != nil {
			return nil, nil, err
		}
		return synthesizer, func() {}, nil
	default:
		synthesizer, err := synth.NewGeminiSynthesizer(ctx, synth.GeminiConfig{
			APIKey:      cfg.AI.APIKey,
			Model:       cfg.AI.Model,
			Temperature: cfg.AI.Temperature,
			Timeout:     cfg.AI.Timeout,
		})
		if err != nil {
			return nil, nil, err
		}
		return synthesizer, func() { _ = synthesizer.Close() }, nil
	}
}
