package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/babysteps/babysteps/db"
	"github.com/babysteps/babysteps/internal/api"
	"github.com/babysteps/babysteps/internal/assistant"
	"github.com/babysteps/babysteps/internal/auth"
	"github.com/babysteps/babysteps/internal/config"
	"github.com/babysteps/babysteps/internal/knowledge"
	"github.com/babysteps/babysteps/internal/log"
	"github.com/babysteps/babysteps/internal/observability"
	"github.com/babysteps/babysteps/internal/store"
)

// runServe initializes and starts the HTTP API server.
func runServe() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if err = cfg.ValidateServe(); err != nil {
		return fmt.Errorf("validating config: %w", err)
	}

	addr, err := parseServeAddr(cfg.Addr)
	if err != nil {
		return fmt.Errorf("parsing address: %w", err)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)
	logger.Info("starting babysteps API server", "version", AppVersion)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if cfg.Tracing.Enabled {
		shutdown, err := observability.Setup(ctx, observability.Config{
			Endpoint:    cfg.Tracing.AgentHost,
			Environment: cfg.Tracing.Environment,
			ServiceName: cfg.Tracing.ServiceName,
		}, logger)
		if err != nil {
			return fmt.Errorf("setting up tracing: %w", err)
		}
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				logger.Warn("flushing traces", "error", err)
			}
		}()
	}

	if err := db.Migrate(cfg.PostgresURL()); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	pool, err := pgxpool.New(ctx, cfg.PostgresConnectionString())
	if err != nil {
		return fmt.Errorf("creating connection pool: %w", err)
	}
	defer pool.Close()

	st, err := store.New(pool, logger.With("component", "store"))
	if err != nil {
		return fmt.Errorf("creating store: %w", err)
	}

	kbLogger := logger.With("component", "knowledge")
	matcher := knowledge.NewMatcher(
		knowledge.NewLoader(cfg.FoodKBPath, kbLogger),
		knowledge.NewLoader(cfg.ParentingKBPath, kbLogger),
		kbLogger,
	)

	// The LLM assistant is optional: without an API key the LLM-backed
	// endpoints degrade to their conservative fallbacks.
	var gen api.Generator
	if cfg.GeminiAPIKey != "" {
		client, err := assistant.New(ctx, cfg.GeminiAPIKey, cfg.ModelName, logger.With("component", "assistant"))
		if err != nil {
			return fmt.Errorf("creating assistant: %w", err)
		}
		gen = client
	} else {
		logger.Warn("no Gemini API key configured, LLM endpoints will return fallbacks")
	}

	srv, err := api.NewServer(api.ServerConfig{
		Logger:      logger.With("component", "api"),
		Store:       st,
		Matcher:     matcher,
		Tokens:      auth.NewTokenIssuer([]byte(cfg.JWTSecret)),
		Assistant:   gen,
		Pool:        pool,
		CORSOrigins: cfg.CORSOrigins,
		TrustProxy:  cfg.TrustProxy,
		RateBurst:   cfg.RateBurst,
		RatePerSec:  cfg.RatePerSec,
	})
	if err != nil {
		return fmt.Errorf("creating API server: %w", err)
	}

	return srv.Run(ctx, addr)
}

// newLogger builds the process logger from config. The DEBUG environment
// variable forces debug level regardless of config.
func newLogger(cfg *config.Config) log.Logger {
	level := slog.LevelInfo
	switch strings.ToLower(cfg.LogLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	if os.Getenv("DEBUG") != "" {
		level = slog.LevelDebug
	}
	return log.New(log.Config{Level: level, JSON: cfg.LogJSON})
}
