package main

import (
	"context"
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"

	"github.com/randomtoy/arcana-go/internal/adapters/catalog"
	"github.com/randomtoy/arcana-go/internal/adapters/history"
	httpadapter "github.com/randomtoy/arcana-go/internal/adapters/http"
	"github.com/randomtoy/arcana-go/internal/adapters/llm/openrouter"
	"github.com/randomtoy/arcana-go/internal/adapters/spreads"
	"github.com/randomtoy/arcana-go/internal/app"
	"github.com/randomtoy/arcana-go/internal/config"
	"github.com/randomtoy/arcana-go/internal/engine"
	"github.com/randomtoy/arcana-go/internal/ports"
)

// stdRNG delegates to math/rand (auto-seeded).
type stdRNG struct{}

func (stdRNG) Intn(n int) int { return rand.Intn(n) }

var serveRulesPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the influence engine HTTP API",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runServe(serveRulesPath)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveRulesPath, "rules", "", "YAML file with rule parameter overrides")
}

func runServe(rulesPath string) error {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	ruleCfg := engine.DefaultConfig()
	if rulesPath != "" {
		ruleCfg, err = engine.LoadConfigFile(rulesPath)
		if err != nil {
			return err
		}
	}
	eng, err := engine.New(ruleCfg, logger)
	if err != nil {
		return err
	}

	var renderer ports.Renderer
	if cfg.Renderer == "openrouter" {
		renderer = openrouter.NewClient(
			&http.Client{Timeout: cfg.LLMTimeout},
			cfg.OpenRouterAPIKey,
			cfg.OpenRouterBaseURL,
			cfg.LLMModel,
			cfg.LLMFallbackModels,
			logger,
		)
	}

	var store ports.ReadingStore
	if cfg.HistoryDBPath != "" {
		sqlStore, err := history.Open(cfg.HistoryDBPath, logger)
		if err != nil {
			return err
		}
		defer sqlStore.Close()
		store = sqlStore
	}

	svc := app.NewReadingService(
		catalog.NewEmbeddedStore(),
		spreads.NewEmbeddedStore(),
		eng,
		renderer,
		store,
		stdRNG{},
		logger,
	)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(httpadapter.RequestIDMiddleware())
	e.Use(httpadapter.LoggingMiddleware(logger))

	handler := httpadapter.NewHandler(svc, cfg.DeckID)
	handler.Register(e)

	// Graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		logger.Info("starting server", "addr", cfg.HTTPAddr)
		if err := e.Start(cfg.HTTPAddr); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
	return nil
}
