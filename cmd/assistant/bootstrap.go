package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"ib-assistant/internal/actionlog"
	"ib-assistant/internal/broker/ibkr"
	"ib-assistant/internal/broker/ibkrobs"
	"ib-assistant/internal/interfaces"
	"ib-assistant/internal/llm/llmobs"
	"ib-assistant/internal/llm/noop"
	"ib-assistant/internal/llm/openai"
	"ib-assistant/internal/logger"
	"ib-assistant/internal/news"
	"ib-assistant/internal/store"
	"ib-assistant/internal/tools"
	"ib-assistant/internal/trace"

	"github.com/joho/godotenv"
)

// initializeSystem initializes the logger and tracer
func initializeSystem() error {
	// Load environment variables
	_ = godotenv.Load()

	// Initialize logger
	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	// Initialize tracer
	if err := trace.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize tracer: %v\n", err)
	}

	return nil
}

// loadConfig loads and returns the configuration
func loadConfig(ctx context.Context) (*store.Config, error) {
	cfg, err := store.LoadConfig("config.yaml")
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to load config", err)
		return nil, err
	}
	return cfg, nil
}

// compressOldLogs compresses old action log files if retention is configured
func compressOldLogs(ctx context.Context) {
	if v := os.Getenv("ASSISTANT_LOG_RETENTION_DAYS"); v != "" {
		var n int
		fmt.Sscanf(v, "%d", &n)
		if err := actionlog.CompressOlder(n); err != nil {
			logger.Warn(ctx, "Failed to compress old logs", "error", err)
		}
	}
}

// initializeBroker initializes and returns the broker instance with observability
func initializeBroker(ctx context.Context, cfg *store.Config) interfaces.Broker {
	// Create base broker
	brk := ibkr.New(ibkr.Params{
		Mode:     cfg.Mode,
		Host:     cfg.Broker.Host,
		Port:     cfg.Broker.Port,
		ClientID: cfg.Broker.ClientID,
	})

	if cfg.Mode == "DRY_RUN" {
		logger.Warn(ctx, "Running in DRY_RUN mode - orders will be simulated")
	} else {
		logger.Info(ctx, "LIVE mode - broker calls target TWS",
			"host", cfg.Broker.Host, "port", cfg.Broker.Port)
	}

	// Wrap with observability middleware
	return ibkrobs.Wrap(brk)
}

// buildRegistry registers every capability the assistant can dispatch
func buildRegistry(ctx context.Context, cfg *store.Config, brk interfaces.Broker) *tools.Registry {
	reg := tools.NewRegistry()
	ibkr.RegisterCapabilities(reg, brk)

	if cfg.News.Enabled {
		scraper := news.NewScraper(time.Duration(cfg.News.TimeoutSeconds) * time.Second)
		news.RegisterCapability(reg, scraper, cfg.News.MaxHeadlines)
		logger.Info(ctx, "Headlines capability enabled", "max_headlines", cfg.News.MaxHeadlines)
	}

	return reg
}

// initializeCompleter initializes and returns the LLM completer with observability
func initializeCompleter(ctx context.Context, cfg *store.Config) (interfaces.Completer, error) {
	var completer interfaces.Completer

	switch cfg.LLM.Provider {
	case "OPENAI":
		baseURL := os.Getenv("OPENAI_BASE_URL")
		if baseURL == "" {
			baseURL = os.Getenv("BASE_URL") // legacy name
		}
		client, err := openai.New(openai.Params{
			APIKey:      os.Getenv("OPENAI_API_KEY"),
			BaseURL:     baseURL,
			Model:       cfg.LLM.Model,
			Temperature: cfg.LLM.Temperature,
			Timeout:     time.Duration(cfg.LLM.TimeoutSeconds) * time.Second,
		})
		if err != nil {
			return nil, fmt.Errorf("openai client: %w", err)
		}
		completer = client
	default:
		completer = noop.NewNoopCompleter()
		logger.Warn(ctx, "No LLM provider configured - using Noop completer (always empty plan)")
	}

	// Wrap with observability middleware
	return llmobs.Wrap(completer), nil
}
