// cmd/api/main.go

package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/joho/godotenv"

	"cadence/internal/adapter/bus"
	"cadence/internal/adapter/calendar"
	"cadence/internal/adapter/provider"
	"cadence/internal/adapter/social"
	"cadence/internal/adapter/storage"
	"cadence/internal/config"
	"cadence/internal/domain/content"
	"cadence/internal/domain/events"
	"cadence/internal/platform/logger"
	"cadence/internal/server"
	"cadence/internal/service/insights"
	"cadence/internal/service/listening"
	llmService "cadence/internal/service/llm"
	"cadence/internal/service/planner"
	timingService "cadence/internal/service/timing"
)

// eventBus is both halves of the event bus
type eventBus interface {
	events.Publisher
	events.Subscriber
}

func main() {
	// Optional .env for local development
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLog, err := logger.New(cfg.Environment)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer appLog.Sync()

	// Setup context with cancellation for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Setup signal handling for graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Initialize storage
	var plans content.Store = storage.NewMemoryStore()
	if cfg.Database.Enabled {
		db, err := initDatabase(ctx, cfg.Database)
		if err != nil {
			appLog.Fatal("Failed to initialize database", "error", err)
		}
		defer db.Close()

		planStore := storage.NewPlanStore(db)
		if err := planStore.EnsureSchema(ctx); err != nil {
			appLog.Fatal("Failed to create plan schema", "error", err)
		}
		plans = planStore
	}

	// Initialize event bus. The event stream is only served when NATS is connected.
	var eb eventBus = bus.Nop{}
	var stream events.Subscriber
	if cfg.NATS.URL != "" {
		natsBus, err := bus.Connect(cfg.NATS, appLog)
		if err != nil {
			appLog.Fatal("Failed to connect to NATS", "error", err)
		}
		defer natsBus.Close()
		eb = natsBus
		stream = natsBus
	}

	// Initialize text generation
	registry := provider.NewRegistryFromConfig(cfg.LLM)
	cache, err := provider.NewRedisCache(cfg.Redis.URL, cfg.Redis.Prefix)
	if err != nil {
		appLog.Fatal("Failed to configure generation cache", "error", err)
	}
	if rc, ok := cache.(*provider.RedisCache); ok {
		defer rc.Close()
		if err := rc.Ping(ctx); err != nil {
			appLog.Warn("Generation cache unreachable, continuing uncached", "error", err)
			cache = provider.NoopCache{}
		}
	}
	generator := provider.NewCachedGenerator(registry, cache, cfg.Redis.TTL, appLog)

	selector := llmService.NewSelector(llmService.DefaultRoutingTable())
	executor := llmService.NewExecutor(selector, generator, llmService.ExecutorConfig{
		CallTimeout: cfg.LLM.CallTimeout,
		Temperature: cfg.LLM.Temperature,
		MaxTokens:   cfg.LLM.MaxTokens,
	}, appLog)

	// Initialize trend discovery
	discovery := listening.NewDiscoveryEngine(
		listening.NewScorer(nil),
		executor,
		eb,
		listening.DiscoveryConfig{
			DiscoveryWindow:  cfg.Trend.DiscoveryWindow,
			MicroTrendWindow: cfg.Trend.MicroTrendWindow,
			MaxConcurrency:   cfg.Trend.MaxConcurrency,
		},
		appLog,
	)
	if cfg.Trend.UseSampleSource {
		discovery.AddSource(social.NewSampleSource())
	}
	if cfg.Twitter.BearerToken != "" {
		discovery.AddSource(social.NewTwitterSource(cfg.Twitter, appLog))
	}

	// Initialize timing optimization
	feed, err := calendar.NewFromConfig(cfg.Events)
	if err != nil {
		appLog.Fatal("Failed to configure event feed", "error", err)
	}
	circadian := timingService.DefaultCircadianTable()
	optimizer := timingService.NewOptimizer(
		circadian,
		timingService.NewEventAdjuster(feed, timingService.DefaultHolidayRules(), cfg.Timing.EventFeedTimeout, appLog),
	)

	// Initialize content planning
	contentPlanner := planner.NewPlanner(executor, eb, planner.Config{
		MaxConcurrency: cfg.Planner.MaxConcurrency,
	}, appLog)

	// Initialize HTTP server
	httpServer := server.NewServer(cfg.Server, server.Services{
		Trends:   discovery,
		Timing:   optimizer,
		Planner:  contentPlanner,
		Plans:    plans,
		Selector: selector,
		Analyst:  insights.NewAnalyst(executor, appLog),
		Events:   stream,
	}, appLog)

	// Start HTTP server
	go func() {
		appLog.Info("Starting HTTP server", "host", cfg.Server.Host, "port", cfg.Server.Port, "llm_mode", cfg.LLM.Mode)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLog.Fatal("HTTP server error", "error", err)
		}
	}()

	// Wait for shutdown signal
	<-shutdown
	appLog.Info("Shutdown signal received")

	// Create shutdown context with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		appLog.Error("HTTP server shutdown error", "error", err)
	}

	appLog.Info("Shutdown complete")
}

// Initialize database connection
func initDatabase(ctx context.Context, cfg config.DatabaseConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("unable to parse connection string: %w", err)
	}

	poolConfig.MaxConns = int32(cfg.MaxOpenConns)
	poolConfig.MinConns = int32(cfg.MaxIdleConns)
	poolConfig.MaxConnLifetime = cfg.MaxLifetime

	db, err := pgxpool.ConnectConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}

	if err := db.Ping(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	return db, nil
}
