package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"golang.org/x/time/rate"

	"github.com/coreybb/boardroom/api"
	"github.com/coreybb/boardroom/dashboard"
	"github.com/coreybb/boardroom/ingestion"
	"github.com/coreybb/boardroom/llm"
	"github.com/coreybb/boardroom/processing"
	rh "github.com/coreybb/boardroom/route-handlers"
	"github.com/coreybb/boardroom/sources"
	"github.com/coreybb/boardroom/storage"
)

const (
	defaultPort         = "8080"
	defaultHTTPTimeout  = 30 * time.Second
	defaultLLMTimeout   = 90 * time.Second
	redisPingTimeout    = 5 * time.Second
	shutdownTimeout     = 15 * time.Second
	providerRateEvery   = 200 * time.Millisecond
	briefCacheSize      = 128
	briefCacheTTL       = 15 * time.Minute
	defaultContentRunes = 500
)

type config struct {
	port             string
	logLevel         slog.Level
	newsAPIKey       string
	guardianAPIKey   string
	rssFeeds         []sources.RSSFeed
	demoMode         bool
	llmProvider      string
	llmAPIKey        string
	llmModel         string
	llmMaxTokens     int
	httpTimeout      time.Duration
	redisURL         string
	snapshotTTL      time.Duration
	queryCatalogPath string
	maxArticles      int
}

func main() {
	cfg := loadConfig()
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.logLevel})))

	catalog, err := loadCatalog(cfg.queryCatalogPath)
	if err != nil {
		slog.Error("Query catalog setup failed", "error", err)
		os.Exit(1)
	}

	httpClient := &http.Client{Timeout: cfg.httpTimeout}
	registry := setupProviders(cfg, httpClient)
	if len(registry.Configured()) == 0 {
		slog.Warn("No news providers configured. Set NEWS_API_KEY, GUARDIAN_API_KEY or RSS_FEEDS, or DEMO_MODE=true.")
	}
	aggregator := ingestion.NewAggregator(registry, catalog, ingestion.NewContentProcessor(defaultContentRunes), cfg.maxArticles)

	completer, err := llm.New(cfg.llmProvider, cfg.llmAPIKey, cfg.llmModel, &http.Client{Timeout: defaultLLMTimeout})
	switch {
	case errors.Is(err, llm.ErrNotConfigured):
		slog.Warn("LLM API key not set. Briefs will contain placeholder items only.", "provider", cfg.llmProvider)
		completer = nil
	case err != nil:
		slog.Error("LLM setup failed", "error", err)
		os.Exit(1)
	default:
		slog.Info("LLM configured", "provider", cfg.llmProvider, "model", completer.Model())
	}
	briefProcessor := processing.NewBriefProcessor(completer, processing.BriefOptions{
		MaxTokens: cfg.llmMaxTokens,
		CacheSize: briefCacheSize,
		CacheTTL:  briefCacheTTL,
	})

	store, closeStore, err := setupSnapshotStore(cfg)
	if err != nil {
		slog.Error("Snapshot store setup failed", "error", err)
		os.Exit(1)
	}
	defer closeStore()

	renderer, err := dashboard.NewRenderer()
	if err != nil {
		slog.Error("Board renderer setup failed", "error", err)
		os.Exit(1)
	}

	router := api.SetupRoutes(
		rh.NewSearchHandler(aggregator),
		rh.NewBriefHandler(briefProcessor),
		rh.NewBoardHandler(store, renderer),
	)

	startServer(cfg.port, router)
}

func loadConfig() config {
	port := os.Getenv("PORT")
	if port == "" {
		port = defaultPort
	}

	cfg := config{
		port:             port,
		logLevel:         parseLogLevel(os.Getenv("LOG_LEVEL")),
		newsAPIKey:       os.Getenv("NEWS_API_KEY"),
		guardianAPIKey:   os.Getenv("GUARDIAN_API_KEY"),
		rssFeeds:         sources.ParseFeedList(os.Getenv("RSS_FEEDS")),
		demoMode:         envBool("DEMO_MODE"),
		llmProvider:      strings.ToLower(os.Getenv("LLM_PROVIDER")),
		llmModel:         os.Getenv("LLM_MODEL"),
		llmMaxTokens:     envInt("LLM_MAX_TOKENS", processing.DefaultMaxTokens),
		httpTimeout:      envDuration("HTTP_TIMEOUT", defaultHTTPTimeout),
		redisURL:         os.Getenv("REDIS_URL"),
		snapshotTTL:      envDuration("BOARD_SNAPSHOT_TTL", storage.DefaultSnapshotTTL),
		queryCatalogPath: os.Getenv("QUERY_CATALOG_PATH"),
		maxArticles:      envInt("MAX_ARTICLES", ingestion.DefaultMaxArticles),
	}
	if cfg.llmProvider == "" {
		cfg.llmProvider = llm.ProviderOpenAI
	}

	switch cfg.llmProvider {
	case llm.ProviderClaude, "anthropic":
		cfg.llmAPIKey = os.Getenv("ANTHROPIC_API_KEY")
	default:
		cfg.llmAPIKey = os.Getenv("OPENAI_API_KEY")
	}
	return cfg
}

func parseLogLevel(raw string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(raw)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func envBool(key string) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	return err == nil && v
}

func envInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		slog.Warn("Invalid integer setting, using default", "key", key, "value", raw, "default", fallback)
		return fallback
	}
	return v
}

func envDuration(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := time.ParseDuration(raw)
	if err != nil || v <= 0 {
		slog.Warn("Invalid duration setting, using default", "key", key, "value", raw, "default", fallback)
		return fallback
	}
	return v
}

func loadCatalog(path string) (*ingestion.QueryCatalog, error) {
	if path == "" {
		return ingestion.DefaultCatalog()
	}
	slog.Info("Loading query catalog", "path", path)
	return ingestion.LoadCatalog(path)
}

// setupProviders registers every provider; unconfigured ones are skipped at search time.
func setupProviders(cfg config, client *http.Client) *sources.Registry {
	registry := sources.NewRegistry(
		sources.NewNewsAPIProvider(cfg.newsAPIKey, client, rate.NewLimiter(rate.Every(providerRateEvery), 1)),
		sources.NewGuardianProvider(cfg.guardianAPIKey, client, rate.NewLimiter(rate.Every(providerRateEvery), 1)),
		sources.NewRSSProvider(cfg.rssFeeds, client),
	)
	if cfg.demoMode {
		slog.Info("Demo mode enabled, registering sample provider")
		registry.Register(sources.NewSampleProvider(time.Now))
	}
	for _, p := range registry.All() {
		slog.Info("News provider", "name", p.Name(), "configured", p.Configured())
	}
	return registry
}

func setupSnapshotStore(cfg config) (storage.SnapshotStorer, func(), error) {
	if cfg.redisURL == "" {
		slog.Info("REDIS_URL not set, board snapshots are kept in memory")
		return storage.NewMemorySnapshotStorer(storage.DefaultMaxMemorySnapshots, cfg.snapshotTTL), func() {}, nil
	}

	store, err := storage.NewRedisSnapshotStorer(cfg.redisURL, cfg.snapshotTTL)
	if err != nil {
		return nil, nil, err
	}
	ctx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
	defer cancel()
	if err := store.Ping(ctx); err != nil {
		store.Close()
		return nil, nil, err
	}
	slog.Info("Redis connection successful")
	return store, func() { _ = store.Close() }, nil
}

func startServer(port string, router http.Handler) {
	server := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	shutdownSignal := make(chan os.Signal, 1)
	signal.Notify(shutdownSignal, os.Interrupt, syscall.SIGTERM)

	go func() {
		slog.Info("Server starting", "port", port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()

	<-shutdownSignal
	slog.Info("Shutdown signal received, initiating graceful shutdown")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Graceful shutdown failed", "error", err)
	}

	slog.Info("Server gracefully stopped")
}
