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
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"google.golang.org/api/option"
	"google.golang.org/genai"

	"github.com/AnshRaj112/mindjournal-backend/internal/config"
	"github.com/AnshRaj112/mindjournal-backend/internal/database"
	"github.com/AnshRaj112/mindjournal-backend/internal/handlers"
	"github.com/AnshRaj112/mindjournal-backend/internal/metrics"
	"github.com/AnshRaj112/mindjournal-backend/internal/middleware"
	"github.com/AnshRaj112/mindjournal-backend/internal/routes"
	"github.com/AnshRaj112/mindjournal-backend/internal/services"
	"github.com/AnshRaj112/mindjournal-backend/pkg/clientip"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	cfg := config.Load()

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatal("Failed to create logger:", err)
	}
	defer logger.Sync()

	if err := cfg.Validate(); err != nil {
		logger.Fatal("Invalid configuration", zap.Error(err))
	}

	if err := run(cfg, logger); err != nil {
		logger.Error("Server stopped", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

// run serves until SIGINT/SIGTERM or a server failure. Every resource opened
// here is closed before it returns.
func run(cfg *config.Config, logger *zap.Logger) error {
	ctx := context.Background()

	store, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("open %s journal store: %w", cfg.StoreDriver, err)
	}
	defer closeStore()

	// Sessions are optional when JWT_SECRET is set
	var sessions middleware.SessionValidator
	if cfg.RedisURI != "" {
		rdb, err := database.ConnectRedis(cfg.RedisURI, logger)
		if err != nil {
			return fmt.Errorf("connect to redis: %w", err)
		}
		defer rdb.Close()
		sessions = services.NewSessionStore(rdb)
	}

	collector := metrics.NewCollector()
	generator, searcher, err := newProviders(ctx, cfg, collector, logger)
	if err != nil {
		return err
	}

	journalService := services.NewJournalService(store, collector, logger)
	reflections := services.NewReflectionComposer(store, generator, logger)
	insights := services.NewInsightComposer(store, generator, logger)
	videos := services.NewVideoLookup(searcher, logger)

	resolver := clientip.Resolver{TrustProxy: cfg.TrustProxy}
	auth := middleware.NewAuthenticator(cfg.JWTSecret, sessions, logger)

	// Setup router
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestLogger(logger, resolver))
	r.Use(middleware.Metrics(collector))
	r.Use(middleware.CORS(cfg.AllowedOrigins))

	if cfg.IsProduction() {
		for _, mw := range middleware.ProductionSecurity(cfg.AllowedHost, resolver) {
			r.Use(mw)
		}
		logger.Info("✅ Production security enabled (security headers, host check, per-IP rate limiting)")
	}

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message":"MindJournal API running"}`))
	})
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})
	r.Handle("/metrics", collector.Handler())

	routes.SetupRoutes(r, routes.Handlers{
		Journals: handlers.NewJournalHandler(journalService, logger),
		Insights: handlers.NewInsightsHandler(reflections, insights, logger),
		Videos:   handlers.NewVideoHandler(videos, logger),
		Auth:     auth.Middleware,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("🚀 MindJournal backend running",
		zap.String("port", cfg.Port),
		zap.String("host", cfg.Host),
		zap.String("env", cfg.Environment),
	)
	return serve(srv, quit, logger)
}

// serve runs srv until a signal arrives on quit, then shuts it down gracefully.
// A listener failure is returned instead of exiting so callers can release resources.
func serve(srv *http.Server, quit <-chan os.Signal, logger *zap.Logger) error {
	serverErr := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("listen on %s: %w", srv.Addr, err)
	case <-quit:
	}

	logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}
	return nil
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// newProviders builds the guarded Gemini and YouTube clients. A missing API key
// leaves the server running with only the dependent endpoints failing.
func newProviders(ctx context.Context, cfg *config.Config, collector *metrics.Collector, logger *zap.Logger) (services.Generator, services.VideoSearcher, error) {
	var generator services.Generator = services.Unconfigured{Provider: "gemini"}
	if cfg.GeminiAPIKey == "" {
		logger.Warn("⚠️  GEMINI_API_KEY not set. Journal analysis and insights will not be available")
	} else {
		gemini, err := services.NewGeminiGenerator(ctx, genai.ClientConfig{APIKey: cfg.GeminiAPIKey}, cfg.GeminiModel)
		if err != nil {
			return nil, nil, fmt.Errorf("initialize gemini: %w", err)
		}
		generator = gemini
		logger.Info("✅ Gemini client initialized", zap.String("model", cfg.GeminiModel))
	}

	var searcher services.VideoSearcher = services.Unconfigured{Provider: "youtube"}
	if cfg.YouTubeAPIKey == "" {
		logger.Warn("⚠️  YOUTUBE_API_KEY not set. Video search will not be available")
	} else {
		youtube, err := services.NewYouTubeSearcher(ctx, option.WithAPIKey(cfg.YouTubeAPIKey))
		if err != nil {
			return nil, nil, fmt.Errorf("initialize youtube: %w", err)
		}
		searcher = youtube
		logger.Info("✅ YouTube client initialized")
	}

	return services.NewGuardedGenerator(generator, services.DefaultGuardConfig("gemini", cfg.ProviderTimeout), collector, logger),
		services.NewGuardedSearcher(searcher, services.DefaultGuardConfig("youtube", cfg.ProviderTimeout), collector, logger),
		nil
}
