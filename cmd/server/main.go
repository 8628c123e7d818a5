package main

import (
	"context"
	"log"
	"net/http"
	"os"
	ossignal "os/signal"
	"syscall"
	"time"

	"tickerpulse/internal/bot"
	"tickerpulse/internal/cache"
	"tickerpulse/internal/classifier"
	"tickerpulse/internal/config"
	"tickerpulse/internal/db"
	"tickerpulse/internal/handler"
	"tickerpulse/internal/job"
	"tickerpulse/internal/provider"
	"tickerpulse/internal/repository"
	"tickerpulse/internal/service"
	"tickerpulse/pkg/tracing"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/trace"

	_ "tickerpulse/docs"
)

var (
	loadEnvFunc          = godotenv.Load
	loadConfigFunc       = config.Load
	initPostgresFunc     = db.InitPostgres
	initRedisFunc        = cache.InitRedis
	initTracerFunc       = tracing.InitTracer
	newLookupRepoFunc    = repository.NewLookupRepository
	runMigrationsFunc    = func(repo *repository.LookupRepository, ctx context.Context) error { return repo.RunMigrations(ctx) }
	newQuoteProviderFunc = func(tracer trace.Tracer, cfg *config.Config) service.QuoteProvider {
		return provider.NewAlphaVantageProvider(tracer, provider.Options{
			APIKey:  cfg.AlphaVantageAPIKey,
			BaseURL: cfg.AlphaVantageBaseURL,
			Timeout: cfg.AlphaVantageTimeout(),
		})
	}
	newQuoteServiceFunc    = service.NewQuoteService
	newRefresherFunc       = job.NewSuggestionRefresher
	startRefresherFunc     = func(r *job.SuggestionRefresher, ctx context.Context) { go runRefresher(r, ctx) }
	startTelegramBotFunc   = bot.StartTelegramBot
	newHandlerFunc         = handler.New
	newRouterFunc          = gin.Default
	setupSignalNotify      = ossignal.Notify
	waitForSignalFunc      = func(quit <-chan os.Signal) { <-quit }
	startHTTPServerFunc    = func(srv *http.Server) error { return srv.ListenAndServe() }
	shutdownHTTPServerFunc = func(srv *http.Server, ctx context.Context) error { return srv.Shutdown(ctx) }
)

// @title           TickerPulse API
// @version         1.0
// @description     Stock, forex and commodity quotes with beginner-friendly advice.

// @host      localhost:8080
// @BasePath  /
func main() {
	_ = loadEnvFunc()

	cfg := loadConfigFunc()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init Postgres and Redis
	os.Setenv("DATABASE_URL", cfg.DatabaseURL)
	os.Setenv("REDIS_URL", cfg.RedisURL)
	initPostgresFunc(ctx)
	initRedisFunc(ctx)
	defer db.Close()

	// Init tracing
	tp, tracer, err := initTracerFunc(ctx)
	if err != nil {
		log.Fatalf("failed to initialize tracer: %v", err)
	}
	defer func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			log.Printf("error shutting down tracer provider: %v", err)
		}
	}()

	quoteService := buildQuoteService(ctx, cfg, tracer)

	// Suggestions refresh in the background; the bot subscribes to new buys.
	refresher := newRefresherFunc(tracer, quoteService, nil, cfg.SuggestionSchedule)
	if alerts := startTelegramBotFunc(cfg.TelegramBotToken, quoteService, refresher); alerts != nil && refresher != nil {
		refresher.SetAlertSink(alerts)
	}
	startRefresherFunc(refresher, ctx)

	h := newHandlerFunc(tracer, quoteService, refresher)

	r := newRouterFunc()
	r.Use(cors.New(corsConfig()))
	r.Use(otelgin.Middleware(tracing.ServiceName()))

	h.RegisterRoutes(r)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:              httpAddr(cfg),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := startHTTPServerFunc(srv); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()
	log.Printf("HTTP API listening on %s", srv.Addr)

	quit := make(chan os.Signal, 1)
	setupSignalNotify(quit, syscall.SIGINT, syscall.SIGTERM)
	waitForSignalFunc(quit)
	log.Println("Shutting down server...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := shutdownHTTPServerFunc(srv, shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}

func buildQuoteService(ctx context.Context, cfg *config.Config, tracer trace.Tracer) *service.QuoteService {
	opts := service.QuoteServiceOptions{Workers: cfg.SuggestionWorkers}

	if db.Pool != nil {
		repo := newLookupRepoFunc(db.Pool, tracer)
		if err := runMigrationsFunc(repo, ctx); err != nil {
			log.Printf("lookup history disabled, migrations failed: %v", err)
		} else {
			opts.History = repo
		}
	}
	if qc := cache.NewQuoteCache(cache.Client, cfg.QuoteCacheTTL()); qc != nil {
		opts.Cache = qc
	}

	return newQuoteServiceFunc(
		tracer,
		classifier.New(cfg.Watchlist),
		newQuoteProviderFunc(tracer, cfg),
		cfg.Watchlist,
		opts,
	)
}

func runRefresher(r *job.SuggestionRefresher, ctx context.Context) {
	if err := r.Start(ctx); err != nil {
		log.Printf("suggestion refresher stopped: %v", err)
	}
}

func corsConfig() cors.Config {
	c := cors.DefaultConfig()
	c.AllowAllOrigins = true
	c.AllowMethods = []string{http.MethodGet, http.MethodOptions}
	return c
}

func httpAddr(cfg *config.Config) string {
	if cfg == nil || cfg.HTTPPort == "" {
		return ":8080"
	}
	return ":" + cfg.HTTPPort
}
