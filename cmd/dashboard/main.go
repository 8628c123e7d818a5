package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	ossignal "os/signal"
	"strings"
	"syscall"
	"time"

	"tickerpulse/internal/cache"
	"tickerpulse/internal/classifier"
	"tickerpulse/internal/config"
	"tickerpulse/internal/job"
	"tickerpulse/internal/provider"
	"tickerpulse/internal/service"
	"tickerpulse/internal/tui"
	"tickerpulse/pkg/tracing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/charmbracelet/wish/logging"
	"github.com/joho/godotenv"
	"go.opentelemetry.io/otel/trace"
)

var (
	loadEnvFunc          = godotenv.Load
	loadConfigFunc       = config.Load
	initRedisFunc        = cache.InitRedis
	initTracerFunc       = tracing.InitTracer
	newQuoteProviderFunc = func(tracer trace.Tracer, cfg *config.Config) service.QuoteProvider {
		return provider.NewAlphaVantageProvider(tracer, provider.Options{
			APIKey:  cfg.AlphaVantageAPIKey,
			BaseURL: cfg.AlphaVantageBaseURL,
			Timeout: cfg.AlphaVantageTimeout(),
		})
	}
	startRefresherFunc = func(r *job.SuggestionRefresher, ctx context.Context) {
		go func() {
			if err := r.Start(ctx); err != nil {
				log.Printf("suggestion refresher stopped: %v", err)
			}
		}()
	}
	runLocalFunc = func(m tea.Model) error {
		_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
		return err
	}
	newSSHServerFunc      = newSSHServer
	startSSHServerFunc    = func(s *ssh.Server) error { return s.ListenAndServe() }
	shutdownSSHServerFunc = func(s *ssh.Server, ctx context.Context) error { return s.Shutdown(ctx) }
	setupSignalNotify     = ossignal.Notify
	waitForSignalFunc     = func(quit <-chan os.Signal) { <-quit }
)

var localMode = flag.Bool("local", false, "run the dashboard in this terminal instead of serving it over SSH")

func main() {
	flag.Parse()

	_ = loadEnvFunc()
	cfg := loadConfigFunc()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	os.Setenv("REDIS_URL", cfg.RedisURL)
	initRedisFunc(ctx)

	tp, tracer, err := initTracerFunc(ctx)
	if err != nil {
		log.Fatalf("failed to initialize tracer: %v", err)
	}
	defer func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			log.Printf("error shutting down tracer provider: %v", err)
		}
	}()

	opts := service.QuoteServiceOptions{Workers: cfg.SuggestionWorkers}
	if qc := cache.NewQuoteCache(cache.Client, cfg.QuoteCacheTTL()); qc != nil {
		opts.Cache = qc
	}
	quoteService := service.NewQuoteService(
		tracer,
		classifier.New(cfg.Watchlist),
		newQuoteProviderFunc(tracer, cfg),
		cfg.Watchlist,
		opts,
	)

	// Every session shares one refresher so SSH clients do not multiply provider calls.
	refresher := job.NewSuggestionRefresher(tracer, quoteService, nil, cfg.SuggestionSchedule)
	startRefresherFunc(refresher, ctx)

	if *localMode {
		svc := tui.Services{Quotes: quoteService, Snapshot: refresher, Username: localUsername()}
		if err := runLocalFunc(tui.NewAppModel(svc)); err != nil {
			log.Fatalf("dashboard failed: %v", err)
		}
		return
	}

	srv, err := newSSHServerFunc(cfg, quoteService, refresher)
	if err != nil {
		log.Fatalf("failed to create ssh server: %v", err)
	}

	go func() {
		if err := startSSHServerFunc(srv); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			log.Fatalf("ssh listen: %v", err)
		}
	}()
	log.Printf("Dashboard available via ssh on %s", cfg.SSHAddr)

	quit := make(chan os.Signal, 1)
	setupSignalNotify(quit, syscall.SIGINT, syscall.SIGTERM)
	waitForSignalFunc(quit)
	log.Println("Shutting down dashboard...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := shutdownSSHServerFunc(srv, shutdownCtx); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
		log.Printf("ssh server forced to shutdown: %v", err)
	}
}

func newSSHServer(cfg *config.Config, quotes tui.QuoteQuerier, snapshot tui.SuggestionSnapshot) (*ssh.Server, error) {
	return wish.NewServer(
		wish.WithAddress(cfg.SSHAddr),
		wish.WithHostKeyPath(cfg.SSHHostKeyPath),
		wish.WithMiddleware(
			bubbletea.Middleware(teaHandler(quotes, snapshot)),
			activeterm.Middleware(),
			logging.Middleware(),
		),
	)
}

func teaHandler(quotes tui.QuoteQuerier, snapshot tui.SuggestionSnapshot) bubbletea.Handler {
	return func(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
		m := tui.NewAppModel(tui.Services{
			Quotes:   quotes,
			Snapshot: snapshot,
			Username: sessionUsername(sess.User()),
		})
		if pty, _, ok := sess.Pty(); ok {
			m.SetSize(pty.Window.Width, pty.Window.Height)
		}
		return m, []tea.ProgramOption{tea.WithAltScreen()}
	}
}

func sessionUsername(user string) string {
	if user = strings.TrimSpace(user); user != "" {
		return user
	}
	return "guest"
}

func localUsername() string {
	return sessionUsername(os.Getenv("USER"))
}
