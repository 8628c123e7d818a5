package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"tickerpulse/internal/domain"
)

const defaultAlphaVantageURL = "https://www.alphavantage.co/query"

type Config struct {
	AlphaVantageAPIKey      string
	AlphaVantageBaseURL     string
	AlphaVantageTimeoutSecs int

	QuoteCacheSecs     int
	SuggestionWorkers  int
	SuggestionSchedule string
	WatchlistPath      string
	Watchlist          domain.Watchlist

	TelegramBotToken string
	DatabaseURL      string
	RedisURL         string
	HTTPPort         string

	MCPTransport          string
	MCPHTTPEnabled        bool
	MCPHTTPBind           string
	MCPHTTPPort           int
	MCPAuthToken          string
	MCPRequestTimeoutSecs int
	MCPRateLimitPerMin    int

	SSHAddr        string
	SSHHostKeyPath string
}

func (c *Config) AlphaVantageTimeout() time.Duration {
	return time.Duration(c.AlphaVantageTimeoutSecs) * time.Second
}

func (c *Config) QuoteCacheTTL() time.Duration {
	return time.Duration(c.QuoteCacheSecs) * time.Second
}

func Load() *Config {
	cfg := &Config{
		AlphaVantageAPIKey: strings.TrimSpace(os.Getenv("ALPHAVANTAGE_API_KEY")),
		TelegramBotToken:   os.Getenv("TELEGRAM_BOT_TOKEN"),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		RedisURL:           os.Getenv("REDIS_URL"),
		MCPAuthToken:       os.Getenv("MCP_AUTH_TOKEN"),
		WatchlistPath:      strings.TrimSpace(os.Getenv("WATCHLIST_PATH")),
	}

	if cfg.AlphaVantageAPIKey == "" {
		log.Println("Warning: ALPHAVANTAGE_API_KEY not set, quote lookups will fail")
	}
	if cfg.DatabaseURL == "" {
		log.Println("Warning: DATABASE_URL not set, lookup history disabled")
	}
	if cfg.RedisURL == "" {
		log.Println("Warning: REDIS_URL not set, defaulting to localhost:6379")
		cfg.RedisURL = "localhost:6379"
	}

	cfg.AlphaVantageBaseURL = strings.TrimSpace(os.Getenv("ALPHAVANTAGE_BASE_URL"))
	if cfg.AlphaVantageBaseURL == "" {
		cfg.AlphaVantageBaseURL = defaultAlphaVantageURL
	}

	cfg.AlphaVantageTimeoutSecs = positiveInt("ALPHAVANTAGE_TIMEOUT_SECS", 8)
	cfg.QuoteCacheSecs = 60
	if v := strings.TrimSpace(os.Getenv("QUOTE_CACHE_SECS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.QuoteCacheSecs = n
		}
	}
	cfg.SuggestionWorkers = positiveInt("SUGGESTION_WORKERS", 4)

	cfg.SuggestionSchedule = strings.TrimSpace(os.Getenv("SUGGESTION_SCHEDULE"))
	if cfg.SuggestionSchedule == "" {
		cfg.SuggestionSchedule = "@every 5m"
	}

	cfg.HTTPPort = strings.TrimPrefix(strings.TrimSpace(os.Getenv("PORT")), ":")
	if cfg.HTTPPort == "" {
		cfg.HTTPPort = "8080"
	}

	wl, err := LoadWatchlist(cfg.WatchlistPath)
	if err != nil {
		log.Printf("Warning: watchlist %q unusable, using defaults: %v", cfg.WatchlistPath, err)
		wl = DefaultWatchlist()
	}
	cfg.Watchlist = wl

	cfg.MCPTransport = strings.ToLower(strings.TrimSpace(os.Getenv("MCP_TRANSPORT")))
	if cfg.MCPTransport == "" {
		cfg.MCPTransport = "stdio"
	}
	if cfg.MCPTransport != "stdio" && cfg.MCPTransport != "http" {
		log.Printf("Warning: unsupported MCP_TRANSPORT=%q, defaulting to stdio", cfg.MCPTransport)
		cfg.MCPTransport = "stdio"
	}

	cfg.MCPHTTPEnabled = strings.EqualFold(strings.TrimSpace(os.Getenv("MCP_HTTP_ENABLED")), "true")

	cfg.MCPHTTPBind = strings.TrimSpace(os.Getenv("MCP_HTTP_BIND"))
	if cfg.MCPHTTPBind == "" {
		cfg.MCPHTTPBind = "127.0.0.1"
	}
	cfg.MCPHTTPPort = positiveInt("MCP_HTTP_PORT", 8090)
	cfg.MCPRequestTimeoutSecs = positiveInt("MCP_REQUEST_TIMEOUT_SECS", 10)
	cfg.MCPRateLimitPerMin = positiveInt("MCP_RATE_LIMIT_PER_MIN", 60)

	cfg.SSHAddr = strings.TrimSpace(os.Getenv("SSH_ADDR"))
	if cfg.SSHAddr == "" {
		cfg.SSHAddr = ":2222"
	}
	cfg.SSHHostKeyPath = strings.TrimSpace(os.Getenv("SSH_HOST_KEY_PATH"))
	if cfg.SSHHostKeyPath == "" {
		cfg.SSHHostKeyPath = ".ssh/tickerpulse_ed25519"
	}

	return cfg
}

func positiveInt(key string, fallback int) int {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}
