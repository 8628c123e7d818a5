package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"tickerpulse/internal/domain"

	"github.com/redis/go-redis/v9"
)

var Client *redis.Client

func InitRedis(ctx context.Context) {
	addr := os.Getenv("REDIS_URL")
	if addr == "" {
		addr = "localhost:6379"
	}
	Client = redis.NewClient(&redis.Options{
		Addr: addr,
	})
	if err := Client.Ping(ctx).Err(); err != nil {
		log.Printf("Redis unavailable at %s, quote cache disabled: %v", addr, err)
		_ = Client.Close()
		Client = nil
		return
	}
	log.Println("Connected to Redis")
}

const quoteKeyPrefix = "quote:"

// QuoteCache keeps recently fetched quotes so repeated lookups within the TTL
// do not spend provider calls.
type QuoteCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewQuoteCache returns nil when caching is disabled.
func NewQuoteCache(client *redis.Client, ttl time.Duration) *QuoteCache {
	if client == nil || ttl <= 0 {
		return nil
	}
	return &QuoteCache{client: client, ttl: ttl}
}

func quoteKey(symbol string) string {
	return quoteKeyPrefix + symbol
}

func (c *QuoteCache) Get(ctx context.Context, symbol string) (*domain.Quote, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	raw, err := c.client.Get(ctx, quoteKey(symbol)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get %s: %w", symbol, err)
	}

	var q domain.Quote
	if err := json.Unmarshal(raw, &q); err != nil {
		return nil, false, fmt.Errorf("decode cached quote %s: %w", symbol, err)
	}
	return &q, true, nil
}

func (c *QuoteCache) Set(ctx context.Context, q *domain.Quote) error {
	if c == nil || q == nil {
		return nil
	}
	raw, err := json.Marshal(q)
	if err != nil {
		return fmt.Errorf("encode quote %s: %w", q.Symbol, err)
	}
	if err := c.client.Set(ctx, quoteKey(q.Symbol), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", q.Symbol, err)
	}
	return nil
}
