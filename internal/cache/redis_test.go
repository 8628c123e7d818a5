package cache

import (
	"context"
	"testing"
	"time"

	"tickerpulse/internal/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

func newTestCache(t *testing.T, ttl time.Duration) (*QuoteCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewQuoteCache(client, ttl), mr
}

func TestQuoteCacheRoundTrip(t *testing.T) {
	c, _ := newTestCache(t, time.Minute)
	ctx := context.Background()

	q := &domain.Quote{
		Symbol:        "NVDA",
		Kind:          domain.KindStock,
		Price:         decimal.RequireFromString("134.50"),
		ChangePercent: "3.10%",
		FetchedAt:     time.Unix(1700000000, 0).UTC(),
	}
	if err := c.Set(ctx, q); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	got, ok, err := c.Get(ctx, "NVDA")
	if err != nil || !ok {
		t.Fatalf("expected cache hit, got ok=%v err=%v", ok, err)
	}
	if !got.Price.Equal(q.Price) || got.ChangePercent != "3.10%" || got.Kind != domain.KindStock {
		t.Fatalf("unexpected cached quote: %+v", got)
	}
}

func TestQuoteCacheExpires(t *testing.T) {
	c, mr := newTestCache(t, time.Minute)
	ctx := context.Background()

	if err := c.Set(ctx, &domain.Quote{Symbol: "JNJ", Price: decimal.NewFromInt(150)}); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	mr.FastForward(2 * time.Minute)

	if _, ok, err := c.Get(ctx, "JNJ"); ok || err != nil {
		t.Fatalf("expected expired entry, got ok=%v err=%v", ok, err)
	}
}

func TestQuoteCacheMiss(t *testing.T) {
	c, _ := newTestCache(t, time.Minute)
	if _, ok, err := c.Get(context.Background(), "NONE"); ok || err != nil {
		t.Fatalf("expected clean miss, got ok=%v err=%v", ok, err)
	}
}

func TestQuoteCacheCorruptEntry(t *testing.T) {
	c, mr := newTestCache(t, time.Minute)
	if err := mr.Set("quote:BAD", "not-json"); err != nil {
		t.Fatal(err)
	}
	if _, _, err := c.Get(context.Background(), "BAD"); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestNewQuoteCacheDisabled(t *testing.T) {
	if NewQuoteCache(nil, time.Minute) != nil {
		t.Fatal("expected nil cache without client")
	}
	var c *QuoteCache
	if _, ok, err := c.Get(context.Background(), "X"); ok || err != nil {
		t.Fatal("nil cache should miss silently")
	}
	if err := c.Set(context.Background(), &domain.Quote{Symbol: "X"}); err != nil {
		t.Fatal("nil cache set should be a no-op")
	}
}
