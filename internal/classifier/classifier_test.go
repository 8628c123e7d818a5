package classifier

import (
	"testing"

	"tickerpulse/internal/domain"
)

func testWatchlist() domain.Watchlist {
	return domain.Watchlist{
		Stocks:      []domain.TrackedTicker{{Symbol: "NVDA"}},
		Forex:       []domain.TrackedTicker{{Symbol: "eurusd"}, {Symbol: "GBPUSD"}, {Symbol: "BAD"}},
		Commodities: []domain.TrackedTicker{{Symbol: "GC=F"}, {Symbol: " cl=f "}},
	}
}

func TestClassifyForexAllowList(t *testing.T) {
	c := New(testWatchlist())

	got := c.Classify("EURUSD")
	if got.Kind != domain.KindForex {
		t.Fatalf("expected forex, got %s", got.Kind)
	}
	if got.Pair == nil || got.Pair.Base != "EUR" || got.Pair.Quote != "USD" {
		t.Fatalf("unexpected pair: %+v", got.Pair)
	}
}

func TestClassifySixLetterStockStaysStock(t *testing.T) {
	c := New(testWatchlist())

	// Six letters but not on the forex allow-list.
	got := c.Classify("GOOGLE")
	if got.Kind != domain.KindStock || got.Pair != nil {
		t.Fatalf("expected stock without pair, got %+v", got)
	}
}

func TestClassifyCommodity(t *testing.T) {
	c := New(testWatchlist())

	for _, s := range []string{"GC=F", "CL=F"} {
		if got := c.Classify(s); got.Kind != domain.KindCommodity {
			t.Fatalf("expected commodity for %s, got %s", s, got.Kind)
		}
	}
}

func TestClassifyDefaultsToStock(t *testing.T) {
	c := New(testWatchlist())
	for _, s := range []string{"NVDA", "ZZZZ", "BAD", "1234"} {
		if got := c.Classify(s); got.Kind != domain.KindStock {
			t.Fatalf("expected stock for %s, got %s", s, got.Kind)
		}
	}
}

func TestClassifyIsDeterministic(t *testing.T) {
	c := New(testWatchlist())
	for _, s := range []string{"EURUSD", "ABCDEF", "GC=F", "NVDA"} {
		first := c.Classify(s)
		for i := 0; i < 50; i++ {
			again := c.Classify(s)
			if again.Kind != first.Kind {
				t.Fatalf("classification of %s changed: %s -> %s", s, first.Kind, again.Kind)
			}
		}
	}
}

func TestClassifyNilClassifier(t *testing.T) {
	var c *Classifier
	if got := c.Classify("EURUSD"); got.Kind != domain.KindStock {
		t.Fatalf("expected stock from nil classifier, got %s", got.Kind)
	}
}

func TestSplitForexPairRoundTrip(t *testing.T) {
	pair, ok := SplitForexPair("EURUSD")
	if !ok {
		t.Fatal("expected EURUSD to split")
	}
	if pair.Base != "EUR" || pair.Quote != "USD" {
		t.Fatalf("unexpected split: %+v", pair)
	}
	if pair.Symbol() != "EURUSD" {
		t.Fatalf("expected re-join to reproduce EURUSD, got %s", pair.Symbol())
	}
}

func TestSplitForexPairRejectsBadShapes(t *testing.T) {
	for _, s := range []string{"", "EUR", "EURUSDX", "EUR1SD", "GC=F12"} {
		if _, ok := SplitForexPair(s); ok {
			t.Fatalf("expected %q to be rejected", s)
		}
	}
}

func TestNormalizeSymbol(t *testing.T) {
	if got := NormalizeSymbol("  nvda \n"); got != "NVDA" {
		t.Fatalf("expected NVDA, got %q", got)
	}
}
