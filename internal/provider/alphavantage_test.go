package provider

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"tickerpulse/internal/domain"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/trace"
)

const globalQuoteNVDA = `{
  "Global Quote": {
    "01. symbol": "NVDA",
    "05. price": "134.5000",
    "07. latest trading day": "2026-10-16",
    "10. change percent": "3.10%"
  }
}`

const exchangeRateEURUSD = `{
  "Realtime Currency Exchange Rate": {
    "1. From_Currency Code": "EUR",
    "3. To_Currency Code": "USD",
    "5. Exchange Rate": "1.08350000"
  }
}`

func newTestProvider(t *testing.T, handler http.HandlerFunc) (*AlphaVantageProvider, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	p := NewAlphaVantageProvider(trace.NewNoopTracerProvider().Tracer("test"), Options{
		APIKey:  "demo",
		BaseURL: srv.URL + "/query",
	})
	return p, srv
}

func TestRequestURLGlobalQuote(t *testing.T) {
	p := NewAlphaVantageProvider(trace.NewNoopTracerProvider().Tracer("test"), Options{APIKey: "k"})
	raw := p.RequestURL(domain.Classification{Symbol: "NVDA", Kind: domain.KindStock})

	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("bad url: %v", err)
	}
	q := u.Query()
	if q.Get("function") != FunctionGlobalQuote || q.Get("symbol") != "NVDA" || q.Get("apikey") != "k" {
		t.Fatalf("unexpected query: %s", raw)
	}
	if !strings.HasPrefix(raw, defaultBaseURL) {
		t.Fatalf("expected default base url, got %s", raw)
	}
}

func TestRequestURLExchangeRate(t *testing.T) {
	p := NewAlphaVantageProvider(trace.NewNoopTracerProvider().Tracer("test"), Options{APIKey: "k"})
	raw := p.RequestURL(domain.Classification{
		Symbol: "EURUSD",
		Kind:   domain.KindForex,
		Pair:   &domain.CurrencyPair{Base: "EUR", Quote: "USD"},
	})

	u, _ := url.Parse(raw)
	q := u.Query()
	if q.Get("function") != FunctionExchangeRate || q.Get("from_currency") != "EUR" || q.Get("to_currency") != "USD" {
		t.Fatalf("unexpected query: %s", raw)
	}
	if q.Has("symbol") {
		t.Fatalf("exchange rate request should not carry symbol: %s", raw)
	}
}

func TestRequestURLEscapesSymbol(t *testing.T) {
	p := NewAlphaVantageProvider(trace.NewNoopTracerProvider().Tracer("test"), Options{APIKey: "k"})
	raw := p.RequestURL(domain.Classification{Symbol: "GC=F", Kind: domain.KindCommodity})
	if !strings.Contains(raw, "symbol=GC%3DF") {
		t.Fatalf("expected escaped symbol, got %s", raw)
	}
}

func TestFetchQuoteStock(t *testing.T) {
	p, _ := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("symbol") != "NVDA" {
			t.Errorf("unexpected symbol %s", r.URL.Query().Get("symbol"))
		}
		_, _ = w.Write([]byte(globalQuoteNVDA))
	})

	q, err := p.FetchQuote(context.Background(), domain.Classification{Symbol: "NVDA", Kind: domain.KindStock})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !q.Price.Equal(decimal.RequireFromString("134.5")) {
		t.Fatalf("unexpected price %s", q.Price)
	}
	if q.ChangePercent != "3.10%" || q.Symbol != "NVDA" || q.Kind != domain.KindStock {
		t.Fatalf("unexpected quote: %+v", q)
	}
	if q.FetchedAt.IsZero() {
		t.Fatal("expected fetch time")
	}
	if domain.FormatPrice(q.Kind, q.Price) != "134.50" {
		t.Fatalf("expected 134.50, got %s", domain.FormatPrice(q.Kind, q.Price))
	}
}

func TestFetchQuoteForex(t *testing.T) {
	p, _ := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(exchangeRateEURUSD))
	})

	q, err := p.FetchQuote(context.Background(), domain.Classification{
		Symbol: "EURUSD",
		Kind:   domain.KindForex,
		Pair:   &domain.CurrencyPair{Base: "EUR", Quote: "USD"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.ChangePercent != "" {
		t.Fatalf("expected no change percent, got %q", q.ChangePercent)
	}
	if domain.FormatPrice(q.Kind, q.Price) != "1.0835" {
		t.Fatalf("expected 1.0835, got %s", domain.FormatPrice(q.Kind, q.Price))
	}
}

func TestFetchQuoteErrorTaxonomy(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{"note", http.StatusOK, `{"Note": "Thank you for using Alpha Vantage! Our standard API call frequency is 5 calls per minute"}`, domain.ErrRateLimited},
		{"information", http.StatusOK, `{"Information": "API rate limit reached"}`, domain.ErrRateLimited},
		{"empty quote", http.StatusOK, `{"Global Quote": {}}`, domain.ErrNotFound},
		{"missing quote", http.StatusOK, `{}`, domain.ErrNotFound},
		{"missing price", http.StatusOK, `{"Global Quote": {"01. symbol": "X"}}`, domain.ErrNotFound},
		{"error message", http.StatusOK, `{"Error Message": "Invalid API call"}`, domain.ErrNotFound},
		{"bad json", http.StatusOK, `{"Global Quote": `, domain.ErrMalformedResponse},
		{"array", http.StatusOK, `[]`, domain.ErrMalformedResponse},
		{"bad price", http.StatusOK, `{"Global Quote": {"05. price": "n/a"}}`, domain.ErrMalformedResponse},
		{"server error", http.StatusBadGateway, `oops`, domain.ErrNetworkFailure},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p, _ := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			})
			_, err := p.FetchQuote(context.Background(), domain.Classification{Symbol: "NVDA", Kind: domain.KindStock})
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestFetchQuoteRateLimitIsNotNotFound(t *testing.T) {
	p, _ := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"Note": "limit", "Global Quote": {}}`))
	})
	_, err := p.FetchQuote(context.Background(), domain.Classification{Symbol: "NVDA", Kind: domain.KindStock})
	if !errors.Is(err, domain.ErrRateLimited) || errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected rate limited only, got %v", err)
	}
}

func TestFetchQuoteNetworkFailure(t *testing.T) {
	p, srv := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {})
	srv.Close()

	_, err := p.FetchQuote(context.Background(), domain.Classification{Symbol: "NVDA", Kind: domain.KindStock})
	if !errors.Is(err, domain.ErrNetworkFailure) {
		t.Fatalf("expected network failure, got %v", err)
	}
}

func TestParseExchangeRateMissing(t *testing.T) {
	if _, err := ParseExchangeRate([]byte(`{"Realtime Currency Exchange Rate": {}}`)); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
