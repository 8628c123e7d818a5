package provider

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"tickerpulse/internal/domain"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	FunctionGlobalQuote  = "GLOBAL_QUOTE"
	FunctionExchangeRate = "CURRENCY_EXCHANGE_RATE"

	defaultBaseURL = "https://www.alphavantage.co/query"
	defaultTimeout = 8 * time.Second
	maxBodyBytes   = 1 << 20
)

type Options struct {
	APIKey     string
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// AlphaVantageProvider fetches global quotes and exchange rates.
type AlphaVantageProvider struct {
	tracer  trace.Tracer
	apiKey  string
	baseURL string
	client  *http.Client
	now     func() time.Time
}

func NewAlphaVantageProvider(tracer trace.Tracer, opts Options) *AlphaVantageProvider {
	baseURL := strings.TrimSpace(opts.BaseURL)
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	client := opts.HTTPClient
	if client == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		client = &http.Client{Timeout: timeout}
	}
	return &AlphaVantageProvider{
		tracer:  tracer,
		apiKey:  strings.TrimSpace(opts.APIKey),
		baseURL: baseURL,
		client:  client,
		now:     time.Now,
	}
}

// RequestURL builds the query URL for a classified symbol.
func (p *AlphaVantageProvider) RequestURL(c domain.Classification) string {
	q := url.Values{}
	if c.Kind == domain.KindForex && c.Pair != nil {
		q.Set("function", FunctionExchangeRate)
		q.Set("from_currency", c.Pair.Base)
		q.Set("to_currency", c.Pair.Quote)
	} else {
		q.Set("function", FunctionGlobalQuote)
		q.Set("symbol", c.Symbol)
	}
	q.Set("apikey", p.apiKey)

	sep := "?"
	if strings.Contains(p.baseURL, "?") {
		sep = "&"
	}
	return p.baseURL + sep + q.Encode()
}

func (p *AlphaVantageProvider) FetchQuote(ctx context.Context, c domain.Classification) (*domain.Quote, error) {
	ctx, span := p.tracer.Start(ctx, "alphavantage.fetch-quote")
	defer span.End()
	span.SetAttributes(
		attribute.String("symbol", c.Symbol),
		attribute.String("kind", string(c.Kind)),
	)

	body, err := p.get(ctx, p.RequestURL(c))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	var quote *domain.Quote
	if c.Kind == domain.KindForex {
		quote, err = ParseExchangeRate(body)
	} else {
		quote, err = ParseGlobalQuote(body)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	quote.Symbol = c.Symbol
	quote.Kind = c.Kind
	quote.FetchedAt = p.now().UTC()
	return quote, nil
}

func (p *AlphaVantageProvider) get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", domain.ErrNetworkFailure, err)
	}
	req.Header.Set("User-Agent", "tickerpulse/1.0")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrNetworkFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: alphavantage http %d", domain.ErrNetworkFailure, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", domain.ErrNetworkFailure, err)
	}
	return body, nil
}
