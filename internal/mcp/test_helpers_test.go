package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"tickerpulse/internal/classifier"
	"tickerpulse/internal/domain"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

var testWatchlist = domain.Watchlist{
	Stocks:      []domain.TrackedTicker{{Symbol: "NVDA", Reason: "AI leader"}},
	Forex:       []domain.TrackedTicker{{Symbol: "EURUSD", Reason: "Major pair"}},
	Commodities: []domain.TrackedTicker{{Symbol: "GC=F", Reason: "Gold"}},
	Tips:        []string{"Diversify."},
}

type stubQuoteReader struct {
	mu          sync.Mutex
	reports     map[string]*domain.Report
	errs        map[string]error
	set         *domain.SuggestionSet
	lookups     []string
	suggestions int
}

func (s *stubQuoteReader) Lookup(ctx context.Context, raw string) (*domain.Report, error) {
	c, err := s.Classify(raw)
	if err != nil {
		return nil, &domain.LookupError{Err: err}
	}
	s.mu.Lock()
	s.lookups = append(s.lookups, c.Symbol)
	s.mu.Unlock()
	if err, ok := s.errs[c.Symbol]; ok {
		return nil, &domain.LookupError{Symbol: c.Symbol, Kind: c.Kind, Err: err}
	}
	r, ok := s.reports[c.Symbol]
	if !ok {
		err := fmt.Errorf("%w: %s", domain.ErrNotFound, c.Symbol)
		return nil, &domain.LookupError{Symbol: c.Symbol, Kind: c.Kind, Err: err}
	}
	out := *r
	return &out, nil
}

func (s *stubQuoteReader) Classify(raw string) (domain.Classification, error) {
	symbol := classifier.NormalizeSymbol(raw)
	if symbol == "" {
		return domain.Classification{}, domain.ErrEmptySymbol
	}
	return classifier.New(testWatchlist).Classify(symbol), nil
}

func (s *stubQuoteReader) Suggestions(ctx context.Context) (*domain.SuggestionSet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.suggestions++
	return s.set, nil
}

func (s *stubQuoteReader) Watchlist() domain.Watchlist { return testWatchlist }

type stubSnapshot struct {
	set *domain.SuggestionSet
}

func (s stubSnapshot) Latest() *domain.SuggestionSet { return s.set }

func testQuotes() *stubQuoteReader {
	return &stubQuoteReader{
		reports: map[string]*domain.Report{
			"NVDA": {
				Symbol: "NVDA", Kind: domain.KindStock, Price: "134.50", ChangePercent: "3.10%",
				Signal: domain.SignalBuy, Icon: "✅", FetchedAt: time.Unix(0, 0).UTC(),
			},
		},
		errs: map[string]error{
			"EURUSD": fmt.Errorf("%w: note", domain.ErrRateLimited),
		},
		set: &domain.SuggestionSet{
			Stocks:      []domain.Report{{Symbol: "NVDA", Kind: domain.KindStock, Signal: domain.SignalBuy}},
			Forex:       []domain.Report{{Symbol: "EURUSD", Kind: domain.KindForex, Signal: domain.SignalWait}},
			Commodities: []domain.Report{},
			Failures: []domain.SuggestionFailure{
				{Symbol: "GC=F", Kind: domain.KindCommodity, Error: domain.ErrorKindRateLimit},
			},
		},
	}
}

func testServer(snapshot SuggestionSnapshot) (*sdkmcp.Server, *stubQuoteReader) {
	quotes := testQuotes()
	srv := NewServer(nil, quotes, snapshot, ServerConfig{RequestTimeout: time.Second})
	return srv, quotes
}

func connectInMemory(ctx context.Context, srv *sdkmcp.Server) (*sdkmcp.ClientSession, context.CancelFunc, error) {
	clientTransport, serverTransport := sdkmcp.NewInMemoryTransports()
	runCtx, cancel := context.WithCancel(ctx)
	go func() { _ = srv.Run(runCtx, serverTransport) }()

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "mcp-test-client", Version: "1.0.0"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	if err != nil {
		cancel()
		return nil, nil, err
	}
	return session, cancel, nil
}

type authRoundTripper struct {
	token string
	base  http.RoundTripper
}

func (t *authRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	if t.token != "" {
		clone.Header.Set("Authorization", "Bearer "+t.token)
	}
	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}
	return base.RoundTrip(clone)
}

func decodeResourceJSON(result *sdkmcp.ReadResourceResult, out any) error {
	if len(result.Contents) == 0 {
		return nil
	}
	return json.Unmarshal([]byte(result.Contents[0].Text), out)
}

func decodeStructured(result *sdkmcp.CallToolResult, out any) error {
	body, err := json.Marshal(result.StructuredContent)
	if err != nil {
		return err
	}
	return json.Unmarshal(body, out)
}

func textContent(result *sdkmcp.CallToolResult) string {
	for _, c := range result.Content {
		if text, ok := c.(*sdkmcp.TextContent); ok {
			return text.Text
		}
	}
	return ""
}
