package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand/v2"
	"time"

	"tickerpulse/internal/advisor"
	"tickerpulse/internal/classifier"
	"tickerpulse/internal/domain"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

const (
	defaultSuggestionWorkers = 4
	defaultRecentLookups     = 20
)

// ErrHistoryDisabled is returned by RecentLookups when no store is configured.
var ErrHistoryDisabled = errors.New("lookup history is not configured")

type QuoteProvider interface {
	FetchQuote(ctx context.Context, c domain.Classification) (*domain.Quote, error)
}

type QuoteCache interface {
	Get(ctx context.Context, symbol string) (*domain.Quote, bool, error)
	Set(ctx context.Context, q *domain.Quote) error
}

type LookupHistory interface {
	InsertLookup(ctx context.Context, rec domain.LookupRecord) (domain.LookupRecord, error)
	ListRecent(ctx context.Context, limit int) ([]domain.LookupRecord, error)
}

type QuoteServiceOptions struct {
	Cache   QuoteCache
	History LookupHistory
	// Workers bounds concurrent provider calls during a suggestion batch.
	Workers int
	// Intn picks the tip shown with a lookup; defaults to math/rand/v2.
	Intn func(int) int
	Now  func() time.Time
}

type QuoteService struct {
	tracer     trace.Tracer
	classifier *classifier.Classifier
	provider   QuoteProvider
	cache      QuoteCache
	history    LookupHistory
	watchlist  domain.Watchlist
	workers    int
	intn       func(int) int
	now        func() time.Time
}

func NewQuoteService(
	tracer trace.Tracer,
	cls *classifier.Classifier,
	provider QuoteProvider,
	watchlist domain.Watchlist,
	opts QuoteServiceOptions,
) *QuoteService {
	if cls == nil {
		cls = classifier.New(watchlist)
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = defaultSuggestionWorkers
	}
	intn := opts.Intn
	if intn == nil {
		intn = rand.IntN
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &QuoteService{
		tracer:     tracer,
		classifier: cls,
		provider:   provider,
		cache:      opts.Cache,
		history:    opts.History,
		watchlist:  watchlist,
		workers:    workers,
		intn:       intn,
		now:        now,
	}
}

// Classify normalizes raw input and reports its asset kind.
func (s *QuoteService) Classify(raw string) (domain.Classification, error) {
	symbol := classifier.NormalizeSymbol(raw)
	if symbol == "" {
		return domain.Classification{}, domain.ErrEmptySymbol
	}
	return s.classifier.Classify(symbol), nil
}

// Lookup fetches one symbol and renders it with advice and a tip.
// Failures come back as *domain.LookupError.
func (s *QuoteService) Lookup(ctx context.Context, raw string) (*domain.Report, error) {
	ctx, span := s.tracer.Start(ctx, "quote-service.lookup")
	defer span.End()

	c, err := s.Classify(raw)
	if err != nil {
		return nil, &domain.LookupError{Err: err}
	}
	span.SetAttributes(
		attribute.String("quote.symbol", c.Symbol),
		attribute.String("quote.kind", string(c.Kind)),
	)

	q, err := s.fetch(ctx, c)
	if err != nil {
		span.RecordError(err)
		s.record(ctx, domain.LookupRecord{Symbol: c.Symbol, Kind: c.Kind, ErrorKind: domain.KindOf(err)})
		return nil, &domain.LookupError{Symbol: c.Symbol, Kind: c.Kind, Err: err}
	}

	report := buildReport(c, q)
	report.Tip = advisor.Tip(s.watchlist.Tips, s.intn)
	s.record(ctx, domain.LookupRecord{
		Symbol:        report.Symbol,
		Kind:          report.Kind,
		Price:         report.Price,
		ChangePercent: report.ChangePercent,
		Signal:        report.Signal,
	})
	return report, nil
}

type trackedJob struct {
	kind   domain.AssetKind
	ticker domain.TrackedTicker
}

type trackedResult struct {
	report *domain.Report
	err    error
}

// Suggestions looks up every watchlist entry with bounded concurrency.
// Stocks and commodities keep only buy signals; forex keeps every pair that
// resolved. Output order follows the watchlist regardless of completion order.
func (s *QuoteService) Suggestions(ctx context.Context) (*domain.SuggestionSet, error) {
	ctx, span := s.tracer.Start(ctx, "quote-service.suggestions")
	defer span.End()

	var jobs []trackedJob
	for _, kind := range domain.AssetKinds {
		for _, t := range s.watchlist.Tracked(kind) {
			jobs = append(jobs, trackedJob{kind: kind, ticker: t})
		}
	}
	span.SetAttributes(attribute.Int("suggestions.tracked", len(jobs)))

	results := make([]trackedResult, len(jobs))
	var g errgroup.Group
	g.SetLimit(s.workers)
	for i, j := range jobs {
		g.Go(func() error {
			if ctx.Err() != nil {
				results[i] = trackedResult{err: fmt.Errorf("%w: %v", domain.ErrNetworkFailure, ctx.Err())}
				return nil
			}
			report, err := s.lookupTracked(ctx, j)
			results[i] = trackedResult{report: report, err: err}
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("suggestions: %w", err)
	}

	set := &domain.SuggestionSet{
		Stocks:      []domain.Report{},
		Forex:       []domain.Report{},
		Commodities: []domain.Report{},
		GeneratedAt: s.now().UTC(),
	}
	for i, res := range results {
		j := jobs[i]
		if res.err != nil {
			log.Printf("suggestions: %s %s failed: %v", j.kind, j.ticker.Symbol, res.err)
			set.Failures = append(set.Failures, domain.SuggestionFailure{
				Symbol:  j.ticker.Symbol,
				Kind:    j.kind,
				Error:   domain.KindOf(res.err),
				Message: domain.UserMessage(j.ticker.Symbol, j.kind, res.err),
			})
			continue
		}
		switch j.kind {
		case domain.KindStock:
			if res.report.Signal == domain.SignalBuy {
				set.Stocks = append(set.Stocks, *res.report)
			}
		case domain.KindForex:
			set.Forex = append(set.Forex, *res.report)
		case domain.KindCommodity:
			if res.report.Signal == domain.SignalBuy {
				set.Commodities = append(set.Commodities, *res.report)
			}
		}
	}
	span.SetAttributes(attribute.Int("suggestions.failures", len(set.Failures)))
	return set, nil
}

// Watchlist returns a copy of the configured tracked tickers and tips.
func (s *QuoteService) Watchlist() domain.Watchlist {
	return domain.Watchlist{
		Stocks:      append([]domain.TrackedTicker(nil), s.watchlist.Stocks...),
		Forex:       append([]domain.TrackedTicker(nil), s.watchlist.Forex...),
		Commodities: append([]domain.TrackedTicker(nil), s.watchlist.Commodities...),
		Tips:        append([]string(nil), s.watchlist.Tips...),
	}
}

// RandomTip returns one of the configured beginner tips.
func (s *QuoteService) RandomTip() string {
	return advisor.Tip(s.watchlist.Tips, s.intn)
}

func (s *QuoteService) RecentLookups(ctx context.Context, limit int) ([]domain.LookupRecord, error) {
	ctx, span := s.tracer.Start(ctx, "quote-service.recent-lookups")
	defer span.End()

	if s.history == nil {
		return nil, ErrHistoryDisabled
	}
	if limit <= 0 {
		limit = defaultRecentLookups
	}
	return s.history.ListRecent(ctx, limit)
}

func (s *QuoteService) lookupTracked(ctx context.Context, j trackedJob) (*domain.Report, error) {
	c := domain.Classification{Symbol: classifier.NormalizeSymbol(j.ticker.Symbol), Kind: j.kind}
	if j.kind == domain.KindForex {
		pair, ok := classifier.SplitForexPair(c.Symbol)
		if !ok {
			return nil, fmt.Errorf("%w: %s is not a currency pair", domain.ErrNotFound, c.Symbol)
		}
		c.Pair = &pair
	}
	q, err := s.fetch(ctx, c)
	if err != nil {
		return nil, err
	}
	report := buildReport(c, q)
	report.Reason = j.ticker.Reason
	return report, nil
}

// fetch reads through the cache; cache errors only cost a provider call.
func (s *QuoteService) fetch(ctx context.Context, c domain.Classification) (*domain.Quote, error) {
	if s.cache != nil {
		q, ok, err := s.cache.Get(ctx, c.Symbol)
		if err != nil {
			log.Printf("quote cache get %s: %v", c.Symbol, err)
		} else if ok && q.Kind == c.Kind {
			return q, nil
		}
	}
	if s.provider == nil {
		return nil, fmt.Errorf("%w: no quote provider configured", domain.ErrNetworkFailure)
	}

	q, err := s.provider.FetchQuote(ctx, c)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, q); err != nil {
			log.Printf("quote cache set %s: %v", c.Symbol, err)
		}
	}
	return q, nil
}

func (s *QuoteService) record(ctx context.Context, rec domain.LookupRecord) {
	if s.history == nil {
		return
	}
	if _, err := s.history.InsertLookup(ctx, rec); err != nil {
		log.Printf("record lookup %s: %v", rec.Symbol, err)
	}
}

func buildReport(c domain.Classification, q *domain.Quote) *domain.Report {
	adv := advisor.Advise(q.ChangePercent)
	if c.Kind == domain.KindForex {
		adv = advisor.ForexAdvice()
	}
	return &domain.Report{
		Symbol:        c.Symbol,
		Kind:          c.Kind,
		Price:         domain.FormatPrice(c.Kind, q.Price),
		ChangePercent: q.ChangePercent,
		Signal:        adv.Signal,
		Advice:        adv.Message,
		Icon:          adv.Icon,
		FetchedAt:     q.FetchedAt,
	}
}
