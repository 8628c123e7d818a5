package job

import (
	"context"
	"fmt"
	"log"
	"sync"

	"tickerpulse/internal/domain"

	"github.com/robfig/cron/v3"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const DefaultSchedule = "@every 5m"

type SuggestionSource interface {
	Suggestions(ctx context.Context) (*domain.SuggestionSet, error)
}

// AlertSink receives buy suggestions that were absent from the previous refresh.
type AlertSink interface {
	NotifySuggestions(ctx context.Context, reports []domain.Report)
}

// SuggestionRefresher recomputes watchlist suggestions on a cron schedule and
// keeps the latest set for readers.
type SuggestionRefresher struct {
	tracer   trace.Tracer
	source   SuggestionSource
	sink     AlertSink
	schedule string

	mu       sync.RWMutex
	latest   *domain.SuggestionSet
	lastBuys map[string]struct{}
}

func NewSuggestionRefresher(tracer trace.Tracer, source SuggestionSource, sink AlertSink, schedule string) *SuggestionRefresher {
	if schedule == "" {
		schedule = DefaultSchedule
	}
	return &SuggestionRefresher{
		tracer:   tracer,
		source:   source,
		sink:     sink,
		schedule: schedule,
		lastBuys: map[string]struct{}{},
	}
}

// Start refreshes once, then on every schedule tick. Blocks until ctx is cancelled.
func (r *SuggestionRefresher) Start(ctx context.Context) error {
	if r.source == nil {
		log.Println("Suggestion refresher disabled: no suggestion source")
		<-ctx.Done()
		return nil
	}

	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)))
	if _, err := c.AddFunc(r.schedule, func() { r.refreshAndLog(ctx) }); err != nil {
		return fmt.Errorf("register suggestion refresh %q: %w", r.schedule, err)
	}

	log.Printf("Suggestion refresher starting (schedule %s)...", r.schedule)
	r.refreshAndLog(ctx)
	c.Start()

	<-ctx.Done()
	<-c.Stop().Done()
	log.Println("Suggestion refresher stopped")
	return nil
}

// Refresh computes a new set, stores it and alerts on new buy signals.
func (r *SuggestionRefresher) Refresh(ctx context.Context) (*domain.SuggestionSet, error) {
	ctx, span := r.tracer.Start(ctx, "suggestion-refresher.refresh")
	defer span.End()

	set, err := r.source.Suggestions(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	buys := buySignals(set)
	r.mu.Lock()
	var fresh []domain.Report
	current := make(map[string]struct{}, len(buys))
	for _, rep := range buys {
		current[rep.Symbol] = struct{}{}
		if _, seen := r.lastBuys[rep.Symbol]; !seen {
			fresh = append(fresh, rep)
		}
	}
	// A failed lookup says nothing about the signal, so earlier buys stay known.
	for _, f := range set.Failures {
		if _, seen := r.lastBuys[f.Symbol]; seen {
			current[f.Symbol] = struct{}{}
		}
	}
	r.latest = set
	r.lastBuys = current
	sink := r.sink
	r.mu.Unlock()

	span.SetAttributes(
		attribute.Int("suggestions.buys", len(buys)),
		attribute.Int("suggestions.new_buys", len(fresh)),
	)
	if len(fresh) > 0 && sink != nil {
		sink.NotifySuggestions(ctx, fresh)
	}
	return set, nil
}

// SetAlertSink replaces the sink used for new buy signals.
func (r *SuggestionRefresher) SetAlertSink(sink AlertSink) {
	r.mu.Lock()
	r.sink = sink
	r.mu.Unlock()
}

// Latest returns the most recent set, or nil before the first refresh.
func (r *SuggestionRefresher) Latest() *domain.SuggestionSet {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.latest
}

func (r *SuggestionRefresher) refreshAndLog(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	set, err := r.Refresh(ctx)
	if err != nil {
		log.Printf("suggestion refresh error: %v", err)
		return
	}
	if len(set.Failures) > 0 {
		log.Printf("suggestion refresh: %d tracked tickers failed", len(set.Failures))
	}
}

func buySignals(set *domain.SuggestionSet) []domain.Report {
	var out []domain.Report
	for _, kind := range domain.AssetKinds {
		for _, rep := range set.ByKind(kind) {
			if rep.Signal == domain.SignalBuy {
				out = append(out, rep)
			}
		}
	}
	return out
}
