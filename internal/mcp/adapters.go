package mcp

import (
	"context"

	"tickerpulse/internal/domain"
)

// QuoteReader exposes the quote operations published as tools and resources.
type QuoteReader interface {
	Lookup(ctx context.Context, raw string) (*domain.Report, error)
	Classify(raw string) (domain.Classification, error)
	Suggestions(ctx context.Context) (*domain.SuggestionSet, error)
	Watchlist() domain.Watchlist
}

// SuggestionSnapshot exposes the last scheduled suggestion refresh, if any.
type SuggestionSnapshot interface {
	Latest() *domain.SuggestionSet
}
