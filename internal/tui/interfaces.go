package tui

import (
	"context"

	"tickerpulse/internal/domain"
)

// QuoteQuerier provides lookups and watchlist suggestions to the TUI.
type QuoteQuerier interface {
	Lookup(ctx context.Context, raw string) (*domain.Report, error)
	Suggestions(ctx context.Context) (*domain.SuggestionSet, error)
}

// SuggestionSnapshot exposes the last scheduled suggestion refresh, if any.
type SuggestionSnapshot interface {
	Latest() *domain.SuggestionSet
}

// Services bundles all service dependencies injected into the TUI.
type Services struct {
	Quotes   QuoteQuerier
	Snapshot SuggestionSnapshot
	Username string
}
