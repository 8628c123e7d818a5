package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type AssetKind string

const (
	KindStock     AssetKind = "stock"
	KindForex     AssetKind = "forex"
	KindCommodity AssetKind = "commodity"
)

// AssetKinds lists kinds in the order suggestion lists are rendered.
var AssetKinds = []AssetKind{KindStock, KindForex, KindCommodity}

func (k AssetKind) IsValid() bool {
	switch k {
	case KindStock, KindForex, KindCommodity:
		return true
	}
	return false
}

// CurrencyPair is the base/quote split of a six-letter forex symbol.
type CurrencyPair struct {
	Base  string `json:"base"`
	Quote string `json:"quote"`
}

func (p CurrencyPair) Symbol() string {
	return p.Base + p.Quote
}

type Classification struct {
	Symbol string        `json:"symbol"`
	Kind   AssetKind     `json:"kind"`
	Pair   *CurrencyPair `json:"pair,omitempty"`
}

// Quote is the provider payload reduced to what the advisor needs.
// ChangePercent is empty when the source does not report one.
type Quote struct {
	Symbol        string          `json:"symbol"`
	Kind          AssetKind       `json:"kind"`
	Price         decimal.Decimal `json:"price"`
	ChangePercent string          `json:"change_percent,omitempty"`
	FetchedAt     time.Time       `json:"fetched_at"`
}

type Signal string

const (
	SignalBuy  Signal = "buy"
	SignalSell Signal = "sell"
	SignalWait Signal = "wait"
)

type Advice struct {
	Signal  Signal `json:"signal"`
	Message string `json:"message"`
	Icon    string `json:"icon"`
	NoData  bool   `json:"no_data,omitempty"`
}

// TrackedTicker is a configured watchlist entry with its static rationale.
type TrackedTicker struct {
	Symbol string `json:"symbol" yaml:"symbol"`
	Reason string `json:"reason" yaml:"reason"`
}

type Watchlist struct {
	Stocks      []TrackedTicker `json:"stocks" yaml:"stocks"`
	Forex       []TrackedTicker `json:"forex" yaml:"forex"`
	Commodities []TrackedTicker `json:"commodities" yaml:"commodities"`
	Tips        []string        `json:"tips,omitempty" yaml:"tips"`
}

// Tracked returns the entries configured for kind.
func (w Watchlist) Tracked(kind AssetKind) []TrackedTicker {
	switch kind {
	case KindStock:
		return w.Stocks
	case KindForex:
		return w.Forex
	case KindCommodity:
		return w.Commodities
	}
	return nil
}

// Report is the rendered result of one lookup.
type Report struct {
	Symbol        string    `json:"symbol"`
	Kind          AssetKind `json:"kind"`
	Price         string    `json:"price"`
	ChangePercent string    `json:"change_percent,omitempty"`
	Signal        Signal    `json:"signal"`
	Advice        string    `json:"advice"`
	Icon          string    `json:"icon"`
	Reason        string    `json:"reason,omitempty"`
	Tip           string    `json:"tip,omitempty"`
	FetchedAt     time.Time `json:"fetched_at"`
}

// SuggestionFailure records a tracked ticker whose lookup failed.
type SuggestionFailure struct {
	Symbol  string    `json:"symbol"`
	Kind    AssetKind `json:"kind"`
	Error   ErrorKind `json:"error"`
	Message string    `json:"message"`
}

type SuggestionSet struct {
	Stocks      []Report            `json:"stocks"`
	Forex       []Report            `json:"forex"`
	Commodities []Report            `json:"commodities"`
	Failures    []SuggestionFailure `json:"failures,omitempty"`
	GeneratedAt time.Time           `json:"generated_at"`
}

// ByKind returns the suggestion list for kind.
func (s *SuggestionSet) ByKind(kind AssetKind) []Report {
	if s == nil {
		return nil
	}
	switch kind {
	case KindStock:
		return s.Stocks
	case KindForex:
		return s.Forex
	case KindCommodity:
		return s.Commodities
	}
	return nil
}

type LookupRecord struct {
	ID            string    `json:"id"`
	Symbol        string    `json:"symbol"`
	Kind          AssetKind `json:"kind"`
	Price         string    `json:"price,omitempty"`
	ChangePercent string    `json:"change_percent,omitempty"`
	Signal        Signal    `json:"signal,omitempty"`
	ErrorKind     ErrorKind `json:"error_kind,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// FormatPrice renders four decimals for exchange rates and two for everything else.
func FormatPrice(kind AssetKind, price decimal.Decimal) string {
	if kind == KindForex {
		return price.StringFixed(4)
	}
	return price.StringFixed(2)
}
