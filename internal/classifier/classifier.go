// Package classifier assigns an asset kind to a user-entered ticker.
//
// Classification is allow-list driven: only symbols configured as forex pairs
// or commodities leave the stock default, so six-letter stock tickers are
// never mistaken for currency pairs.
package classifier

import (
	"strings"

	"tickerpulse/internal/domain"
)

type Classifier struct {
	forex       map[string]struct{}
	commodities map[string]struct{}
}

// New builds a classifier from the watchlist's forex and commodity entries.
func New(w domain.Watchlist) *Classifier {
	c := &Classifier{
		forex:       make(map[string]struct{}, len(w.Forex)),
		commodities: make(map[string]struct{}, len(w.Commodities)),
	}
	for _, t := range w.Forex {
		symbol := NormalizeSymbol(t.Symbol)
		if _, ok := SplitForexPair(symbol); ok {
			c.forex[symbol] = struct{}{}
		}
	}
	for _, t := range w.Commodities {
		c.commodities[NormalizeSymbol(t.Symbol)] = struct{}{}
	}
	return c
}

// NormalizeSymbol uppercases and trims raw user input.
func NormalizeSymbol(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

// Classify never fails; anything not on an allow-list is a stock.
func (c *Classifier) Classify(symbol string) domain.Classification {
	out := domain.Classification{Symbol: symbol, Kind: domain.KindStock}
	if c == nil {
		return out
	}
	if _, ok := c.forex[symbol]; ok {
		pair, _ := SplitForexPair(symbol)
		out.Kind = domain.KindForex
		out.Pair = &pair
		return out
	}
	if _, ok := c.commodities[symbol]; ok {
		out.Kind = domain.KindCommodity
	}
	return out
}

// SplitForexPair splits a six-letter symbol into base and quote currencies.
func SplitForexPair(symbol string) (domain.CurrencyPair, bool) {
	if !IsCurrencyPairShape(symbol) {
		return domain.CurrencyPair{}, false
	}
	return domain.CurrencyPair{Base: symbol[:3], Quote: symbol[3:]}, true
}

// IsCurrencyPairShape reports whether s is exactly six ASCII letters.
func IsCurrencyPairShape(s string) bool {
	if len(s) != 6 {
		return false
	}
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if (ch < 'A' || ch > 'Z') && (ch < 'a' || ch > 'z') {
			return false
		}
	}
	return true
}
