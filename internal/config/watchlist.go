package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"tickerpulse/internal/classifier"
	"tickerpulse/internal/domain"

	"gopkg.in/yaml.v3"
)

// DefaultWatchlist is used when no watchlist file is configured.
func DefaultWatchlist() domain.Watchlist {
	return domain.Watchlist{
		Stocks: []domain.TrackedTicker{
			{Symbol: "NVDA", Reason: "AI growth & semiconductor leader"},
			{Symbol: "JNJ", Reason: "Stable dividends & safe defensive pick"},
			{Symbol: "LLY", Reason: "Strong pipeline & drug sales growth"},
			{Symbol: "CRWV", Reason: "AI infrastructure play (volatile)"},
		},
		Forex: []domain.TrackedTicker{
			{Symbol: "EURUSD", Reason: "Popular currency pair, Euro vs USD"},
			{Symbol: "GBPUSD", Reason: "British Pound vs USD"},
			{Symbol: "USDJPY", Reason: "USD vs Japanese Yen"},
		},
		Commodities: []domain.TrackedTicker{
			{Symbol: "GC=F", Reason: "Gold futures"},
			{Symbol: "CL=F", Reason: "Crude Oil futures"},
			{Symbol: "SI=F", Reason: "Silver futures"},
		},
		Tips: defaultTips(),
	}
}

func defaultTips() []string {
	return []string{
		"Only invest what you can afford to lose.",
		"Start by learning how charts work.",
		"It’s okay to wait — patience is smart.",
		"Always read company news before buying.",
		"Practice with a virtual account first!",
	}
}

// LoadWatchlist reads a YAML watchlist. An empty path or a missing file yields the defaults.
func LoadWatchlist(path string) (domain.Watchlist, error) {
	if path == "" {
		return DefaultWatchlist(), nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultWatchlist(), nil
	}
	if err != nil {
		return domain.Watchlist{}, fmt.Errorf("read watchlist: %w", err)
	}

	var wl domain.Watchlist
	if err := yaml.Unmarshal(data, &wl); err != nil {
		return domain.Watchlist{}, fmt.Errorf("parse watchlist: %w", err)
	}
	if err := NormalizeWatchlist(&wl); err != nil {
		return domain.Watchlist{}, err
	}
	if len(wl.Tips) == 0 {
		wl.Tips = defaultTips()
	}
	return wl, nil
}

// NormalizeWatchlist uppercases symbols in place and rejects entries the
// classifier could not honour.
func NormalizeWatchlist(wl *domain.Watchlist) error {
	seen := make(map[string]domain.AssetKind)
	for _, kind := range domain.AssetKinds {
		entries := wl.Tracked(kind)
		for i := range entries {
			symbol := classifier.NormalizeSymbol(entries[i].Symbol)
			if symbol == "" {
				return fmt.Errorf("watchlist %s entry %d: empty symbol", kind, i)
			}
			if kind == domain.KindForex && !classifier.IsCurrencyPairShape(symbol) {
				return fmt.Errorf("watchlist forex entry %s: must be six letters", symbol)
			}
			if prev, ok := seen[symbol]; ok {
				return fmt.Errorf("watchlist symbol %s listed as both %s and %s", symbol, prev, kind)
			}
			seen[symbol] = kind
			entries[i].Symbol = symbol
			entries[i].Reason = strings.TrimSpace(entries[i].Reason)
		}
	}

	tips := wl.Tips[:0]
	for _, tip := range wl.Tips {
		if tip = strings.TrimSpace(tip); tip != "" {
			tips = append(tips, tip)
		}
	}
	wl.Tips = tips
	return nil
}
