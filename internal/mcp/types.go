package mcp

import (
	"errors"
	"fmt"
	"strings"

	"tickerpulse/internal/domain"
)

type quoteLookupInput struct {
	Symbol string `json:"symbol" jsonschema:"stock ticker, six-letter forex pair or commodity future (e.g. NVDA, EURUSD, GC=F)"`
}

type quoteLookupOutput struct {
	Report *domain.Report `json:"report"`
}

type symbolClassifyInput struct {
	Symbol string `json:"symbol" jsonschema:"symbol to classify"`
}

type symbolClassifyOutput struct {
	Classification domain.Classification `json:"classification"`
}

type suggestionsListInput struct {
	Kind    string `json:"kind,omitempty" jsonschema:"optional asset kind: stock, forex, commodity"`
	Refresh bool   `json:"refresh,omitempty" jsonschema:"force a live refresh instead of the last scheduled result"`
}

type suggestionsListOutput struct {
	Stocks      []domain.Report            `json:"stocks,omitempty"`
	Forex       []domain.Report            `json:"forex,omitempty"`
	Commodities []domain.Report            `json:"commodities,omitempty"`
	Failures    []domain.SuggestionFailure `json:"failures,omitempty"`
}

func normalizeKind(kind string) (domain.AssetKind, error) {
	k := domain.AssetKind(strings.ToLower(strings.TrimSpace(kind)))
	if k == "" {
		return "", nil
	}
	if !k.IsValid() {
		return "", fmt.Errorf("unsupported kind: %s", kind)
	}
	return k, nil
}

// filterSuggestions narrows set to kind; an empty kind keeps everything.
func filterSuggestions(set *domain.SuggestionSet, kind domain.AssetKind) suggestionsListOutput {
	if set == nil {
		return suggestionsListOutput{}
	}
	if kind == "" {
		return suggestionsListOutput{
			Stocks:      set.Stocks,
			Forex:       set.Forex,
			Commodities: set.Commodities,
			Failures:    set.Failures,
		}
	}

	out := suggestionsListOutput{}
	switch kind {
	case domain.KindStock:
		out.Stocks = set.Stocks
	case domain.KindForex:
		out.Forex = set.Forex
	case domain.KindCommodity:
		out.Commodities = set.Commodities
	}
	for _, f := range set.Failures {
		if f.Kind == kind {
			out.Failures = append(out.Failures, f)
		}
	}
	return out
}

// toolError renders lookup failures with their user-facing text and kind.
func toolError(err error) error {
	var le *domain.LookupError
	if errors.As(err, &le) {
		return fmt.Errorf("%s (%s)", le.Message(), domain.KindOf(err))
	}
	return err
}
