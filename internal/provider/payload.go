package provider

import (
	"fmt"
	"strings"

	"tickerpulse/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/tidwall/gjson"
)

const (
	globalQuoteKey   = "Global Quote"
	quotePriceKey    = `05\. price`
	quoteChangeKey   = `10\. change percent`
	exchangeRateKey  = "Realtime Currency Exchange Rate"
	exchangePriceKey = `5\. Exchange Rate`
)

// Informational fields Alpha Vantage returns with HTTP 200 when throttling.
var rateLimitKeys = []string{"Note", "Information"}

// ParseGlobalQuote extracts price and daily change from a GLOBAL_QUOTE payload.
func ParseGlobalQuote(body []byte) (*domain.Quote, error) {
	root, err := parseRoot(body)
	if err != nil {
		return nil, err
	}

	gq := root.Get(globalQuoteKey)
	if !gq.IsObject() || len(gq.Map()) == 0 {
		return nil, fmt.Errorf("%w: global quote missing", domain.ErrNotFound)
	}
	price, err := parsePrice(gq.Get(quotePriceKey))
	if err != nil {
		return nil, err
	}
	return &domain.Quote{
		Price:         price,
		ChangePercent: strings.TrimSpace(gq.Get(quoteChangeKey).String()),
	}, nil
}

// ParseExchangeRate extracts the rate from a CURRENCY_EXCHANGE_RATE payload.
func ParseExchangeRate(body []byte) (*domain.Quote, error) {
	root, err := parseRoot(body)
	if err != nil {
		return nil, err
	}

	fx := root.Get(exchangeRateKey)
	if !fx.IsObject() || len(fx.Map()) == 0 {
		return nil, fmt.Errorf("%w: exchange rate missing", domain.ErrNotFound)
	}
	price, err := parsePrice(fx.Get(exchangePriceKey))
	if err != nil {
		return nil, err
	}
	return &domain.Quote{Price: price}, nil
}

func parseRoot(body []byte) (gjson.Result, error) {
	if !gjson.ValidBytes(body) {
		return gjson.Result{}, fmt.Errorf("%w: invalid json", domain.ErrMalformedResponse)
	}
	root := gjson.ParseBytes(body)
	if !root.IsObject() {
		return gjson.Result{}, fmt.Errorf("%w: expected json object", domain.ErrMalformedResponse)
	}
	for _, key := range rateLimitKeys {
		if note := root.Get(key); note.Exists() {
			return gjson.Result{}, fmt.Errorf("%w: %s", domain.ErrRateLimited, note.String())
		}
	}
	if msg := root.Get("Error Message"); msg.Exists() {
		return gjson.Result{}, fmt.Errorf("%w: %s", domain.ErrNotFound, msg.String())
	}
	return root, nil
}

func parsePrice(field gjson.Result) (decimal.Decimal, error) {
	raw := strings.TrimSpace(field.String())
	if !field.Exists() || raw == "" {
		return decimal.Decimal{}, fmt.Errorf("%w: price unavailable", domain.ErrNotFound)
	}
	price, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: price %q: %v", domain.ErrMalformedResponse, raw, err)
	}
	if !price.IsPositive() {
		return decimal.Decimal{}, fmt.Errorf("%w: non-positive price %s", domain.ErrNotFound, raw)
	}
	return price, nil
}
