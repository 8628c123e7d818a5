package domain

import (
	"errors"
	"fmt"
)

var (
	ErrEmptySymbol       = errors.New("symbol is required")
	ErrNetworkFailure    = errors.New("network failure")
	ErrRateLimited       = errors.New("rate limited")
	ErrNotFound          = errors.New("symbol not found")
	ErrMalformedResponse = errors.New("malformed response")
	ErrNoData            = errors.New("no data")
)

type ErrorKind string

const (
	ErrorKindNone      ErrorKind = ""
	ErrorKindEmpty     ErrorKind = "empty_symbol"
	ErrorKindNetwork   ErrorKind = "network_failure"
	ErrorKindRateLimit ErrorKind = "rate_limited"
	ErrorKindNotFound  ErrorKind = "not_found"
	ErrorKindMalformed ErrorKind = "malformed_response"
	ErrorKindNoData    ErrorKind = "no_data"
	ErrorKindUnknown   ErrorKind = "unknown"
)

// KindOf maps an error onto the lookup error taxonomy.
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return ErrorKindNone
	case errors.Is(err, ErrEmptySymbol):
		return ErrorKindEmpty
	case errors.Is(err, ErrRateLimited):
		return ErrorKindRateLimit
	case errors.Is(err, ErrNotFound):
		return ErrorKindNotFound
	case errors.Is(err, ErrMalformedResponse):
		return ErrorKindMalformed
	case errors.Is(err, ErrNetworkFailure):
		return ErrorKindNetwork
	case errors.Is(err, ErrNoData):
		return ErrorKindNoData
	default:
		return ErrorKindUnknown
	}
}

// UserMessage renders err as the text shown in place of a quote.
func UserMessage(symbol string, kind AssetKind, err error) string {
	switch KindOf(err) {
	case ErrorKindNone:
		return ""
	case ErrorKindEmpty:
		return "Enter a symbol to look up."
	case ErrorKindRateLimit:
		return "API limit reached, try again in a minute."
	case ErrorKindNotFound:
		if kind == KindForex {
			return fmt.Sprintf("Forex pair %s not found.", symbol)
		}
		return fmt.Sprintf("Stock/Commodity %s not found or price unavailable.", symbol)
	case ErrorKindMalformed:
		return fmt.Sprintf("Unexpected data for %s, try again.", symbol)
	case ErrorKindNetwork:
		return "Could not reach the market data service, try again."
	case ErrorKindNoData:
		return fmt.Sprintf("No data for %s.", symbol)
	default:
		return fmt.Sprintf("Lookup for %s failed, try again.", symbol)
	}
}

// LookupError carries the symbol and kind a failed lookup was for.
type LookupError struct {
	Symbol string
	Kind   AssetKind
	Err    error
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("lookup %s (%s): %v", e.Symbol, e.Kind, e.Err)
}

func (e *LookupError) Unwrap() error { return e.Err }

// Message is the user-facing text for this failure.
func (e *LookupError) Message() string {
	return UserMessage(e.Symbol, e.Kind, e.Err)
}
