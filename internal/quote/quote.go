// Package quote fetches stock quotes from external market-data providers.
package quote

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrSymbolNotFound is returned when the provider has no price for a symbol.
var ErrSymbolNotFound = errors.New("symbol not found")

// Quote is a point-in-time price for one symbol.
type Quote struct {
	Symbol        string              `json:"symbol"`
	Price         decimal.Decimal     `json:"price"`
	Source        string              `json:"source"`
	Change        decimal.NullDecimal `json:"change"`
	PercentChange decimal.NullDecimal `json:"percent_change"`
	High          decimal.NullDecimal `json:"high"`
	Low           decimal.NullDecimal `json:"low"`
	Open          decimal.NullDecimal `json:"open"`
	PreviousClose decimal.NullDecimal `json:"previous_close"`
	Timestamp     int64               `json:"timestamp"`
}

// Provider fetches the current quote for a symbol.
type Provider interface {
	// Name returns the provider's identifier used in logs and metrics.
	Name() string

	// Quote returns the latest quote. Failures talking to the provider are
	// reported as *UpstreamError; an unknown symbol as ErrSymbolNotFound.
	Quote(ctx context.Context, symbol string) (*Quote, error)
}

// ErrorKind classifies upstream failures.
type ErrorKind string

const (
	KindNetwork   ErrorKind = "network"
	KindTimeout   ErrorKind = "timeout"
	KindAuth      ErrorKind = "auth"
	KindMalformed ErrorKind = "malformed"
	KindStatus    ErrorKind = "status"
)

// UpstreamError is a failed call to a quote provider.
type UpstreamError struct {
	Provider   string
	Kind       ErrorKind
	StatusCode int
	Err        error
}

// Error implements the error interface.
func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: %s error (HTTP %d): %v", e.Provider, e.Kind, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %s error: %v", e.Provider, e.Kind, e.Err)
}

// Unwrap returns the underlying cause.
func (e *UpstreamError) Unwrap() error {
	return e.Err
}
