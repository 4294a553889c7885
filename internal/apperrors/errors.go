package apperrors

import (
	"errors"
	"fmt"
)

// Request validation errors represent client mistakes that are rejected
// before any outbound call is made.
var (
	// ErrSymbolRequired indicates that the symbol query parameter is missing or empty.
	ErrSymbolRequired = errors.New("symbol parameter is required")
)

// UpstreamError indicates that the mandatory price resource could not be
// fetched for a symbol. It aborts the whole quote operation: fundamentals are
// never attempted once the price fetch has failed.
type UpstreamError struct {
	// Symbol is the canonical symbol the fetch was issued for.
	Symbol string
	// Err is the underlying failure (transport error, bad status, unparseable
	// body, or structurally empty result).
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("failed to fetch stock data for %s: %v", e.Symbol, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}
