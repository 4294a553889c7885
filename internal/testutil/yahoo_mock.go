package testutil

import (
	"context"
	"sync"

	"github.com/quotelab/stock-quote-backend/internal/yahoo"
)

// MockYahooClient is a mock implementation of yahoo.Client for testing.
// It returns predefined data instead of making actual API calls and counts
// how often each method is invoked. Counters are mutex-guarded because batch
// lookups call the client from several goroutines.
type MockYahooClient struct {
	mu sync.Mutex

	// Meta is returned from GetChartMeta when MetaErr is nil.
	Meta yahoo.ChartMeta
	// MetaErr, when set, is returned from GetChartMeta.
	MetaErr error
	// Fundamentals is returned from GetFundamentals when FundamentalsOK is true.
	Fundamentals yahoo.Fundamentals
	// FundamentalsOK mimics whether any candidate endpoint succeeded.
	FundamentalsOK bool

	// ChartCalls counts GetChartMeta invocations.
	ChartCalls int
	// FundamentalsCalls counts GetFundamentals invocations.
	FundamentalsCalls int
	// LastSymbol records the symbol of the most recent call.
	LastSymbol string
}

// NewMockYahooClient creates a mock with a usable default: a live price, a
// previous close, and an empty but "successful" fundamentals bundle.
func NewMockYahooClient() *MockYahooClient {
	return &MockYahooClient{
		Meta: yahoo.ChartMeta{
			Currency:           "USD",
			Symbol:             "TEST",
			ExchangeName:       "NMS",
			RegularMarketPrice: Float(100.5),
			PreviousClose:      Float(99.0),
		},
		FundamentalsOK: true,
	}
}

// GetChartMeta returns the configured meta or error.
func (m *MockYahooClient) GetChartMeta(_ context.Context, symbol string) (yahoo.ChartMeta, error) {
	m.mu.Lock()
	m.ChartCalls++
	m.LastSymbol = symbol
	m.mu.Unlock()
	if m.MetaErr != nil {
		return yahoo.ChartMeta{}, m.MetaErr
	}
	return m.Meta, nil
}

// GetFundamentals returns the configured bundle and success flag.
func (m *MockYahooClient) GetFundamentals(_ context.Context, symbol string) (yahoo.Fundamentals, bool) {
	m.mu.Lock()
	m.FundamentalsCalls++
	m.LastSymbol = symbol
	m.mu.Unlock()
	if !m.FundamentalsOK {
		return yahoo.Fundamentals{}, false
	}
	return m.Fundamentals, true
}

// WithMeta configures the chart meta to return.
func (m *MockYahooClient) WithMeta(meta yahoo.ChartMeta) *MockYahooClient {
	m.Meta = meta
	return m
}

// WithChartError configures GetChartMeta to fail.
func (m *MockYahooClient) WithChartError(err error) *MockYahooClient {
	m.MetaErr = err
	return m
}

// WithFundamentals configures the fundamentals bundle to return.
func (m *MockYahooClient) WithFundamentals(f yahoo.Fundamentals) *MockYahooClient {
	m.Fundamentals = f
	m.FundamentalsOK = true
	return m
}

// WithoutFundamentals configures the mock as if every candidate endpoint failed.
func (m *MockYahooClient) WithoutFundamentals() *MockYahooClient {
	m.FundamentalsOK = false
	return m
}

// Float returns a pointer to v, for building fixtures with optional fields.
func Float(v float64) *float64 {
	return &v
}
