package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/quotelab/stock-quote-backend/internal/httpx"
)

const defaultChartBaseURL = "https://query1.finance.yahoo.com"

// defaultSummaryBaseURLs are the candidate hosts for the quoteSummary
// endpoint, tried in order. query2 tends to be the more reliable of the two.
var defaultSummaryBaseURLs = []string{
	"https://query2.finance.yahoo.com",
	"https://query1.finance.yahoo.com",
}

// summaryModules is the fixed superset of quoteSummary modules requested on
// every fundamentals fetch, so no extracted field is structurally unreachable.
var summaryModules = strings.Join([]string{
	"price",
	"summaryDetail",
	"defaultKeyStatistics",
	"financialData",
	"earnings",
	"balanceSheetHistory",
	"assetProfile",
}, ",")

// Client is the interface implemented by FinanceClient. Consumers depend on
// it so tests can substitute a mock.
type Client interface {
	// GetChartMeta fetches the chart metadata (price fields) for a symbol.
	GetChartMeta(ctx context.Context, symbol string) (ChartMeta, error)
	// GetFundamentals fetches the quoteSummary bundle for a symbol. The
	// second return value is false when no candidate endpoint produced a
	// usable result.
	GetFundamentals(ctx context.Context, symbol string) (Fundamentals, bool)
}

// FinanceClient provides methods for fetching financial data from Yahoo
// Finance. It wraps an httpx.Client carrying the browser-like User-Agent
// Yahoo requires and provides the two queries the quote normalizer needs.
type FinanceClient struct {
	httpClient      *httpx.Client
	chartBaseURL    string
	summaryBaseURLs []string
	logger          *zap.Logger
}

// Option configures a FinanceClient.
type Option func(*FinanceClient)

// WithHTTPClient replaces the default outbound HTTP client.
func WithHTTPClient(c *httpx.Client) Option {
	return func(fc *FinanceClient) {
		fc.httpClient = c
	}
}

// WithChartBaseURL overrides the chart endpoint base URL. Used by tests to
// point the client at a fake upstream.
func WithChartBaseURL(base string) Option {
	return func(fc *FinanceClient) {
		fc.chartBaseURL = base
	}
}

// WithSummaryBaseURLs overrides the ordered candidate hosts for the
// quoteSummary endpoint.
func WithSummaryBaseURLs(bases ...string) Option {
	return func(fc *FinanceClient) {
		fc.summaryBaseURLs = bases
	}
}

// NewFinanceClient creates a new Yahoo Finance client with default endpoints
// and a 10 second outbound timeout.
func NewFinanceClient(logger *zap.Logger, opts ...Option) *FinanceClient {
	fc := &FinanceClient{
		httpClient:      httpx.New(10 * time.Second),
		chartBaseURL:    defaultChartBaseURL,
		summaryBaseURLs: defaultSummaryBaseURLs,
		logger:          logger,
	}
	for _, opt := range opts {
		opt(fc)
	}
	return fc
}

// GetChartMeta fetches the chart resource for a symbol and returns the meta
// object of its first result.
//
// Any failure here is fatal for the quote operation as a whole: a non-success
// status, an unparseable body, a Yahoo-reported error, or an empty result
// collection all return an error.
//
// Parameters:
//   - ctx: Request context; cancellation aborts the outbound call
//   - symbol: Canonical ticker symbol (trimmed, upper-cased)
//
// Returns:
//   - ChartMeta: Price fields for the symbol
//   - error: If the chart resource could not be fetched or contained no result
func (c *FinanceClient) GetChartMeta(ctx context.Context, symbol string) (ChartMeta, error) {
	chartURL := fmt.Sprintf("%s/v8/finance/chart/%s", c.chartBaseURL, url.PathEscape(symbol))

	resp, err := c.httpClient.Get(ctx, chartURL)
	if err != nil {
		return ChartMeta{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ChartMeta{}, fmt.Errorf("chart endpoint returned %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return ChartMeta{}, err
	}

	var parsed ChartResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return ChartMeta{}, fmt.Errorf("unparseable chart response: %w", err)
	}

	if parsed.Chart.Error != nil {
		return ChartMeta{}, fmt.Errorf("yahoo error: %s", parsed.Chart.Error.Description)
	}
	if len(parsed.Chart.Result) == 0 {
		return ChartMeta{}, fmt.Errorf("no chart result for symbol %s", symbol)
	}

	return parsed.Chart.Result[0].Meta, nil
}

// GetFundamentals fetches the quoteSummary resource for a symbol, trying each
// candidate host in order and adopting the first that returns a success
// status with a parseable, non-empty result.
//
// Candidate failures are logged and non-fatal; when every candidate fails the
// method returns ok=false and the caller proceeds with an empty bundle.
// Price data alone is a valid partial success, so this method never returns
// an error.
//
// Parameters:
//   - ctx: Request context; cancellation aborts the outbound calls
//   - symbol: Canonical ticker symbol (trimmed, upper-cased)
//
// Returns:
//   - Fundamentals: The first usable bundle, or the zero value
//   - bool: true if any candidate endpoint succeeded
func (c *FinanceClient) GetFundamentals(ctx context.Context, symbol string) (Fundamentals, bool) {
	for _, base := range c.summaryBaseURLs {
		summaryURL := fmt.Sprintf("%s/v10/finance/quoteSummary/%s?modules=%s",
			base, url.PathEscape(symbol), summaryModules)

		bundle, err := c.fetchSummary(ctx, summaryURL)
		if err != nil {
			c.logger.Warn("fundamentals endpoint failed, trying next candidate",
				zap.String("symbol", symbol),
				zap.String("url", summaryURL),
				zap.Error(err),
			)
			continue
		}
		return bundle, true
	}

	return Fundamentals{}, false
}

// fetchSummary fetches and decodes a single quoteSummary candidate URL.
func (c *FinanceClient) fetchSummary(ctx context.Context, summaryURL string) (Fundamentals, error) {
	resp, err := c.httpClient.Get(ctx, summaryURL)
	if err != nil {
		return Fundamentals{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Fundamentals{}, fmt.Errorf("quoteSummary endpoint returned %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Fundamentals{}, err
	}

	var parsed QuoteSummaryResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return Fundamentals{}, fmt.Errorf("unparseable quoteSummary response: %w", err)
	}

	if len(parsed.QuoteSummary.Result) == 0 {
		return Fundamentals{}, fmt.Errorf("empty quoteSummary result")
	}

	return parsed.QuoteSummary.Result[0], nil
}
