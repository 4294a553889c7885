// Package quote turns a ticker symbol into a flat record of price and
// fundamental metrics fetched fresh from the provider on every call.
package quote

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/quotelab/stock-quote-backend/internal/apperrors"
	"github.com/quotelab/stock-quote-backend/internal/yahoo"
)

// Quote is the flat normalized record returned for a symbol. Every
// fundamentals field is a pointer so that a metric the provider does not
// report serializes as JSON null; missing data is never replaced with a
// guessed constant.
type Quote struct {
	Symbol        string    `json:"symbol"`
	CurrentPrice  *float64  `json:"currentPrice"`
	PreviousClose *float64  `json:"previousClose"`
	Timestamp     time.Time `json:"timestamp"`

	MarketCap         *float64 `json:"marketCap"`
	PERatio           *float64 `json:"peRatio"`
	BookValue         *float64 `json:"bookValue"`
	EPS               *float64 `json:"eps"`
	DividendYield     *float64 `json:"dividendYield"`
	DividendRate      *float64 `json:"dividendRate"`
	Beta              *float64 `json:"beta"`
	FreeCashflow      *float64 `json:"freeCashflow"`
	TotalRevenue      *float64 `json:"totalRevenue"`
	ProfitMargins     *float64 `json:"profitMargins"`
	OperatingCashflow *float64 `json:"operatingCashflow"`
	SharesOutstanding *float64 `json:"sharesOutstanding"`
	EnterpriseValue   *float64 `json:"enterpriseValue"`
	PriceToSales      *float64 `json:"priceToSales"`
	PEGRatio          *float64 `json:"pegRatio"`
}

// Service is the quote normalizer. Each Normalize call is independent and
// stateless: nothing is cached or persisted between requests.
type Service struct {
	client yahoo.Client
	logger *zap.Logger
	now    func() time.Time
}

// NewService creates a quote Service backed by the given Yahoo client.
func NewService(client yahoo.Client, logger *zap.Logger) *Service {
	return &Service{
		client: client,
		logger: logger,
		now:    time.Now,
	}
}

// CanonicalSymbol returns the trimmed, upper-cased form of a ticker symbol.
// The canonical form is used for outbound requests and echoed in responses.
func CanonicalSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// Normalize fetches price and fundamentals data for a symbol and assembles
// the flat output record.
//
// The price fetch is mandatory: any failure there aborts the operation with
// an *apperrors.UpstreamError before fundamentals are attempted. The
// fundamentals fetch is best-effort: if every candidate endpoint fails the
// quote is returned with price data only and null fundamentals.
func (s *Service) Normalize(ctx context.Context, symbol string) (Quote, error) {
	sym := CanonicalSymbol(symbol)
	if sym == "" {
		return Quote{}, apperrors.ErrSymbolRequired
	}

	meta, err := s.client.GetChartMeta(ctx, sym)
	if err != nil {
		return Quote{}, &apperrors.UpstreamError{Symbol: sym, Err: err}
	}

	q := Quote{
		Symbol:    sym,
		Timestamp: s.now().UTC(),
	}

	// Live market price, falling back to previous close, then the
	// chart-specific previous close. Absence of all three leaves the price
	// null; a zero or negative value passes through untouched.
	q.CurrentPrice = firstPresent(meta.RegularMarketPrice, meta.PreviousClose, meta.ChartPreviousClose)
	q.PreviousClose = meta.PreviousClose

	bundle, ok := s.client.GetFundamentals(ctx, sym)
	if ok {
		applyFundamentals(&q, bundle)
	} else {
		s.logger.Warn("all fundamentals endpoints failed, returning price data only",
			zap.String("symbol", sym),
		)
	}

	applyDerivations(&q)

	s.logger.Info("normalized quote",
		zap.String("symbol", sym),
		zap.Float64p("currentPrice", q.CurrentPrice),
		zap.Float64p("peRatio", q.PERatio),
		zap.Bool("fundamentals", ok),
	)

	return q, nil
}
