package quote

import "github.com/quotelab/stock-quote-backend/internal/yahoo"

// firstPresent returns the first non-nil candidate, or nil.
func firstPresent(candidates ...*float64) *float64 {
	for _, c := range candidates {
		if c != nil {
			return c
		}
	}
	return nil
}

// applyFundamentals copies raw metric values out of the provider envelopes
// onto the quote.
//
// The fallback chains here are exhaustive: trailing P/E falls back to forward
// P/E, and beta and market cap each have two source locations. Every other
// field has a single source, and an absent source leaves the field null.
func applyFundamentals(q *Quote, f yahoo.Fundamentals) {
	q.PERatio = firstPresent(f.SummaryDetail.TrailingPE.Raw, f.DefaultKeyStatistics.ForwardPE.Raw)
	q.BookValue = f.DefaultKeyStatistics.BookValue.Raw
	q.EPS = f.DefaultKeyStatistics.TrailingEps.Raw
	q.DividendYield = f.SummaryDetail.DividendYield.Raw
	q.DividendRate = f.SummaryDetail.DividendRate.Raw
	q.Beta = firstPresent(f.SummaryDetail.Beta.Raw, f.DefaultKeyStatistics.Beta.Raw)
	q.FreeCashflow = f.FinancialData.FreeCashflow.Raw
	q.TotalRevenue = f.FinancialData.TotalRevenue.Raw
	q.ProfitMargins = f.FinancialData.ProfitMargins.Raw
	q.OperatingCashflow = f.FinancialData.OperatingCashflow.Raw
	q.SharesOutstanding = f.DefaultKeyStatistics.SharesOutstanding.Raw
	q.EnterpriseValue = f.DefaultKeyStatistics.EnterpriseValue.Raw
	q.PriceToSales = f.SummaryDetail.PriceToSalesTrailing12Months.Raw
	q.PEGRatio = f.DefaultKeyStatistics.PegRatio.Raw
	q.MarketCap = firstPresent(f.Price.MarketCap.Raw, f.SummaryDetail.MarketCap.Raw)
}
