package yahoo

import (
	"bytes"
	"encoding/json"
)

// ChartResponse represents the raw JSON response structure from the Yahoo
// Finance chart API. Only the meta object of the first result is consumed;
// it carries the live and previous-close price fields.
//
// The structure includes:
//   - Chart.Result: Array of result objects (typically contains one element)
//   - Chart.Result[].Meta: Symbol metadata and current price fields
//   - Chart.Error: Optional error object from the Yahoo API
type ChartResponse struct {
	Chart struct {
		Result []ChartResult `json:"result"`
		Error  *APIError     `json:"error"`
	} `json:"chart"`
}

// ChartResult is a single element of the chart result collection.
type ChartResult struct {
	Meta ChartMeta `json:"meta"`
}

// ChartMeta holds the price fields of a chart result. All price fields are
// pointers because Yahoo omits whichever ones it has no data for; absence is
// meaningful and must not collapse to zero.
type ChartMeta struct {
	Currency           string   `json:"currency"`
	Symbol             string   `json:"symbol"`
	ExchangeName       string   `json:"exchangeName"`
	RegularMarketPrice *float64 `json:"regularMarketPrice"`
	PreviousClose      *float64 `json:"previousClose"`
	ChartPreviousClose *float64 `json:"chartPreviousClose"`
}

// APIError is the error object Yahoo embeds in a response body.
type APIError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// QuoteSummaryResponse represents the raw JSON response structure from the
// Yahoo Finance quoteSummary API. The first result element is a bundle of
// module objects keyed by module name; each leaf metric is a Value envelope.
type QuoteSummaryResponse struct {
	QuoteSummary struct {
		Result []Fundamentals `json:"result"`
		Error  *APIError      `json:"error"`
	} `json:"quoteSummary"`
}

// Fundamentals is one quoteSummary result: the modules holding the metrics
// this service extracts. Modules requested but not modeled here (earnings,
// balanceSheetHistory, assetProfile) are ignored by the JSON decoder.
type Fundamentals struct {
	Price                PriceModule          `json:"price"`
	SummaryDetail        SummaryDetail        `json:"summaryDetail"`
	DefaultKeyStatistics DefaultKeyStatistics `json:"defaultKeyStatistics"`
	FinancialData        FinancialData        `json:"financialData"`
}

// PriceModule holds the metrics read from the price module.
type PriceModule struct {
	MarketCap Value `json:"marketCap"`
}

// SummaryDetail holds the metrics read from the summaryDetail module.
type SummaryDetail struct {
	TrailingPE                   Value `json:"trailingPE"`
	DividendYield                Value `json:"dividendYield"`
	DividendRate                 Value `json:"dividendRate"`
	Beta                         Value `json:"beta"`
	MarketCap                    Value `json:"marketCap"`
	PriceToSalesTrailing12Months Value `json:"priceToSalesTrailing12Months"`
}

// DefaultKeyStatistics holds the metrics read from the defaultKeyStatistics module.
type DefaultKeyStatistics struct {
	ForwardPE         Value `json:"forwardPE"`
	BookValue         Value `json:"bookValue"`
	TrailingEps       Value `json:"trailingEps"`
	Beta              Value `json:"beta"`
	SharesOutstanding Value `json:"sharesOutstanding"`
	EnterpriseValue   Value `json:"enterpriseValue"`
	PegRatio          Value `json:"pegRatio"`
}

// FinancialData holds the metrics read from the financialData module.
type FinancialData struct {
	FreeCashflow      Value `json:"freeCashflow"`
	TotalRevenue      Value `json:"totalRevenue"`
	ProfitMargins     Value `json:"profitMargins"`
	OperatingCashflow Value `json:"operatingCashflow"`
}

// Value is Yahoo's metric envelope: usually `{"raw": 28.4, "fmt": "28.40"}`,
// occasionally a bare number, sometimes absent entirely. Only the raw numeric
// member is authoritative; the formatted string is display-only.
//
// Unmarshalling is deliberately tolerant: a value that cannot be read as
// numeric leaves Raw nil and never fails the surrounding decode, so one
// malformed field cannot take down the whole fundamentals bundle.
type Value struct {
	Raw *float64 `json:"raw"`
	Fmt string   `json:"fmt"`
}

// UnmarshalJSON accepts either envelope form. Unreadable values are treated
// as absent rather than reported as errors.
func (v *Value) UnmarshalJSON(data []byte) error {
	// json.Unmarshal leaves a float64 unchanged on null, which would read as 0.
	if bytes.Equal(data, []byte("null")) {
		*v = Value{}
		return nil
	}

	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		v.Raw = &n
		v.Fmt = ""
		return nil
	}

	type envelope Value // drops UnmarshalJSON to avoid recursion
	var e envelope
	if err := json.Unmarshal(data, &e); err == nil {
		*v = Value(e)
		return nil
	}

	*v = Value{}
	return nil
}
