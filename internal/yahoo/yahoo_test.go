package yahoo_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/quotelab/stock-quote-backend/internal/httpx"
	"github.com/quotelab/stock-quote-backend/internal/testutil"
	"github.com/quotelab/stock-quote-backend/internal/yahoo"
)

const chartBody = `{"chart":{"result":[{"meta":{
	"currency":"USD","symbol":"AAPL","exchangeName":"NMS",
	"regularMarketPrice":150.25,"previousClose":148.0,"chartPreviousClose":147.5
}}],"error":null}}`

const summaryBody = `{"quoteSummary":{"result":[{
	"summaryDetail":{"trailingPE":{"raw":28.4,"fmt":"28.40"}},
	"defaultKeyStatistics":{"sharesOutstanding":{"raw":16000000000,"fmt":"16B"}}
}],"error":null}}`

const emptySummaryBody = `{"quoteSummary":{"result":[],"error":null}}`

func newClient(t *testing.T, opts ...yahoo.Option) *yahoo.FinanceClient {
	t.Helper()
	opts = append([]yahoo.Option{yahoo.WithHTTPClient(httpx.New(5 * time.Second))}, opts...)
	return yahoo.NewFinanceClient(zap.NewNop(), opts...)
}

func TestGetChartMeta_Success(t *testing.T) {
	t.Parallel()

	upstream := testutil.NewUpstreamServer(t, http.StatusOK, chartBody)
	client := newClient(t, yahoo.WithChartBaseURL(upstream.URL))

	meta, err := client.GetChartMeta(t.Context(), "AAPL")
	require.NoError(t, err)

	require.Equal(t, "/v8/finance/chart/AAPL", upstream.LastPath())
	require.NotNil(t, meta.RegularMarketPrice)
	require.Equal(t, 150.25, *meta.RegularMarketPrice)
	require.NotNil(t, meta.PreviousClose)
	require.Equal(t, 148.0, *meta.PreviousClose)
	require.NotNil(t, meta.ChartPreviousClose)
	require.Equal(t, 147.5, *meta.ChartPreviousClose)
}

func TestGetChartMeta_SendsClientIdentityHeaders(t *testing.T) {
	t.Parallel()

	upstream := testutil.NewUpstreamServer(t, http.StatusOK, chartBody)
	client := newClient(t, yahoo.WithChartBaseURL(upstream.URL))

	_, err := client.GetChartMeta(t.Context(), "AAPL")
	require.NoError(t, err)

	// Yahoo rejects requests without a browser-like identity.
	require.Contains(t, upstream.LastHeader().Get("User-Agent"), "Mozilla")
	require.Equal(t, "application/json", upstream.LastHeader().Get("Accept"))
}

func TestGetChartMeta_NonSuccessStatus(t *testing.T) {
	t.Parallel()

	upstream := testutil.NewUpstreamServer(t, http.StatusNotFound, `{}`)
	client := newClient(t, yahoo.WithChartBaseURL(upstream.URL))

	_, err := client.GetChartMeta(t.Context(), "AAPL")
	require.Error(t, err)
	require.Contains(t, err.Error(), "404")
}

func TestGetChartMeta_UnparseableBody(t *testing.T) {
	t.Parallel()

	upstream := testutil.NewUpstreamServer(t, http.StatusOK, `not json`)
	client := newClient(t, yahoo.WithChartBaseURL(upstream.URL))

	_, err := client.GetChartMeta(t.Context(), "AAPL")
	require.Error(t, err)
}

func TestGetChartMeta_EmptyResult(t *testing.T) {
	t.Parallel()

	upstream := testutil.NewUpstreamServer(t, http.StatusOK, `{"chart":{"result":[],"error":null}}`)
	client := newClient(t, yahoo.WithChartBaseURL(upstream.URL))

	_, err := client.GetChartMeta(t.Context(), "NOPE")
	require.Error(t, err)
	require.Contains(t, err.Error(), "no chart result")
}

func TestGetChartMeta_APIError(t *testing.T) {
	t.Parallel()

	body := `{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found, symbol may be delisted"}}}`
	upstream := testutil.NewUpstreamServer(t, http.StatusOK, body)
	client := newClient(t, yahoo.WithChartBaseURL(upstream.URL))

	_, err := client.GetChartMeta(t.Context(), "GONE")
	require.Error(t, err)
	require.Contains(t, err.Error(), "delisted")
}

func TestGetFundamentals_FirstCandidateWins(t *testing.T) {
	t.Parallel()

	first := testutil.NewUpstreamServer(t, http.StatusOK, summaryBody)
	second := testutil.NewUpstreamServer(t, http.StatusOK, summaryBody)
	client := newClient(t, yahoo.WithSummaryBaseURLs(first.URL, second.URL))

	bundle, ok := client.GetFundamentals(t.Context(), "AAPL")
	require.True(t, ok)

	// Success short-circuits the candidate loop.
	require.Equal(t, 1, first.Calls())
	require.Equal(t, 0, second.Calls())
	require.Equal(t, "/v10/finance/quoteSummary/AAPL", first.LastPath())
	require.NotNil(t, bundle.SummaryDetail.TrailingPE.Raw)
	require.Equal(t, 28.4, *bundle.SummaryDetail.TrailingPE.Raw)
}

func TestGetFundamentals_RequestsModuleSuperset(t *testing.T) {
	t.Parallel()

	upstream := testutil.NewUpstreamServer(t, http.StatusOK, summaryBody)
	client := newClient(t, yahoo.WithSummaryBaseURLs(upstream.URL))

	_, ok := client.GetFundamentals(t.Context(), "AAPL")
	require.True(t, ok)

	modules := upstream.LastQuery().Get("modules")
	for _, m := range []string{
		"price", "summaryDetail", "defaultKeyStatistics", "financialData",
		"earnings", "balanceSheetHistory", "assetProfile",
	} {
		require.Contains(t, modules, m)
	}
}

func TestGetFundamentals_FallsBackOnBadStatus(t *testing.T) {
	t.Parallel()

	first := testutil.NewUpstreamServer(t, http.StatusTooManyRequests, `{}`)
	second := testutil.NewUpstreamServer(t, http.StatusOK, summaryBody)
	client := newClient(t, yahoo.WithSummaryBaseURLs(first.URL, second.URL))

	bundle, ok := client.GetFundamentals(t.Context(), "AAPL")
	require.True(t, ok)
	require.Equal(t, 1, first.Calls())
	require.Equal(t, 1, second.Calls())
	require.NotNil(t, bundle.DefaultKeyStatistics.SharesOutstanding.Raw)
}

func TestGetFundamentals_FallsBackOnEmptyResult(t *testing.T) {
	t.Parallel()

	first := testutil.NewUpstreamServer(t, http.StatusOK, emptySummaryBody)
	second := testutil.NewUpstreamServer(t, http.StatusOK, summaryBody)
	client := newClient(t, yahoo.WithSummaryBaseURLs(first.URL, second.URL))

	_, ok := client.GetFundamentals(t.Context(), "AAPL")
	require.True(t, ok)
	require.Equal(t, 1, first.Calls())
	require.Equal(t, 1, second.Calls())
}

func TestGetFundamentals_AllCandidatesFail(t *testing.T) {
	t.Parallel()

	first := testutil.NewUpstreamServer(t, http.StatusInternalServerError, `{}`)
	second := testutil.NewUpstreamServer(t, http.StatusOK, `broken`)
	client := newClient(t, yahoo.WithSummaryBaseURLs(first.URL, second.URL))

	bundle, ok := client.GetFundamentals(t.Context(), "AAPL")
	require.False(t, ok)
	require.Equal(t, yahoo.Fundamentals{}, bundle)
	require.Equal(t, 1, first.Calls())
	require.Equal(t, 1, second.Calls())
}
