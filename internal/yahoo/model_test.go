package yahoo

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValue_UnmarshalJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want *float64
	}{
		{name: "raw envelope", in: `{"v":{"raw":28.4,"fmt":"28.40"}}`, want: float64p(28.4)},
		{name: "bare number", in: `{"v":150.25}`, want: float64p(150.25)},
		{name: "integer raw", in: `{"v":{"raw":16000000000,"fmt":"16B"}}`, want: float64p(16000000000)},
		{name: "null", in: `{"v":null}`, want: nil},
		{name: "absent", in: `{}`, want: nil},
		{name: "empty envelope", in: `{"v":{}}`, want: nil},
		{name: "string value", in: `{"v":"N/A"}`, want: nil},
		{name: "string raw member", in: `{"v":{"raw":"Infinity","fmt":"∞"}}`, want: nil},
		{name: "boolean value", in: `{"v":true}`, want: nil},
		{name: "null raw member", in: `{"v":{"raw":null,"fmt":"-"}}`, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var holder struct {
				V Value `json:"v"`
			}
			// Unreadable values count as absent; decoding must never fail.
			require.NoError(t, json.Unmarshal([]byte(tt.in), &holder))

			if tt.want == nil {
				require.Nil(t, holder.V.Raw)
				return
			}
			require.NotNil(t, holder.V.Raw)
			require.Equal(t, *tt.want, *holder.V.Raw)
		})
	}
}

func TestValue_MalformedFieldDoesNotPoisonBundle(t *testing.T) {
	t.Parallel()

	// One unreadable metric must not affect its siblings.
	body := `{
		"summaryDetail": {"trailingPE": {"raw": "broken"}, "dividendYield": {"raw": 0.005}},
		"defaultKeyStatistics": {"bookValue": 4.2}
	}`

	var f Fundamentals
	require.NoError(t, json.Unmarshal([]byte(body), &f))

	require.Nil(t, f.SummaryDetail.TrailingPE.Raw)
	require.NotNil(t, f.SummaryDetail.DividendYield.Raw)
	require.Equal(t, 0.005, *f.SummaryDetail.DividendYield.Raw)
	require.NotNil(t, f.DefaultKeyStatistics.BookValue.Raw)
	require.Equal(t, 4.2, *f.DefaultKeyStatistics.BookValue.Raw)
}

func float64p(v float64) *float64 {
	return &v
}
