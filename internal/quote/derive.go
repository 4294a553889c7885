package quote

// A derivation fills one missing output field from related fields already on
// the quote. A derivation only fires when its target is null and all of its
// inputs are present; it never overwrites a provider-reported value, and a
// reported zero counts as present.
type derivation struct {
	target string
	apply  func(q *Quote)
}

// derivations is the complete set of permitted derivations. Any field not
// listed here stays null when the provider omits it; in particular book
// value, free cash flow, EPS, beta and dividend figures are never synthesized
// from constants or heuristic multipliers.
var derivations = []derivation{
	{target: "marketCap", apply: deriveMarketCap},
	{target: "sharesOutstanding", apply: deriveSharesOutstanding},
}

func applyDerivations(q *Quote) {
	for _, d := range derivations {
		d.apply(q)
	}
}

// marketCap = sharesOutstanding × currentPrice
func deriveMarketCap(q *Quote) {
	if q.MarketCap != nil || q.SharesOutstanding == nil || q.CurrentPrice == nil {
		return
	}
	v := *q.SharesOutstanding * *q.CurrentPrice
	q.MarketCap = &v
}

// sharesOutstanding = marketCap / currentPrice
func deriveSharesOutstanding(q *Quote) {
	if q.SharesOutstanding != nil || q.MarketCap == nil || q.CurrentPrice == nil || *q.CurrentPrice == 0 {
		return
	}
	v := *q.MarketCap / *q.CurrentPrice
	q.SharesOutstanding = &v
}
