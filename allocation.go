package folio

// SkipSet is a set of tickers excluded from allocation and rebalancing math.
// Skipped holdings still count in the portfolio total value; only the
// allocation denominator and the weight aggregation ignore them. Cash is
// never skipped.
type SkipSet map[string]struct{}

// NewSkipSet builds a skip set from a list of tickers.
func NewSkipSet(tickers ...string) SkipSet {
	s := make(SkipSet, len(tickers))
	for _, t := range tickers {
		s[t] = struct{}{}
	}
	return s
}

func (s SkipSet) Has(ticker string) bool {
	_, ok := s[ticker]
	return ok
}

// ActiveValue returns the portfolio total minus the normalized value of
// skip-listed holdings. It is the denominator for allocation weights.
func ActiveValue(p *Portfolio, rates *RateTable, skip SkipSet) Money {
	skipped := M(0, rates.Reporting())
	for _, account := range p.Accounts {
		for _, h := range account.Holdings {
			if skip.Has(h.Ticker) {
				skipped = skipped.Add(rates.Convert(h.MarketValue))
			}
		}
	}
	return p.TotalValue.Sub(skipped)
}

// Allocations returns the fractional weight of every active ticker over the
// active portfolio value. Values for the same ticker are aggregated across
// all accounts. When the active value is zero there is no meaningful
// allocation and the result is empty.
func Allocations(p *Portfolio, rates *RateTable, skip SkipSet) map[string]float64 {
	active := ActiveValue(p, rates, skip)
	if active.IsZero() {
		return map[string]float64{}
	}

	aggregated := make(map[string]Money)
	for _, account := range p.Accounts {
		for _, h := range account.Holdings {
			if skip.Has(h.Ticker) {
				continue
			}
			aggregated[h.Ticker] = aggregated[h.Ticker].Add(rates.Convert(h.MarketValue))
		}
	}

	weights := make(map[string]float64, len(aggregated))
	activeValue := active.AsFloat()
	for ticker, value := range aggregated {
		weights[ticker] = value.AsFloat() / activeValue
	}
	return weights
}
