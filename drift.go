package folio

// Drift returns the divergence between two allocation vectors as a
// percentage in [0, 100]. It is half the L1 distance over the union of
// tickers: every unit of over-allocation in one ticker is matched by an
// equal under-allocation elsewhere, so the sum of absolute differences
// counts each misallocation twice.
//
// Drift is symmetric, zero only when the two mappings agree over their
// union, and 100 when both sum to 1.0 over disjoint tickers.
func Drift(current, target map[string]float64) Percent {
	sum := 0.0
	for ticker, c := range current {
		t := target[ticker]
		sum += abs(c - t)
	}
	for ticker, t := range target {
		if _, ok := current[ticker]; !ok {
			sum += abs(t)
		}
	}
	return Percent(sum / 2 * 100)
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
