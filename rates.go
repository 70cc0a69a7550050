package folio

import "sort"

// RateTable maps currency codes to their exchange rate into the reporting
// currency: 1 unit of the source currency is worth rate units of the
// reporting currency. The reporting currency always maps to 1.0.
//
// A currency absent from the table converts at an implicit rate of 1.0.
// This fallback mirrors the behavior callers rely on: a currency never quoted
// is treated as already being in the reporting currency.
type RateTable struct {
	reporting string
	rates     map[string]float64
}

// NewRateTable returns a rate table pivoting on the given reporting currency.
func NewRateTable(reporting string) *RateTable {
	return &RateTable{
		reporting: reporting,
		rates:     map[string]float64{reporting: 1.0},
	}
}

// Reporting returns the reporting currency code.
func (t *RateTable) Reporting() string { return t.reporting }

// Set records the exchange rate from currency into the reporting currency.
// The reporting currency itself is pinned to 1.0 and cannot be overridden.
func (t *RateTable) Set(currency string, rate float64) {
	if currency == t.reporting {
		return
	}
	t.rates[currency] = rate
}

// Rate returns the exchange rate into the reporting currency, falling back
// to 1.0 for unknown currencies.
func (t *RateTable) Rate(currency string) float64 {
	if rate, ok := t.rates[currency]; ok {
		return rate
	}
	return 1.0
}

// Lookup returns the exchange rate and whether the currency is actually
// quoted in the table.
func (t *RateTable) Lookup(currency string) (float64, bool) {
	rate, ok := t.rates[currency]
	return rate, ok
}

// Convert converts a money amount into the reporting currency.
func (t *RateTable) Convert(m Money) Money {
	rate := t.Rate(m.cur)
	return Money{value: m.value.Mul(newDecimal(rate)), cur: t.reporting}
}

// Currencies returns the sorted list of quoted currencies.
func (t *RateTable) Currencies() []string {
	currencies := make([]string, 0, len(t.rates))
	for c := range t.rates {
		currencies = append(currencies, c)
	}
	sort.Strings(currencies)
	return currencies
}
