package folio

// EUR is a helper for test to create euro money from const
func EUR(v float64) Money { return M(v, "EUR") }

// USD is a helper for test to create usd money from const
func USD(v float64) Money { return M(v, "USD") }

// CAD is a helper for test to create canadian dollar money from const
func CAD(v float64) Money { return M(v, "CAD") }

// pricedHolding is a helper for test to create a holding already priced at
// the given unit price in its native currency.
func pricedHolding(ticker string, qty float64, currency string, price float64) *Holding {
	h := NewHolding(ticker, Q(qty), currency)
	h.MarketPrice = M(price, currency)
	h.MarketValue = h.MarketPrice.Mul(h.Quantity)
	return h
}

// usdRates is a helper for test to create a USD rate table with the given
// currency rates.
func usdRates(rates map[string]float64) *RateTable {
	t := NewRateTable("USD")
	for currency, rate := range rates {
		t.Set(currency, rate)
	}
	return t
}
