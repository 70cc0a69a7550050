package folio

import "github.com/rs/zerolog/log"

// Normalize converts every holding market value and cash balance into the
// reporting currency and writes the derived totals back on each account and
// on the portfolio. It must run after pricing; before that every total is
// zero.
//
// An account's total is the sum of its normalized holding values plus its
// normalized cash balances. The portfolio total is the direct sum of account
// totals, so the two are exactly consistent.
func (p *Portfolio) Normalize(rates *RateTable) {
	warned := make(map[string]bool)
	fallback := func(currency string) {
		if _, ok := rates.Lookup(currency); ok || warned[currency] {
			return
		}
		warned[currency] = true
		log.Warn().Str("currency", currency).Str("reporting", rates.Reporting()).
			Msg("no exchange rate quoted, converting at 1.0")
	}

	total := M(0, rates.Reporting())
	for _, account := range p.Accounts {
		sum := M(0, rates.Reporting())
		for _, h := range account.Holdings {
			fallback(h.Currency)
			sum = sum.Add(rates.Convert(h.MarketValue))
		}
		for _, currency := range account.CashCurrencies() {
			fallback(currency)
			sum = sum.Add(rates.Convert(account.Cash[currency]))
		}
		account.TotalValue = sum
		total = total.Add(sum)
	}
	p.TotalValue = total
}
