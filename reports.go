package folio

import "sort"

// Report is a complete valuation view of the portfolio in the reporting
// currency, with drift against a target allocation and the resulting
// recommendation. It is what the CLI renders, as markdown or JSON.
type Report struct {
	ReportingCurrency string            `json:"reportingCurrency"`
	Rates             []RateLine        `json:"rates"`
	Accounts          []AccountReport   `json:"accounts"`
	TotalValue        Money             `json:"totalValue"`
	ActiveValue       Money             `json:"activeValue"`
	Allocations       map[string]float64 `json:"allocations"`
	Drift             Percent           `json:"drift"`
	Threshold         Percent           `json:"threshold"`
	Rebalance         bool              `json:"rebalance"`
	Plan              []Trade           `json:"plan,omitempty"`
}

// RateLine is one quoted exchange rate into the reporting currency.
type RateLine struct {
	Currency string  `json:"currency"`
	Rate     float64 `json:"rate"`
}

// AccountReport is the valuation of a single account.
type AccountReport struct {
	Name       string        `json:"name"`
	Broker     string        `json:"broker"`
	Holdings   []HoldingLine `json:"holdings"`
	Cash       []CashLine    `json:"cash"`
	TotalValue Money         `json:"totalValue"`
}

// HoldingLine is the valuation of a single position.
type HoldingLine struct {
	Ticker   string   `json:"ticker"`
	Quantity Quantity `json:"quantity"`
	Price    Money    `json:"price"`
	Native   Money    `json:"native"`
	Value    Money    `json:"value"` // in reporting currency
	Skipped  bool     `json:"skipped,omitempty"`
}

// CashLine is the valuation of a single cash balance.
type CashLine struct {
	Currency string `json:"currency"`
	Native   Money  `json:"native"`
	Value    Money  `json:"value"` // in reporting currency
}

// Report assembles the full valuation report against a target allocation.
// It only reads post-run state and can be called repeatedly.
func (e *Engine) Report(target map[string]float64) *Report {
	current := e.CurrentAllocations()
	drift := Drift(current, target)
	r := &Report{
		ReportingCurrency: e.cfg.ReportingCurrency,
		TotalValue:        M(0, e.cfg.ReportingCurrency),
		ActiveValue:       e.ActiveValue(),
		Allocations:       current,
		Drift:             drift,
		Threshold:         e.Threshold(),
		Rebalance:         drift > e.Threshold(),
	}
	for _, currency := range e.rates.Currencies() {
		rate, _ := e.rates.Lookup(currency)
		r.Rates = append(r.Rates, RateLine{Currency: currency, Rate: rate})
	}
	if r.Rebalance {
		r.Plan = e.PlanTrades(current, target)
	}
	if e.portfolio == nil {
		return r
	}

	r.TotalValue = e.portfolio.TotalValue
	for _, account := range e.portfolio.Accounts {
		ar := AccountReport{
			Name:       account.Name,
			Broker:     account.Broker,
			TotalValue: account.TotalValue,
		}
		for _, h := range account.Holdings {
			ar.Holdings = append(ar.Holdings, HoldingLine{
				Ticker:   h.Ticker,
				Quantity: h.Quantity,
				Price:    h.MarketPrice,
				Native:   h.MarketValue,
				Value:    e.rates.Convert(h.MarketValue),
				Skipped:  e.skip.Has(h.Ticker),
			})
		}
		for _, currency := range account.CashCurrencies() {
			native := account.Cash[currency]
			ar.Cash = append(ar.Cash, CashLine{
				Currency: currency,
				Native:   native,
				Value:    e.rates.Convert(native),
			})
		}
		r.Accounts = append(r.Accounts, ar)
	}
	return r
}

// ActiveTickers returns the sorted tickers of the current allocation, handy
// for deterministic rendering.
func (r *Report) ActiveTickers() []string {
	tickers := make([]string, 0, len(r.Allocations))
	for t := range r.Allocations {
		tickers = append(tickers, t)
	}
	sort.Strings(tickers)
	return tickers
}
