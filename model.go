package folio

import "sort"

// Holding is a single position in one account. Duplicate tickers within an
// account are allowed and treated independently.
type Holding struct {
	Ticker   string
	Quantity Quantity
	Currency string
	// MarketPrice and MarketValue are in the holding's native currency.
	// They stay zero until the pricing stage has run.
	MarketPrice Money
	MarketValue Money
}

// NewHolding returns an unpriced holding.
func NewHolding(ticker string, quantity Quantity, currency string) *Holding {
	return &Holding{
		Ticker:      ticker,
		Quantity:    quantity,
		Currency:    currency,
		MarketPrice: M(0, currency),
		MarketValue: M(0, currency),
	}
}

// Account is a named collection of holdings plus cash balances.
type Account struct {
	Name     string
	Broker   string // display only
	Holdings []*Holding
	Cash     map[string]Money // keyed by currency code
	// TotalValue is in the reporting currency, written once by Normalize.
	TotalValue Money
}

// NewAccount returns an account with no holdings and no cash.
func NewAccount(name, broker string) *Account {
	return &Account{Name: name, Broker: broker, Cash: make(map[string]Money)}
}

// CashCurrencies returns the account's cash currency codes in sorted order.
func (a *Account) CashCurrencies() []string {
	currencies := make([]string, 0, len(a.Cash))
	for c := range a.Cash {
		currencies = append(currencies, c)
	}
	sort.Strings(currencies)
	return currencies
}

// Portfolio is the whole aggregation across all accounts.
type Portfolio struct {
	Accounts []*Account
	// TotalValue is in the reporting currency, written once by Normalize.
	TotalValue Money
}

// Tickers returns the sorted set of distinct tickers held anywhere in the
// portfolio.
func (p *Portfolio) Tickers() []string {
	seen := make(map[string]bool)
	for _, a := range p.Accounts {
		for _, h := range a.Holdings {
			seen[h.Ticker] = true
		}
	}
	tickers := make([]string, 0, len(seen))
	for t := range seen {
		tickers = append(tickers, t)
	}
	sort.Strings(tickers)
	return tickers
}

// Currencies returns the sorted set of distinct currencies in use: the
// reporting currency, every holding currency and every cash balance currency.
func (p *Portfolio) Currencies(reporting string) []string {
	seen := map[string]bool{reporting: true}
	for _, a := range p.Accounts {
		for _, h := range a.Holdings {
			seen[h.Currency] = true
		}
		for c := range a.Cash {
			seen[c] = true
		}
	}
	currencies := make([]string, 0, len(seen))
	for c := range seen {
		currencies = append(currencies, c)
	}
	sort.Strings(currencies)
	return currencies
}
