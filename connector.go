package folio

import (
	"context"
	"errors"
)

// ErrNotFound reports that the portfolio source's backing store is absent.
var ErrNotFound = errors.New("portfolio not found")

// PortfolioSource supplies the portfolio snapshot to value. How the snapshot
// is stored is the source's business; the engine only needs the structure.
type PortfolioSource interface {
	// Load returns the portfolio, or an error wrapping ErrNotFound when the
	// backing store does not exist.
	Load() (*Portfolio, error)
}

// PriceFeed returns the latest unit price for a set of tickers. Partial
// results are expected: a ticker with no resolvable price is simply absent
// from the result, it is not an error for the caller.
type PriceFeed interface {
	Prices(ctx context.Context, tickers []string) (map[string]float64, error)
}

// FXFeed returns the exchange rate for a currency pair: 1 unit of the from
// currency expressed in the to currency.
type FXFeed interface {
	Rate(ctx context.Context, from, to string) (float64, error)
}
