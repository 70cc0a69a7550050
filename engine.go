package folio

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
)

// PlaceholderAPIKey is the sentinel shipped in the example configuration.
// A key equal to it is treated as absent.
const PlaceholderAPIKey = "YOUR_API_KEY_HERE"

// Config is the engine configuration, loaded from a YAML file and passed
// explicitly to NewEngine. There is no ambient configuration state.
type Config struct {
	// ReportingCurrency is the currency every output value is expressed in.
	ReportingCurrency string `yaml:"reporting_currency"`
	// PortfolioFile locates the portfolio snapshot.
	PortfolioFile string `yaml:"portfolio_file"`
	APIKeys       struct {
		AlphaVantage string `yaml:"alpha_vantage"`
	} `yaml:"api_keys"`
	Rebalance RebalanceOptions `yaml:"rebalance_options"`
}

// RebalanceOptions tunes the allocation and rebalancing math.
type RebalanceOptions struct {
	// SkipTickers are excluded from allocation and plan generation but kept
	// in the portfolio total (e.g. restricted stock).
	SkipTickers []string `yaml:"skip_tickers"`
	// Threshold is the drift percentage above which rebalancing is
	// recommended. In percentage points, not allocation weight.
	Threshold Percent `yaml:"rebalance_threshold"`
}

// DefaultRebalanceThreshold applies when the configuration does not set one.
const DefaultRebalanceThreshold = Percent(5.0)

// Validate reports the first fatal configuration error, before any I/O.
func (c Config) Validate() error {
	if c.ReportingCurrency == "" {
		return errors.New("reporting_currency is not set")
	}
	if c.PortfolioFile == "" {
		return errors.New("portfolio_file is not set")
	}
	if c.APIKeys.AlphaVantage == "" || c.APIKeys.AlphaVantage == PlaceholderAPIKey {
		return errors.New("api_keys.alpha_vantage is not set")
	}
	return nil
}

// Engine sequences a full valuation run: load the portfolio, fetch prices
// and FX rates, compute market values and normalize into the reporting
// currency. After Run the query methods are read-only and can be called any
// number of times. One engine instance handles one snapshot per run; the
// portfolio is exclusively owned by the engine for the run's duration.
type Engine struct {
	cfg    Config
	source PortfolioSource
	prices PriceFeed
	fx     FXFeed
	skip   SkipSet

	portfolio *Portfolio
	rates     *RateTable
}

// NewEngine validates the configuration and wires the external feeds.
// Configuration errors are fatal and reported here, before any I/O.
func NewEngine(cfg Config, source PortfolioSource, prices PriceFeed, fx FXFeed) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if source == nil {
		return nil, errors.New("invalid configuration: no portfolio source")
	}
	if prices == nil || fx == nil {
		return nil, errors.New("invalid configuration: missing feed")
	}
	return &Engine{
		cfg:    cfg,
		source: source,
		prices: prices,
		fx:     fx,
		skip:   NewSkipSet(cfg.Rebalance.SkipTickers...),
		rates:  NewRateTable(cfg.ReportingCurrency),
	}, nil
}

// Run executes the three phases: load, fetch & price, normalize. A failing
// portfolio source is fatal; a single failing price or FX lookup is not, the
// item is skipped and the valuation degrades gracefully.
func (e *Engine) Run(ctx context.Context) error {
	portfolio, err := e.source.Load()
	if err != nil {
		return fmt.Errorf("loading portfolio: %w", err)
	}

	e.rates = NewRateTable(e.cfg.ReportingCurrency)
	e.fetchRates(ctx, portfolio.Currencies(e.cfg.ReportingCurrency))

	prices, err := e.prices.Prices(ctx, portfolio.Tickers())
	if err != nil {
		// The feed itself failed; every holding keeps a zero market value.
		log.Warn().Err(err).Msg("price feed failed, valuing holdings at zero")
		prices = nil
	}
	for _, account := range portfolio.Accounts {
		for _, h := range account.Holdings {
			price, ok := prices[h.Ticker]
			if !ok {
				log.Warn().Str("ticker", h.Ticker).Msg("no price returned, market value stays zero")
				continue
			}
			h.MarketPrice = M(price, h.Currency)
			h.MarketValue = h.MarketPrice.Mul(h.Quantity)
		}
	}

	portfolio.Normalize(e.rates)
	e.portfolio = portfolio
	return nil
}

// fetchRates queries the FX feed for every non-reporting currency. The
// lookups are independent, so they are issued concurrently and joined before
// pricing begins. A failing lookup is logged and its currency left unquoted,
// which makes it convert at the 1.0 fallback.
func (e *Engine) fetchRates(ctx context.Context, currencies []string) {
	var wg sync.WaitGroup
	var mu sync.Mutex
	for _, currency := range currencies {
		if currency == e.cfg.ReportingCurrency {
			continue
		}
		wg.Add(1)
		go func(currency string) {
			defer wg.Done()
			rate, err := e.fx.Rate(ctx, currency, e.cfg.ReportingCurrency)
			if err != nil {
				log.Warn().Err(err).Str("currency", currency).Msg("no exchange rate fetched")
				return
			}
			mu.Lock()
			e.rates.Set(currency, rate)
			mu.Unlock()
		}(currency)
	}
	wg.Wait()
}

// Portfolio returns the normalized portfolio of the last run, or nil before
// any run.
func (e *Engine) Portfolio() *Portfolio { return e.portfolio }

// Rates returns the rate table populated by the last run.
func (e *Engine) Rates() *RateTable { return e.rates }

// ActiveValue returns the portfolio total minus skip-listed holdings.
func (e *Engine) ActiveValue() Money {
	if e.portfolio == nil {
		return M(0, e.cfg.ReportingCurrency)
	}
	return ActiveValue(e.portfolio, e.rates, e.skip)
}

// CurrentAllocations returns the fractional weight per active ticker.
// Before a run, or when the active value is zero, the result is empty.
func (e *Engine) CurrentAllocations() map[string]float64 {
	if e.portfolio == nil {
		return map[string]float64{}
	}
	return Allocations(e.portfolio, e.rates, e.skip)
}

// Drift returns the allocation drift percentage between two allocation
// vectors.
func (e *Engine) Drift(current, target map[string]float64) Percent {
	return Drift(current, target)
}

// PlanTrades returns the rebalancing plan from current to target over the
// active portfolio value.
func (e *Engine) PlanTrades(current, target map[string]float64) []Trade {
	return BuildPlan(current, target, e.ActiveValue())
}

// Threshold returns the configured rebalance drift threshold.
func (e *Engine) Threshold() Percent {
	if e.cfg.Rebalance.Threshold == 0 {
		return DefaultRebalanceThreshold
	}
	return e.cfg.Rebalance.Threshold
}
