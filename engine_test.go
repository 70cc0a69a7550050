package folio

import (
	"context"
	"errors"
	"math"
	"testing"
)

type stubSource struct {
	p   *Portfolio
	err error
}

func (s stubSource) Load() (*Portfolio, error) { return s.p, s.err }

type stubFeed struct {
	prices    map[string]float64
	pricesErr error
	rates     map[string]float64 // keyed by source currency
	ratesErr  error
}

func (s stubFeed) Prices(ctx context.Context, tickers []string) (map[string]float64, error) {
	return s.prices, s.pricesErr
}

func (s stubFeed) Rate(ctx context.Context, from, to string) (float64, error) {
	if s.ratesErr != nil {
		return 0, s.ratesErr
	}
	rate, ok := s.rates[from]
	if !ok {
		return 0, errors.New("currency pair not quoted")
	}
	return rate, nil
}

func testConfig() Config {
	cfg := Config{
		ReportingCurrency: "USD",
		PortfolioFile:     "portfolio.yaml",
	}
	cfg.APIKeys.AlphaVantage = "test-key"
	return cfg
}

func testPortfolio() *Portfolio {
	a := NewAccount("Retirement", "Fidelity")
	a.Holdings = append(a.Holdings,
		NewHolding("VTI", Q(100), "USD"),
		NewHolding("VFV", Q(50), "CAD"),
	)
	a.Cash["USD"] = USD(500)
	return &Portfolio{Accounts: []*Account{a}}
}

func TestEngine_Run(t *testing.T) {
	feed := stubFeed{
		prices: map[string]float64{"VTI": 100, "VFV": 40},
		rates:  map[string]float64{"CAD": 0.75},
	}
	engine, err := NewEngine(testConfig(), stubSource{p: testPortfolio()}, feed, feed)
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	if err := engine.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	// 10,000 VTI + 1,500 VFV (2,000 CAD at 0.75) + 500 cash.
	if total := engine.Portfolio().TotalValue; !total.Equal(USD(12000)) {
		t.Errorf("total value = %v, want %v", total, USD(12000))
	}
	if active := engine.ActiveValue(); !active.Equal(USD(12000)) {
		t.Errorf("active value = %v, want %v", active, USD(12000))
	}

	weights := engine.CurrentAllocations()
	if math.Abs(weights["VFV"]-0.125) > 1e-9 {
		t.Errorf("weight[VFV] = %v, want 0.125", weights["VFV"])
	}
}

// A missing price is not fatal: the holding keeps a zero market value and
// the rest of the portfolio is still valued.
func TestEngine_MissingPrice(t *testing.T) {
	feed := stubFeed{
		prices: map[string]float64{"VTI": 100},
		rates:  map[string]float64{"CAD": 0.75},
	}
	engine, err := NewEngine(testConfig(), stubSource{p: testPortfolio()}, feed, feed)
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	if err := engine.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if total := engine.Portfolio().TotalValue; !total.Equal(USD(10500)) {
		t.Errorf("total value = %v, want %v", total, USD(10500))
	}
}

// A failing FX lookup leaves the currency unquoted, it converts at 1.0.
func TestEngine_FXFailure(t *testing.T) {
	feed := stubFeed{
		prices:   map[string]float64{"VTI": 100, "VFV": 40},
		ratesErr: errors.New("fx is down"),
	}
	engine, err := NewEngine(testConfig(), stubSource{p: testPortfolio()}, feed, feed)
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	if err := engine.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	// The 2,000 CAD convert 1:1.
	if total := engine.Portfolio().TotalValue; !total.Equal(USD(12500)) {
		t.Errorf("total value = %v, want %v", total, USD(12500))
	}
}

// A failing price feed values every holding at zero, cash survives.
func TestEngine_PriceFeedFailure(t *testing.T) {
	feed := stubFeed{
		pricesErr: errors.New("quota exhausted"),
		rates:     map[string]float64{"CAD": 0.75},
	}
	engine, err := NewEngine(testConfig(), stubSource{p: testPortfolio()}, feed, feed)
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	if err := engine.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if total := engine.Portfolio().TotalValue; !total.Equal(USD(500)) {
		t.Errorf("total value = %v, want %v", total, USD(500))
	}
}

// A failing portfolio source is fatal.
func TestEngine_LoadFailure(t *testing.T) {
	feed := stubFeed{}
	engine, err := NewEngine(testConfig(), stubSource{err: ErrNotFound}, feed, feed)
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	if err := engine.Run(context.Background()); !errors.Is(err, ErrNotFound) {
		t.Errorf("Run() error = %v, want ErrNotFound", err)
	}
}

func TestNewEngine_Invalid(t *testing.T) {
	feed := stubFeed{}
	source := stubSource{p: testPortfolio()}

	cfg := testConfig()
	cfg.ReportingCurrency = ""
	if _, err := NewEngine(cfg, source, feed, feed); err == nil {
		t.Error("NewEngine() accepted a missing reporting currency")
	}

	cfg = testConfig()
	cfg.APIKeys.AlphaVantage = PlaceholderAPIKey
	if _, err := NewEngine(cfg, source, feed, feed); err == nil {
		t.Error("NewEngine() accepted the placeholder API key")
	}

	if _, err := NewEngine(testConfig(), nil, feed, feed); err == nil {
		t.Error("NewEngine() accepted a nil portfolio source")
	}
	if _, err := NewEngine(testConfig(), source, nil, feed); err == nil {
		t.Error("NewEngine() accepted a nil price feed")
	}
}

// Queries are safe before the first run.
func TestEngine_BeforeRun(t *testing.T) {
	feed := stubFeed{}
	engine, err := NewEngine(testConfig(), stubSource{p: testPortfolio()}, feed, feed)
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}

	if active := engine.ActiveValue(); !active.Equal(USD(0)) {
		t.Errorf("active value = %v, want zero", active)
	}
	if weights := engine.CurrentAllocations(); len(weights) != 0 {
		t.Errorf("allocations = %v, want empty", weights)
	}
	if engine.Portfolio() != nil {
		t.Error("Portfolio() != nil before any run")
	}
}

func TestEngine_Threshold(t *testing.T) {
	feed := stubFeed{}
	source := stubSource{p: testPortfolio()}

	engine, err := NewEngine(testConfig(), source, feed, feed)
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	if got := engine.Threshold(); !got.Equal(DefaultRebalanceThreshold) {
		t.Errorf("Threshold() = %v, want the %v default", got, DefaultRebalanceThreshold)
	}

	cfg := testConfig()
	cfg.Rebalance.Threshold = 2.5
	engine, err = NewEngine(cfg, source, feed, feed)
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	if got := engine.Threshold(); !got.Equal(2.5) {
		t.Errorf("Threshold() = %v, want 2.5%%", got)
	}
}

func TestEngine_Report(t *testing.T) {
	p := &Portfolio{Accounts: []*Account{NewAccount("main", "broker")}}
	p.Accounts[0].Holdings = append(p.Accounts[0].Holdings,
		NewHolding("VTI", Q(100), "USD"),
		NewHolding("RSU1", Q(10), "USD"),
	)

	cfg := testConfig()
	cfg.Rebalance.SkipTickers = []string{"RSU1"}
	feed := stubFeed{prices: map[string]float64{"VTI": 100, "RSU1": 50}}
	engine, err := NewEngine(cfg, stubSource{p: p}, feed, feed)
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	if err := engine.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	// Fully drifted target, rebalancing is on.
	report := engine.Report(map[string]float64{"BND": 1.0})
	if !report.TotalValue.Equal(USD(10500)) {
		t.Errorf("report total = %v, want %v", report.TotalValue, USD(10500))
	}
	if !report.ActiveValue.Equal(USD(10000)) {
		t.Errorf("report active = %v, want %v", report.ActiveValue, USD(10000))
	}
	if !report.Drift.Equal(100) {
		t.Errorf("report drift = %v, want 100%%", report.Drift)
	}
	if !report.Rebalance {
		t.Error("report.Rebalance = false, want true")
	}
	if len(report.Plan) != 2 {
		t.Errorf("report plan = %v, want a SELL and a BUY", report.Plan)
	}

	var skipped *HoldingLine
	for i := range report.Accounts[0].Holdings {
		if report.Accounts[0].Holdings[i].Ticker == "RSU1" {
			skipped = &report.Accounts[0].Holdings[i]
		}
	}
	if skipped == nil || !skipped.Skipped {
		t.Error("RSU1 is not marked as skipped in the report")
	}

	// Aligned target, nothing to do.
	report = engine.Report(map[string]float64{"VTI": 1.0})
	if report.Rebalance {
		t.Error("report.Rebalance = true on an aligned target")
	}
	if len(report.Plan) != 0 {
		t.Errorf("report plan = %v, want empty", report.Plan)
	}
}
