package folio

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// This file handles the three input files: the configuration, the portfolio
// snapshot, and the target allocation.

// LoadConfig reads the YAML configuration file. The rebalance threshold
// defaults to DefaultRebalanceThreshold when absent.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	content, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("cannot read config %q: %w", path, err)
	}
	if err := yaml.Unmarshal(content, &cfg); err != nil {
		return cfg, fmt.Errorf("cannot parse config %q: %w", path, err)
	}
	if cfg.Rebalance.Threshold == 0 {
		cfg.Rebalance.Threshold = DefaultRebalanceThreshold
	}
	return cfg, nil
}

// FileSource loads a portfolio snapshot from a YAML file.
//
// The file lists accounts, each with a name, a broker label, holdings
// (ticker, quantity, currency) and cash balances keyed by currency:
//
//	accounts:
//	  - name: Retirement
//	    broker: Fidelity
//	    holdings:
//	      - {ticker: VTI, quantity: 100, currency: USD}
//	    cash_balances:
//	      USD: 1200.50
type FileSource struct {
	Path string
}

// NewFileSource returns a portfolio source reading from the given path.
func NewFileSource(path string) *FileSource { return &FileSource{Path: path} }

// portfolio file schema
type portfolioFile struct {
	Accounts []struct {
		Name     string `yaml:"name"`
		Broker   string `yaml:"broker"`
		Holdings []struct {
			Ticker   string  `yaml:"ticker"`
			Quantity float64 `yaml:"quantity"`
			Currency string  `yaml:"currency"`
		} `yaml:"holdings"`
		CashBalances map[string]float64 `yaml:"cash_balances"`
	} `yaml:"accounts"`
}

// Load reads the portfolio file and constructs the Portfolio.
func (s *FileSource) Load() (*Portfolio, error) {
	content, err := os.ReadFile(s.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("portfolio file %q: %w", s.Path, ErrNotFound)
		}
		return nil, fmt.Errorf("cannot read portfolio file %q: %w", s.Path, err)
	}

	var file portfolioFile
	if err := yaml.Unmarshal(content, &file); err != nil {
		return nil, fmt.Errorf("cannot parse portfolio file %q: %w", s.Path, err)
	}

	p := &Portfolio{}
	for _, a := range file.Accounts {
		account := NewAccount(a.Name, a.Broker)
		for _, h := range a.Holdings {
			account.Holdings = append(account.Holdings, NewHolding(h.Ticker, Q(h.Quantity), h.Currency))
		}
		for currency, amount := range a.CashBalances {
			account.Cash[currency] = M(amount, currency)
		}
		p.Accounts = append(p.Accounts, account)
	}
	return p, nil
}

// LoadTarget reads a target allocation file: a JSON object mapping ticker to
// fractional weight. The mapping is opaque to the engine; weights are not
// required to sum to 1.0.
func LoadTarget(path string) (map[string]float64, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read target allocation %q: %w", path, err)
	}
	target := make(map[string]float64)
	if err := json.Unmarshal(content, &target); err != nil {
		return nil, fmt.Errorf("cannot parse target allocation %q: %w", path, err)
	}
	return target, nil
}
