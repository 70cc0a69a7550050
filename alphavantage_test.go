package folio

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

// newTestFeed returns an AlphaVantage feed pointed at a local test server,
// bypassing the disk cache.
func newTestFeed(t *testing.T, handler http.HandlerFunc) *AlphaVantage {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return &AlphaVantage{apiKey: "demo", base: srv.URL, client: srv.Client()}
}

func TestAlphaVantage_Prices(t *testing.T) {
	quotes := map[string]string{"VTI": "262.7500", "BND": "72.1000"}
	feed := newTestFeed(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("function"); got != "GLOBAL_QUOTE" {
			t.Errorf("function = %q, want GLOBAL_QUOTE", got)
		}
		price, ok := quotes[r.URL.Query().Get("symbol")]
		if !ok {
			// Alpha Vantage answers unknown symbols with an empty object.
			fmt.Fprint(w, `{}`)
			return
		}
		fmt.Fprintf(w, `{"Global Quote": {"01. symbol": %q, "05. price": %q}}`,
			r.URL.Query().Get("symbol"), price)
	})

	prices, err := feed.Prices(context.Background(), []string{"VTI", "BND", "UNKNOWN"})
	if err != nil {
		t.Fatalf("Prices() error = %v", err)
	}
	if got := prices["VTI"]; got != 262.75 {
		t.Errorf("prices[VTI] = %v, want 262.75", got)
	}
	if got := prices["BND"]; got != 72.10 {
		t.Errorf("prices[BND] = %v, want 72.10", got)
	}
	// The failing symbol is left out, not fatal.
	if _, ok := prices["UNKNOWN"]; ok {
		t.Error("prices contains UNKNOWN, want it omitted")
	}
}

func TestAlphaVantage_Rate(t *testing.T) {
	feed := newTestFeed(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if got := q.Get("function"); got != "CURRENCY_EXCHANGE_RATE" {
			t.Errorf("function = %q, want CURRENCY_EXCHANGE_RATE", got)
		}
		if q.Get("from_currency") != "CAD" || q.Get("to_currency") != "USD" {
			t.Errorf("pair = %s/%s, want CAD/USD", q.Get("from_currency"), q.Get("to_currency"))
		}
		fmt.Fprint(w, `{"Realtime Currency Exchange Rate": {"5. Exchange Rate": "0.75000000"}}`)
	})

	rate, err := feed.Rate(context.Background(), "CAD", "USD")
	if err != nil {
		t.Fatalf("Rate() error = %v", err)
	}
	if rate != 0.75 {
		t.Errorf("Rate() = %v, want 0.75", rate)
	}
}

func TestAlphaVantage_RateError(t *testing.T) {
	feed := newTestFeed(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	})
	if _, err := feed.Rate(context.Background(), "CAD", "USD"); err == nil {
		t.Error("Rate() expected an error on a 429 response")
	}
}

func TestNewAlphaVantage_RejectsBadKeys(t *testing.T) {
	if _, err := NewAlphaVantage(""); err == nil {
		t.Error("NewAlphaVantage() accepted an empty key")
	}
	if _, err := NewAlphaVantage(PlaceholderAPIKey); err == nil {
		t.Error("NewAlphaVantage() accepted the placeholder key")
	}
	if _, err := NewAlphaVantage("real-key"); err != nil {
		t.Errorf("NewAlphaVantage() error = %v on a valid key", err)
	}
}
