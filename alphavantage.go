package folio

import (
	"bufio"
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httputil"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/rs/zerolog/log"
)

// This file contains the Alpha Vantage price and FX feed.

const alphaVantageURL = "https://www.alphavantage.co/query"

// diskCache implements a simple disk cache for HTTP responses
type diskCache struct {
	base http.RoundTripper
}

func (c *diskCache) RoundTrip(req *http.Request) (resp *http.Response, err error) {
	// get from disk
	// diskcache implements a unique key per day, so the local tmp expires every day.
	key := fmt.Sprintf("%s %s %s", time.Now().Format("2006-01-02"), req.Method, req.URL.String())
	key = fmt.Sprintf("%x", sha1.Sum([]byte(key)))

	cachedResp, err := c.get(key, req)
	if err == nil { // Cache hit
		return cachedResp, nil
	}

	resp, err = c.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("method", resp.Request.Method).Str("host", resp.Request.URL.Host).
		Str("status", resp.Status).Msg("http")
	if resp.StatusCode >= 300 {
		return resp, nil
	}
	// otherwise attempt to store it in cache

	if err := c.put(key, resp); err != nil {
		log.Debug().Err(err).Msg("cache write err (ignored)")
	}
	return resp, nil
}

// get retrieves a cached response from disk
func (c *diskCache) get(key string, req *http.Request) (resp *http.Response, err error) {
	file := filepath.Join(os.TempDir(), key)
	content, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	return http.ReadResponse(bufio.NewReader(bytes.NewBuffer(content)), req)
}

// put stores a response to disk cache
func (c *diskCache) put(key string, resp *http.Response) (err error) {
	file := filepath.Join(os.TempDir(), key)

	content, err := httputil.DumpResponse(resp, true)
	if err != nil {
		return err
	}

	f, err := os.Create(file)
	if err != nil {
		return err
	}

	_, err = f.Write(content)
	f.Close()
	return err
}

// daily returns a client with a cache all with daily expire
func daily() *http.Client {
	client := new(http.Client)
	client.Transport = &diskCache{http.DefaultTransport}
	return client
}

// jwget performs an HTTP GET request and unmarshals the JSON response into
// the provided data structure.
func jwget(ctx context.Context, client *http.Client, addr string, data interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	if resp.StatusCode != 200 {
		return fmt.Errorf("cannot http GET %v/%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}
	var buf bytes.Buffer
	_, err = io.Copy(&buf, resp.Body)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return json.Unmarshal(buf.Bytes(), data)
}

// jsonpathFloat extracts a float from a parsed JSON document. Alpha Vantage
// quotes numbers as strings, so both forms are accepted.
func jsonpathFloat(jobj any, path string) (float64, error) {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return 0, fmt.Errorf("error parsing %q: %w", path, err)
	}
	// because jsonpath is never clear about whether it returns a list of 1
	// answer, or a single answer: by this call I keep the first one if any
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	switch v := jval.(type) {
	case float64:
		return v, nil
	case string:
		return strconv.ParseFloat(v, 64)
	}
	return 0, fmt.Errorf("error parsing %q: not a number %v", path, jval)
}

// AlphaVantage fetches quotes and exchange rates from alphavantage.co.
// It implements both PriceFeed and FXFeed. Responses are cached on disk with
// a daily expiry to stay within the free-tier request budget.
type AlphaVantage struct {
	apiKey string
	base   string
	client *http.Client
}

// NewAlphaVantage returns a feed using the given API key. An empty or
// placeholder key is rejected.
func NewAlphaVantage(apiKey string) (*AlphaVantage, error) {
	if apiKey == "" || apiKey == PlaceholderAPIKey {
		return nil, fmt.Errorf("alpha vantage API key is not set")
	}
	return &AlphaVantage{apiKey: apiKey, base: alphaVantageURL, client: daily()}, nil
}

// Prices fetches the latest quote for each ticker. A ticker whose lookup
// fails is logged and left out of the result; one symbol's outage must not
// abort the whole valuation.
func (av *AlphaVantage) Prices(ctx context.Context, tickers []string) (map[string]float64, error) {
	prices := make(map[string]float64, len(tickers))
	for _, ticker := range tickers {
		price, err := av.quote(ctx, ticker)
		if err != nil {
			log.Warn().Err(err).Str("ticker", ticker).Msg("could not fetch price")
			continue
		}
		prices[ticker] = price
	}
	return prices, nil
}

// quote fetches the GLOBAL_QUOTE price for a single ticker.
func (av *AlphaVantage) quote(ctx context.Context, ticker string) (float64, error) {
	// https://www.alphavantage.co/query?function=GLOBAL_QUOTE&symbol=IBM&apikey=demo
	// {
	//   "Global Quote": {
	//     "01. symbol": "IBM",
	//     "05. price": "262.7500",
	//     ...
	addr := fmt.Sprintf("%s?function=GLOBAL_QUOTE&symbol=%s&apikey=%s", av.base, url.QueryEscape(ticker), av.apiKey)
	var jobj any
	if err := jwget(ctx, av.client, addr, &jobj); err != nil {
		return 0, fmt.Errorf("error in wget %q: %w", ticker, err)
	}
	return jsonpathFloat(jobj, `$["Global Quote"]["05. price"]`)
}

// Rate fetches the realtime exchange rate for a currency pair.
func (av *AlphaVantage) Rate(ctx context.Context, from, to string) (float64, error) {
	// https://www.alphavantage.co/query?function=CURRENCY_EXCHANGE_RATE&from_currency=USD&to_currency=JPY&apikey=demo
	// {
	//   "Realtime Currency Exchange Rate": {
	//     "5. Exchange Rate": "157.93000000",
	//     ...
	addr := fmt.Sprintf("%s?function=CURRENCY_EXCHANGE_RATE&from_currency=%s&to_currency=%s&apikey=%s",
		av.base, url.QueryEscape(from), url.QueryEscape(to), av.apiKey)
	var jobj any
	if err := jwget(ctx, av.client, addr, &jobj); err != nil {
		return 0, fmt.Errorf("error in wget %s/%s: %w", from, to, err)
	}
	return jsonpathFloat(jobj, `$["Realtime Currency Exchange Rate"]["5. Exchange Rate"]`)
}
