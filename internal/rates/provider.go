package rates

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/coinfolio/coinfolio/internal/asset"
)

// Table maps lowercase asset symbols (btc, eth, usdt) to a price per unit in
// the reference currency.
type Table map[string]float64

// Provider supplies the current rate table. Implementations never fail:
// upstream problems are absorbed into the fallback table.
type Provider interface {
	Current(ctx context.Context) Table
}

// Fallback returns the fixed demo rate table used whenever the pricing API is
// unreachable or returns an unusable payload.
func Fallback() Table {
	return Table{
		asset.BTC.RateKey():  50000,
		asset.ETH.RateKey():  3000,
		asset.USDT.RateKey(): 1,
	}
}

// Client fetches prices from a CoinGecko-compatible API.
type Client struct {
	baseURL  string
	currency string
	httpc    *http.Client
	logger   *slog.Logger
}

// NewClient builds a pricing client against the given API base URL, quoting
// prices in the given reference currency (e.g. "usd").
func NewClient(baseURL, currency string, logger *slog.Logger) *Client {
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		currency: strings.ToLower(currency),
		httpc:    &http.Client{Timeout: 15 * time.Second},
		logger:   logger,
	}
}

// Current fetches prices for the full tracked asset set in one request.
// The policy is strict: either every tracked asset parses from the response
// or the whole table falls back to the demo rates. Partial tables are never
// returned.
func (c *Client) Current(ctx context.Context) Table {
	ids := make([]string, 0, len(asset.Symbols()))
	for _, sym := range asset.Symbols() {
		ids = append(ids, sym.CoinID())
	}

	reqURL := fmt.Sprintf("%s/simple/price?ids=%s&vs_currencies=%s",
		c.baseURL, strings.Join(ids, ","), c.currency)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return c.fallback("build request", err)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return c.fallback("fetch rates", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return c.fallback("fetch rates", fmt.Errorf("status %d", resp.StatusCode))
	}

	var payload map[string]map[string]float64
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return c.fallback("decode rates", err)
	}

	table := make(Table, len(asset.Symbols()))
	for _, sym := range asset.Symbols() {
		price, ok := payload[sym.CoinID()][c.currency]
		if !ok {
			return c.fallback("incomplete response", fmt.Errorf("missing price for %s", sym.CoinID()))
		}
		table[sym.RateKey()] = price
	}
	return table
}

// MarketChart proxies historical series data for a single asset. Unlike
// Current there is no fallback: errors surface to the caller.
func (c *Client) MarketChart(ctx context.Context, coinID string, days int) (json.RawMessage, error) {
	reqURL := fmt.Sprintf("%s/coins/%s/market_chart?vs_currency=%s&days=%d",
		c.baseURL, url.PathEscape(coinID), c.currency, days)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch market chart: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch market chart: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read market chart: %w", err)
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("market chart: invalid json payload")
	}
	return json.RawMessage(body), nil
}

func (c *Client) fallback(stage string, err error) Table {
	if c.logger != nil {
		c.logger.Warn("rates fallback", "stage", stage, "error", err)
	}
	return Fallback()
}
