// Package kraken implements the broker contract against Kraken's public
// REST API. Only public market data is used: fetching the private
// account balance needs signed requests, which belong to an external
// trading-account provider, so available balance is the paper funding
// the client is constructed with.
package kraken

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rustyeddy/midas/broker"
	"github.com/rustyeddy/midas/market"
)

// PublicURL is the base URL for Kraken's public REST API.
const PublicURL = "https://api.kraken.com"

// DefaultFees are used when the pair's fee metadata cannot be fetched.
var DefaultFees = broker.FeeSchedule{Maker: 0.0010, Taker: 0.0015}

// Client is a Kraken public-data client implementing broker.Broker.
type Client struct {
	baseURL      string
	paperFunding float64
	httpClient   *http.Client
}

// NewClient creates a Kraken client. paperFunding is reported as the
// available quote balance; zero funding safely plans nothing.
func NewClient(paperFunding float64) *Client {
	return &Client{
		baseURL:      PublicURL,
		paperFunding: paperFunding,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// apiResponse is the envelope every Kraken public endpoint returns.
type apiResponse struct {
	Error  []string        `json:"error"`
	Result json.RawMessage `json:"result"`
}

func (c *Client) get(ctx context.Context, path string, params url.Values, result any) error {
	u := fmt.Sprintf("%s%s?%s", c.baseURL, path, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("kraken: %s returned %d: %s", path, resp.StatusCode, body)
	}

	var envelope apiResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		return fmt.Errorf("kraken: decode %s: %w", path, err)
	}
	if len(envelope.Error) > 0 {
		return fmt.Errorf("kraken: %s: %s", path, strings.Join(envelope.Error, "; "))
	}
	return json.Unmarshal(envelope.Result, result)
}

// tickerInfo is the slice of the Ticker payload we care about: c is
// [last trade price, lot volume].
type tickerInfo struct {
	C []string `json:"c"`
}

// GetTicker returns the last traded price for the pair.
func (c *Client) GetTicker(ctx context.Context, pair string) (float64, error) {
	params := url.Values{"pair": {normalizePair(pair)}}

	var result map[string]tickerInfo
	if err := c.get(ctx, "/0/public/Ticker", params, &result); err != nil {
		return 0, err
	}

	for _, info := range result {
		if len(info.C) == 0 {
			break
		}
		return strconv.ParseFloat(info.C[0], 64)
	}
	return 0, fmt.Errorf("kraken: no ticker data for %s", pair)
}

// GetCandles returns up to count closed candles, oldest first. Kraken's
// OHLC rows are [time, open, high, low, close, vwap, volume, count].
func (c *Client) GetCandles(ctx context.Context, pair, period string, count int) (market.Series, error) {
	interval, err := intervalMinutes(period)
	if err != nil {
		return nil, err
	}

	params := url.Values{
		"pair":     {normalizePair(pair)},
		"interval": {strconv.Itoa(interval)},
	}

	var result map[string]json.RawMessage
	if err := c.get(ctx, "/0/public/OHLC", params, &result); err != nil {
		return nil, err
	}

	var series market.Series
	for key, raw := range result {
		if key == "last" {
			continue
		}
		var rows [][]flexNum
		if err := json.Unmarshal(raw, &rows); err != nil {
			return nil, fmt.Errorf("kraken: decode OHLC rows: %w", err)
		}
		for _, row := range rows {
			candle, err := parseCandle(row)
			if err != nil {
				return nil, err
			}
			series = append(series, candle)
		}
	}

	if count > 0 && len(series) > count {
		series = series[len(series)-count:]
	}
	return series, nil
}

// flexNum decodes a numeric field that Kraken serves either as a bare
// number (candle time) or a quoted string (prices, volume).
type flexNum float64

func (n *flexNum) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("kraken: bad numeric field %s", data)
	}
	*n = flexNum(v)
	return nil
}

func parseCandle(row []flexNum) (market.Candle, error) {
	if len(row) < 7 {
		return market.Candle{}, fmt.Errorf("kraken: short OHLC row (%d fields)", len(row))
	}

	return market.Candle{
		Open:   float64(row[1]),
		High:   float64(row[2]),
		Low:    float64(row[3]),
		Close:  float64(row[4]),
		Time:   time.Unix(int64(row[0]), 0).UTC(),
		Volume: float64(row[6]),
	}, nil
}

// pairInfo carries the fee tiers from AssetPairs metadata. Each tier is
// [volume, fee percent].
type pairInfo struct {
	Fees      [][]float64 `json:"fees"`
	FeesMaker [][]float64 `json:"fees_maker"`
}

// GetFeeSchedule returns the pair's base-tier fees from market metadata.
// Account-specific fee discounts need an authenticated endpoint, so the
// base tier is the best public answer.
func (c *Client) GetFeeSchedule(ctx context.Context, pair string) (broker.FeeSchedule, error) {
	params := url.Values{"pair": {normalizePair(pair)}}

	var result map[string]pairInfo
	if err := c.get(ctx, "/0/public/AssetPairs", params, &result); err != nil {
		return DefaultFees, err
	}

	for _, info := range result {
		fees := DefaultFees
		if len(info.FeesMaker) > 0 && len(info.FeesMaker[0]) >= 2 {
			fees.Maker = info.FeesMaker[0][1] / 100.0
		}
		if len(info.Fees) > 0 && len(info.Fees[0]) >= 2 {
			fees.Taker = info.Fees[0][1] / 100.0
		}
		return fees, nil
	}
	return DefaultFees, fmt.Errorf("kraken: no pair metadata for %s", pair)
}

// GetAvailableBalance reports the configured paper funding for the
// quote asset.
func (c *Client) GetAvailableBalance(ctx context.Context, asset string) (float64, error) {
	return c.paperFunding, nil
}

// normalizePair maps a "BASE/QUOTE" pair to Kraken's altname format,
// e.g. BTC/USD -> XBTUSD.
func normalizePair(pair string) string {
	p := strings.ReplaceAll(pair, "/", "")
	if strings.HasPrefix(p, "BTC") {
		p = "XBT" + p[3:]
	}
	return p
}

// intervalMinutes maps a period string like "5m" or "1h" to the interval
// values Kraken accepts.
func intervalMinutes(period string) (int, error) {
	switch period {
	case "1m":
		return 1, nil
	case "5m", "":
		return 5, nil
	case "15m":
		return 15, nil
	case "30m":
		return 30, nil
	case "1h":
		return 60, nil
	case "4h":
		return 240, nil
	case "1d":
		return 1440, nil
	}
	return 0, fmt.Errorf("kraken: unsupported candle period %q", period)
}
