package kraken

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubServer(t *testing.T, path, body string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, path, r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
}

func TestGetTicker(t *testing.T) {
	srv := stubServer(t, "/0/public/Ticker",
		`{"error":[],"result":{"XXBTZUSD":{"c":["65123.4","0.012"]}}}`)
	defer srv.Close()

	client := NewClient(0)
	client.baseURL = srv.URL
	price, err := client.GetTicker(context.Background(), "BTC/USD")
	assert.NoError(t, err)
	assert.Equal(t, 65123.4, price)
}

func TestGetTickerAPIError(t *testing.T) {
	srv := stubServer(t, "/0/public/Ticker",
		`{"error":["EQuery:Unknown asset pair"],"result":{}}`)
	defer srv.Close()

	client := NewClient(0)
	client.baseURL = srv.URL
	_, err := client.GetTicker(context.Background(), "NOPE/USD")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "Unknown asset pair")
}

func TestGetCandles(t *testing.T) {
	// Kraken rows mix a bare unix time with quoted price strings.
	srv := stubServer(t, "/0/public/OHLC",
		`{"error":[],"result":{
			"XXBTZUSD":[
				[1700000000,"100.0","101.0","99.0","100.5","100.2","1.5",10],
				[1700000300,"100.5","102.0","100.0","101.5","101.0","2.5",12]
			],
			"last":1700000300
		}}`)
	defer srv.Close()

	client := NewClient(0)
	client.baseURL = srv.URL
	series, err := client.GetCandles(context.Background(), "BTC/USD", "5m", 200)
	require.NoError(t, err)
	require.Len(t, series, 2)

	assert.Equal(t, 100.0, series[0].Open)
	assert.Equal(t, 100.5, series[0].Close)
	assert.Equal(t, 1.5, series[0].Volume)
	assert.Equal(t, int64(1700000000), series[0].Unix())
	assert.Equal(t, 101.5, series[1].Close)
}

func TestGetCandlesCountTrims(t *testing.T) {
	srv := stubServer(t, "/0/public/OHLC",
		`{"error":[],"result":{
			"XXBTZUSD":[
				[1700000000,"1","1","1","1","1","1",1],
				[1700000300,"2","2","2","2","2","1",1],
				[1700000600,"3","3","3","3","3","1",1]
			],
			"last":1700000600
		}}`)
	defer srv.Close()

	client := NewClient(0)
	client.baseURL = srv.URL
	series, err := client.GetCandles(context.Background(), "BTC/USD", "5m", 2)
	require.NoError(t, err)
	require.Len(t, series, 2)
	// Most recent candles are kept.
	assert.Equal(t, 2.0, series[0].Close)
	assert.Equal(t, 3.0, series[1].Close)
}

func TestGetFeeSchedule(t *testing.T) {
	srv := stubServer(t, "/0/public/AssetPairs",
		`{"error":[],"result":{"XXBTZUSD":{
			"fees":[[0,0.26],[50000,0.24]],
			"fees_maker":[[0,0.16],[50000,0.14]]
		}}}`)
	defer srv.Close()

	client := NewClient(0)
	client.baseURL = srv.URL
	fees, err := client.GetFeeSchedule(context.Background(), "BTC/USD")
	assert.NoError(t, err)
	assert.InDelta(t, 0.0016, fees.Maker, 1e-9)
	assert.InDelta(t, 0.0026, fees.Taker, 1e-9)
}

func TestGetFeeScheduleFallsBackToDefaults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(0)
	client.baseURL = srv.URL
	fees, err := client.GetFeeSchedule(context.Background(), "BTC/USD")
	assert.Error(t, err)
	assert.Equal(t, DefaultFees, fees)
}

func TestGetAvailableBalance(t *testing.T) {
	client := NewClient(150)
	balance, err := client.GetAvailableBalance(context.Background(), "USD")
	assert.NoError(t, err)
	assert.Equal(t, 150.0, balance)
}

func TestNormalizePair(t *testing.T) {
	assert.Equal(t, "XBTUSD", normalizePair("BTC/USD"))
	assert.Equal(t, "ETHUSD", normalizePair("ETH/USD"))
}

func TestIntervalMinutes(t *testing.T) {
	m, err := intervalMinutes("5m")
	assert.NoError(t, err)
	assert.Equal(t, 5, m)

	m, err = intervalMinutes("1h")
	assert.NoError(t, err)
	assert.Equal(t, 60, m)

	_, err = intervalMinutes("7m")
	assert.Error(t, err)
}
