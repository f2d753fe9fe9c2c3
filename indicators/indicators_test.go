package indicators

import (
	"testing"

	"github.com/rustyeddy/midas/market"
	"github.com/stretchr/testify/assert"
)

func TestSmoothLength(t *testing.T) {
	values := []float64{100, 101, 102, 103, 104}
	out := Smooth(values, 3)
	assert.Len(t, out, len(values))
	// Seeded with the first input.
	assert.Equal(t, 100.0, out[0])
}

func TestSmoothRecurrence(t *testing.T) {
	values := []float64{100, 102, 104}
	out := Smooth(values, 3) // k = 0.5
	assert.InDelta(t, 101.0, out[1], 1e-9)
	assert.InDelta(t, 102.5, out[2], 1e-9)
}

func TestSmoothShortSpan(t *testing.T) {
	values := []float64{3, 1, 4, 1, 5}
	assert.Equal(t, values, Smooth(values, 1))
	assert.Equal(t, values, Smooth(values, 0))
	assert.Empty(t, Smooth(nil, 5))
}

func TestSmoothDoesNotAliasInput(t *testing.T) {
	values := []float64{1, 2, 3}
	out := Smooth(values, 1)
	out[0] = 99
	assert.Equal(t, 1.0, values[0])
}

func TestRSIAbsent(t *testing.T) {
	values := []float64{100, 101, 102}
	_, ok := RSI(values, 14)
	assert.False(t, ok)
}

func TestRSIAllGains(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15}
	r, ok := RSI(values, 14)
	assert.True(t, ok)
	assert.Equal(t, 100.0, r)
}

func TestRSIBalanced(t *testing.T) {
	// Alternating +1/-1 deltas: avg gain == avg loss, RSI = 50.
	values := []float64{100, 101, 100, 101, 100}
	r, ok := RSI(values, 4)
	assert.True(t, ok)
	assert.InDelta(t, 50.0, r, 1e-9)
}

func TestRSIUsesFixedWindow(t *testing.T) {
	// Only the first 2 transitions (both gains) count; the crash after
	// the window must not affect the value.
	values := []float64{100, 101, 102, 10, 5}
	r, ok := RSI(values, 2)
	assert.True(t, ok)
	assert.Equal(t, 100.0, r)
}

func TestATRPInsufficientCandles(t *testing.T) {
	candles := []market.Candle{
		{High: 105, Low: 99, Close: 102},
		{High: 107, Low: 101, Close: 105},
	}
	assert.Equal(t, 0.0, ATRP(candles, 14))
}

func TestATRPSmoothedFraction(t *testing.T) {
	// Constant true range of 2 on a close of 100: ATRP = 2/100.
	candles := make([]market.Candle, 20)
	for i := range candles {
		candles[i] = market.Candle{High: 101, Low: 99, Close: 100}
	}
	assert.InDelta(t, 0.02, ATRP(candles, 14), 1e-9)
}

func TestATRPZeroCloseGuard(t *testing.T) {
	candles := make([]market.Candle, 16)
	for i := range candles {
		candles[i] = market.Candle{High: 2, Low: 1, Close: 0}
	}
	// Last close of 0 is treated as 1.0, so the smoothed TR comes back
	// as-is: constant TR of 2 divided by 1.0.
	assert.InDelta(t, 2.0, ATRP(candles, 14), 1e-9)
}

func TestTrueRange(t *testing.T) {
	current := market.Candle{High: 110, Low: 100, Close: 105}
	previous := market.Candle{Close: 104}
	assert.Equal(t, 10.0, trueRange(current, previous))

	// Gap up: |high-prevClose| dominates.
	current = market.Candle{High: 120, Low: 118, Close: 119}
	previous = market.Candle{Close: 100}
	assert.Equal(t, 20.0, trueRange(current, previous))
}
