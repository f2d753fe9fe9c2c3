package indicators

import (
	"math"

	"github.com/rustyeddy/midas/market"
)

// ATRP calculates the average true range as a fraction of the most
// recent close, making volatility comparable across assets and price
// levels. True ranges over the whole series are exponentially smoothed
// with k = 2/(window+1), seeded with the first true range.
//
// Returns 0 when fewer than window+1 candles are available. A zero
// final close is treated as 1.0 so the division cannot fail.
func ATRP(candles []market.Candle, window int) float64 {
	if window <= 0 || len(candles) < window+1 {
		return 0.0
	}

	k := 2.0 / float64(window+1)
	s := 0.0
	for i := 1; i < len(candles); i++ {
		tr := trueRange(candles[i], candles[i-1])
		if i == 1 {
			s = tr
			continue
		}
		s = (tr-s)*k + s
	}

	lastClose := candles[len(candles)-1].Close
	if lastClose == 0 {
		lastClose = 1.0
	}
	return s / lastClose
}

// trueRange calculates the True Range for a candle given the previous candle
func trueRange(current, previous market.Candle) float64 {
	highLow := current.High - current.Low
	highClose := math.Abs(current.High - previous.Close)
	lowClose := math.Abs(current.Low - previous.Close)

	return math.Max(highLow, math.Max(highClose, lowClose))
}
