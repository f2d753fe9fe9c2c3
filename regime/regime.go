// Package regime classifies current market conditions into one of five
// trading postures. Classification is stateless: it is recomputed from
// scratch on every candle window with no memory between calls.
package regime

import (
	"math"

	"github.com/rustyeddy/midas/indicators"
	"github.com/rustyeddy/midas/market"
)

// Regime is the single market posture driving all downstream decisions
// for one cycle.
type Regime string

const (
	// Scout is the inert default: no confident read, stand aside.
	Scout Regime = "SCOUT"
	// Lunchbox marks a flat, quiet market favorable to mean reversion.
	Lunchbox Regime = "LUNCHBOX"
	// Regular marks a moderately trending market with enough volatility
	// to harvest a symmetric grid.
	Regular Regime = "REGULAR"
	// Afterburner marks strong upward momentum with confirming volatility.
	Afterburner Regime = "AFTERBURNER"
	// Dip marks an oversold market without a severe downtrend.
	Dip Regime = "DIP"
)

const (
	minCandles = 50
	fastSpan   = 12
	slowSpan   = 48
	rsiWindow  = 14
	atrWindow  = 14
)

// signals are the smoothed inputs the decision table is evaluated over.
type signals struct {
	slope float64
	rsi   float64
	vol   float64
}

// The table is evaluated strictly in order, first match wins. Several
// conditions overlap; the ordering is what disambiguates them, so do not
// reorder entries.
var table = []struct {
	match func(signals) bool
	out   Regime
}{
	{func(s signals) bool { return s.slope > 0.0008 && s.rsi > 55 && s.vol > 0.003 }, Afterburner},
	{func(s signals) bool { return math.Abs(s.slope) < 0.0004 && s.rsi > 35 && s.rsi < 65 && s.vol < 0.005 }, Lunchbox},
	{func(s signals) bool { return math.Abs(s.slope) < 0.0015 && s.vol >= 0.003 }, Regular},
	{func(s signals) bool { return s.rsi < 32 && s.slope > -0.002 }, Dip},
}

// Classify maps a candle window to a Regime. Fewer than 50 candles, or a
// window too short to compute RSI, classifies as Scout.
func Classify(series market.Series) Regime {
	if len(series) < minCandles {
		return Scout
	}

	closes := series.Closes()
	fast := last(indicators.Smooth(closes, fastSpan))
	slow := last(indicators.Smooth(closes, slowSpan))
	slope := (fast - slow) / (slow + 1e-12)

	rsi, ok := indicators.RSI(closes, rsiWindow)
	if !ok {
		return Scout
	}

	s := signals{
		slope: slope,
		rsi:   rsi,
		vol:   indicators.ATRP(series, atrWindow),
	}

	return decide(s)
}

func decide(s signals) Regime {
	for _, row := range table {
		if row.match(s) {
			return row.out
		}
	}
	return Scout
}

func last(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return values[len(values)-1]
}
