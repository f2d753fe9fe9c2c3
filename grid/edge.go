// Package grid plans price-ladder orders around the current price and
// filters them by net profitability after round-trip fees.
package grid

import (
	"github.com/rustyeddy/midas/broker"
)

// SlippageAllowance is the fixed maker-order slippage assumed across
// both legs of a round trip, two basis points.
const SlippageAllowance = 0.0002

// edgeEpsilon absorbs float rounding in the subtraction below so a step
// that lands exactly on the break-even bar is accepted.
const edgeEpsilon = 1e-9

// NetEdgeOK reports whether a raw price step is worth taking once the
// maker fee on both legs and the slippage allowance are subtracted. A
// step that fails this floor is never worth taking, regardless of
// regime.
func NetEdgeOK(grossStep float64, fees broker.FeeSchedule, minNet float64) bool {
	net := grossStep - (fees.Maker*2 + SlippageAllowance)
	return net >= minNet-edgeEpsilon
}
