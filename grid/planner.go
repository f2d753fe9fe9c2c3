package grid

import (
	"math"

	"github.com/rustyeddy/midas/broker"
	"github.com/rustyeddy/midas/regime"
)

// MaxOrdersPerCycle caps how many accepted candidates are acted on in a
// single cycle, independent of how many levels pass the edge filter.
const MaxOrdersPerCycle = 2

// PlanLadder produces candidate buy/sell orders at gridLevels spaced
// price levels around price, each sized to an equal share of the
// effective budget min(budget, balance). Levels are emitted innermost
// first, buy then sell per level; a candidate is kept only when its raw
// step clears NetEdgeOK and its rounded quantity and limit price are
// both strictly positive.
func PlanLadder(price, budget, balance float64, gridLevels int, spacing float64,
	fees broker.FeeSchedule, minNet float64) []broker.OrderIntent {

	effective := math.Min(budget, balance)
	if effective <= 0 || gridLevels <= 0 || price <= 0 {
		return nil
	}

	per := effective / float64(gridLevels)
	var orders []broker.OrderIntent
	for i := 1; i <= gridLevels; i++ {
		down := price * (1 - spacing*float64(i))
		up := price * (1 + spacing*float64(i))

		stepBuy := (price - down) / math.Max(price, 1e-9)
		stepSell := (up - price) / math.Max(price, 1e-9)

		if NetEdgeOK(stepBuy, fees, minNet) {
			orders = appendIntent(orders, broker.Buy, per, down)
		}
		if NetEdgeOK(stepSell, fees, minNet) {
			orders = appendIntent(orders, broker.Sell, per, up)
		}
	}
	return orders
}

// appendIntent sizes one candidate and keeps it only when both the
// rounded quantity and the rounded limit price come out strictly
// positive. Wide spacing can push a buy level to or below zero, and a
// large enough price rounds the per-level quantity away entirely; either
// way the candidate is discarded rather than emitted degenerate.
func appendIntent(orders []broker.OrderIntent, side broker.Side, notional, level float64) []broker.OrderIntent {
	qty := roundTo(notional/math.Max(level, 1e-9), 8)
	px := roundTo(level, 4)
	if qty <= 0 || px <= 0 {
		return orders
	}
	return append(orders, broker.OrderIntent{Side: side, Quantity: qty, LimitPrice: px})
}

// ForRegime restricts a planned ladder to the sides the given posture
// trades: Afterburner scales out (sell only), Dip accumulates (buy
// only), Lunchbox and Regular use the full ladder, Scout trades nothing.
func ForRegime(r regime.Regime, orders []broker.OrderIntent) []broker.OrderIntent {
	switch r {
	case regime.Lunchbox, regime.Regular:
		return orders
	case regime.Afterburner:
		return filterSide(orders, broker.Sell)
	case regime.Dip:
		return filterSide(orders, broker.Buy)
	default:
		return nil
	}
}

func filterSide(orders []broker.OrderIntent, side broker.Side) []broker.OrderIntent {
	var kept []broker.OrderIntent
	for _, o := range orders {
		if o.Side == side {
			kept = append(kept, o)
		}
	}
	return kept
}

func roundTo(v float64, places int) float64 {
	p := math.Pow10(places)
	return math.Round(v*p) / p
}
