// Package sim turns accepted order intents into deterministic trade
// records when the bot runs in simulated mode.
//
// This is an accounting approximation, not a market simulation: every
// fill exits immediately at a synthetic take-profit one grid step away,
// partial fills are not modeled, and no allowance is made for the target
// never being reached beyond the fixed slippage already charged by the
// edge check.
package sim

import (
	"fmt"
	"time"

	"github.com/rustyeddy/midas/broker"
	"github.com/rustyeddy/midas/grid"
	"github.com/rustyeddy/midas/journal"
	"github.com/rustyeddy/midas/regime"
)

// afterburnerBoost widens the take-profit for momentum trades.
const afterburnerBoost = 1.5

// Fill computes the synthetic round trip for one accepted intent and
// returns the ledger record, tagged with the regime that produced it.
func Fill(intent broker.OrderIntent, r regime.Regime, exchange, symbol string,
	spacing float64, fees broker.FeeSchedule, holdSeconds int, now time.Time) journal.TradeRecord {

	move := spacing
	if r == regime.Afterburner {
		move *= afterburnerBoost
	}

	entry := intent.LimitPrice
	qty := intent.Quantity

	var side journal.PositionSide
	var exit, gross, pnl float64
	if intent.Side == broker.Buy {
		side = journal.Long
		exit = entry * (1 + move)
		gross = (exit - entry) / entry
		pnl = qty*(exit-entry) - qty*entry*fees.Maker - qty*exit*fees.Maker
	} else {
		side = journal.Short
		exit = entry * (1 - move)
		gross = (entry - exit) / entry
		pnl = qty*(entry-exit) - qty*entry*fees.Maker - qty*exit*fees.Maker
	}

	net := gross - (fees.Maker*2 + grid.SlippageAllowance)

	return journal.TradeRecord{
		UTC:         now.UTC(),
		Exchange:    exchange,
		Regime:      string(r),
		Symbol:      symbol,
		Side:        side,
		Quantity:    qty,
		EntryPrice:  entry,
		ExitPrice:   exit,
		GrossPct:    gross,
		NetPct:      net,
		FeePctRT:    fees.Maker,
		PnLUSD:      pnl,
		HoldSeconds: holdSeconds,
		Notes:       fmt.Sprintf("%s paper", r),
	}
}
