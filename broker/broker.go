// Package broker defines the contract between the decision core and an
// exchange market-data/account collaborator.
package broker

import (
	"context"

	"github.com/rustyeddy/midas/market"
)

// Broker supplies price history, fees and balance for one asset pair.
// Every method is best-effort: callers must treat a failure as "no data"
// (zero price, empty series, zero balance) rather than propagate it.
type Broker interface {
	// GetTicker returns the last traded price for the pair.
	GetTicker(ctx context.Context, pair string) (float64, error)

	// GetCandles returns up to count closed candles at the given period,
	// oldest first.
	GetCandles(ctx context.Context, pair, period string, count int) (market.Series, error)

	// GetFeeSchedule returns the maker/taker rates for the pair, falling
	// back to market metadata when account-level fees are unavailable.
	GetFeeSchedule(ctx context.Context, pair string) (FeeSchedule, error)

	// GetAvailableBalance returns the free balance of the pair's quote
	// asset.
	GetAvailableBalance(ctx context.Context, asset string) (float64, error)
}

// OrderSubmitter is the optional live-execution capability. This repo
// ships no implementation of it: live submission is a separate
// collaborator, discovered at runtime with a type assertion. A broker
// that does not implement it is simply not called.
type OrderSubmitter interface {
	SubmitLimitOrder(ctx context.Context, pair string, intent OrderIntent) error
}

// FeeSchedule holds the exchange's cost fractions, both in [0, 1).
type FeeSchedule struct {
	Maker float64
	Taker float64
}

// Side of an order intent.
type Side string

const (
	Buy  Side = "buy"
	Sell Side = "sell"
)

// OrderIntent is one candidate order produced by the ladder planner.
// Quantity and LimitPrice are always strictly positive; intents live for
// a single cycle and are never persisted.
type OrderIntent struct {
	Side       Side
	Quantity   float64
	LimitPrice float64
}
