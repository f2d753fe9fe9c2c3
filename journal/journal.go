// Package journal persists the audit trail of simulated fills. The
// ledger is append-only: records are never mutated or reordered after
// write, and each append is flushed before the caller's cycle completes.
package journal

import "time"

// PositionSide is the direction of a completed round trip.
type PositionSide string

const (
	Long  PositionSide = "LONG"
	Short PositionSide = "SHORT"
)

// TradeRecord is one simulated fill, the unit of the audit trail.
type TradeRecord struct {
	UTC         time.Time
	Exchange    string
	Regime      string
	Symbol      string
	Side        PositionSide
	Quantity    float64
	EntryPrice  float64
	ExitPrice   float64
	GrossPct    float64
	NetPct      float64
	FeePctRT    float64
	PnLUSD      float64
	HoldSeconds int
	Notes       string
}

// Journal is an append-only record store.
type Journal interface {
	Append(TradeRecord) error
	Close() error
}
