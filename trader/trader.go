// Package trader owns the per-pair session and the tick loop that
// drives one decide-plan-simulate cycle per interval.
package trader

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/rustyeddy/midas/broker"
	"github.com/rustyeddy/midas/config"
	"github.com/rustyeddy/midas/grid"
	"github.com/rustyeddy/midas/journal"
	"github.com/rustyeddy/midas/market"
	"github.com/rustyeddy/midas/regime"
	"github.com/rustyeddy/midas/sim"
)

const (
	candlePeriod = "5m"
	candleCount  = 200

	// minTickSeconds is the loop floor, enforced regardless of
	// configuration.
	minTickSeconds = 5
)

// Trader is one bot session: configuration, collaborators, the fee and
// balance caches refreshed each cycle, and the status snapshot read by
// the foreground reporter. The tick loop is the only writer of session
// state; Status is the read-only telemetry surface.
type Trader struct {
	cfg *config.Config
	bkr broker.Broker
	jnl journal.Journal
	log zerolog.Logger

	fees       broker.FeeSchedule
	feesManual bool
	balance    float64

	mu      sync.RWMutex
	phase   regime.Regime
	lastMsg string
}

// New creates a session. A manual fee override from config is sticky:
// it is installed once and the per-cycle fee refresh is suppressed for
// the process lifetime.
func New(cfg *config.Config, bkr broker.Broker, jnl journal.Journal, log zerolog.Logger) *Trader {
	t := &Trader{
		cfg:   cfg,
		bkr:   bkr,
		jnl:   jnl,
		log:   log,
		phase: regime.Scout,
		fees:  broker.FeeSchedule{Maker: 0.0010, Taker: 0.0015},
	}
	if cfg.Fees != nil {
		t.fees = broker.FeeSchedule{Maker: cfg.Fees.Maker, Taker: cfg.Fees.Taker}
		t.feesManual = true
	}
	return t
}

// Status returns the current posture and last status message. Safe to
// call from any goroutine at any time.
func (t *Trader) Status() (regime.Regime, string) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.phase, t.lastMsg
}

func (t *Trader) setStatus(phase regime.Regime, msg string) {
	t.mu.Lock()
	t.phase = phase
	t.lastMsg = msg
	t.mu.Unlock()
}

// Interval returns the effective wake-up interval.
func (t *Trader) Interval() time.Duration {
	secs := t.cfg.TickSeconds
	if secs < minTickSeconds {
		secs = minTickSeconds
	}
	return time.Duration(secs) * time.Second
}

// Run drives the tick loop until ctx is cancelled. Each wake-up runs one
// full cycle synchronously; cycles never overlap. Any cycle failure,
// panics included, is recorded as the latest status and the loop keeps
// going — stop requests are honored only between cycles.
func (t *Trader) Run(ctx context.Context) {
	interval := t.Interval()
	t.log.Info().
		Str("pair", t.cfg.Pair).
		Dur("interval", interval).
		Bool("simulated", t.cfg.Simulated).
		Msg("trader loop starting")

	for {
		t.safeCycle(ctx)

		select {
		case <-ctx.Done():
			t.log.Info().Msg("trader loop stopped")
			return
		case <-time.After(interval):
		}
	}
}

func (t *Trader) safeCycle(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			mtxCycleErrors.Inc()
			t.setStatus(t.phase, fmt.Sprintf("tick err: panic: %v", r))
			t.log.Error().Str("panic", fmt.Sprint(r)).Msg("cycle panicked")
		}
	}()

	mtxCycles.Inc()
	if err := t.Cycle(ctx); err != nil {
		mtxCycleErrors.Inc()
		t.setStatus(t.phase, fmt.Sprintf("tick err: %v", err))
		t.log.Error().Err(err).Msg("cycle failed")
	}
}

// Cycle executes one decide-plan-simulate pass: refresh fees, refresh
// balance, fetch price and history, classify, plan the ladder, and
// account the accepted orders. The ledger append is the final act of a
// cycle. Exported so a dry run can execute exactly one pass.
func (t *Trader) Cycle(ctx context.Context) error {
	t.refreshFees(ctx)
	t.refreshBalance(ctx)

	price := t.fetchPrice(ctx)
	series := t.fetchCandles(ctx)

	phase := regime.Classify(series)
	observeRegime(phase)
	t.setStatus(phase, fmt.Sprintf("%s | price=%.2f | bal=$%.2f | fees m/t=%.3f/%.3f",
		phase, price, t.balance, t.fees.Maker, t.fees.Taker))

	if phase == regime.Scout || t.balance <= 1e-6 || price <= 0 {
		return nil
	}

	orders := grid.ForRegime(phase, grid.PlanLadder(
		price, t.cfg.BudgetUSD, t.balance,
		t.cfg.GridLevels, t.cfg.Spacing, t.fees, t.cfg.MinNet,
	))
	if len(orders) > grid.MaxOrdersPerCycle {
		orders = orders[:grid.MaxOrdersPerCycle]
	}

	for _, intent := range orders {
		if !t.cfg.Simulated {
			if err := t.submitLive(ctx, intent); err != nil {
				return err
			}
			continue
		}

		rec := sim.Fill(intent, phase,
			strings.ToUpper(t.cfg.Exchange), t.cfg.Pair,
			t.cfg.Spacing, t.fees, int(t.Interval().Seconds()), time.Now())
		if err := t.jnl.Append(rec); err != nil {
			return fmt.Errorf("ledger append: %w", err)
		}

		mtxOrders.WithLabelValues(string(intent.Side)).Inc()
		mtxPnL.Add(rec.PnLUSD)
		t.log.Info().
			Str("regime", string(phase)).
			Str("side", string(intent.Side)).
			Float64("qty", intent.Quantity).
			Float64("entry", rec.EntryPrice).
			Float64("exit", rec.ExitPrice).
			Float64("pnl", rec.PnLUSD).
			Msg("simulated fill")
	}
	return nil
}

// submitLive forwards an intent to the broker's live-execution
// capability, which no collaborator in this build provides. The absent
// capability is not an error: the order is skipped and noted in status.
func (t *Trader) submitLive(ctx context.Context, intent broker.OrderIntent) error {
	sub, ok := t.bkr.(broker.OrderSubmitter)
	if !ok {
		t.mu.Lock()
		t.lastMsg += " | live submission unavailable, order skipped"
		t.mu.Unlock()
		t.log.Warn().Msg("live mode without an order submitter; skipping order")
		return nil
	}
	if err := sub.SubmitLimitOrder(ctx, t.cfg.Pair, intent); err != nil {
		return fmt.Errorf("submit order: %w", err)
	}
	mtxOrders.WithLabelValues(string(intent.Side)).Inc()
	return nil
}

// refreshFees pulls the fee schedule once per cycle unless a manual
// override is active. Fetch failures keep the previous schedule.
func (t *Trader) refreshFees(ctx context.Context) {
	if t.feesManual {
		return
	}
	fees, err := t.bkr.GetFeeSchedule(ctx, t.cfg.Pair)
	if err != nil {
		t.log.Debug().Err(err).Msg("fee refresh failed, keeping previous schedule")
		return
	}
	t.fees = fees
}

func (t *Trader) refreshBalance(ctx context.Context) {
	balance, err := t.bkr.GetAvailableBalance(ctx, t.cfg.QuoteAsset())
	if err != nil {
		t.balance = 0
		return
	}
	t.balance = balance
}

func (t *Trader) fetchPrice(ctx context.Context) float64 {
	price, err := t.bkr.GetTicker(ctx, t.cfg.Pair)
	if err != nil {
		t.setStatus(t.phase, fmt.Sprintf("price err: %v", err))
		return 0
	}
	return price
}

func (t *Trader) fetchCandles(ctx context.Context) market.Series {
	series, err := t.bkr.GetCandles(ctx, t.cfg.Pair, candlePeriod, candleCount)
	if err != nil {
		return nil
	}
	return series
}
