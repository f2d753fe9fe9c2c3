package grid

import (
	"testing"

	"github.com/rustyeddy/midas/broker"
	"github.com/rustyeddy/midas/regime"
	"github.com/stretchr/testify/assert"
)

var testFees = broker.FeeSchedule{Maker: 0.001, Taker: 0.0015}

func TestNetEdgeBoundary(t *testing.T) {
	// Round trip pays 2x maker (0.002) plus the 0.0002 allowance, so a
	// 0.002 min-net bar needs a gross step of at least 0.0042.
	assert.True(t, NetEdgeOK(0.0042, testFees, 0.002))
	assert.False(t, NetEdgeOK(0.0041999, testFees, 0.002))
	assert.True(t, NetEdgeOK(0.01, testFees, 0.002))
}

func TestNetEdgeZeroFees(t *testing.T) {
	free := broker.FeeSchedule{}
	assert.True(t, NetEdgeOK(0.0003, free, 0.0001))
	assert.False(t, NetEdgeOK(0.0002, free, 0.0001))
}

func TestPlanLadderGeometry(t *testing.T) {
	orders := PlanLadder(100, 50, 100, 8, 0.005, testFees, 0.002)

	// Every level's step (0.5%..4%) clears the edge at these fees, so
	// the full interleaved ladder comes back: buy then sell per level,
	// innermost first.
	assert.Len(t, orders, 16)
	assert.Equal(t, broker.Buy, orders[0].Side)
	assert.Equal(t, 99.5, orders[0].LimitPrice)
	assert.Equal(t, broker.Sell, orders[1].Side)
	assert.Equal(t, 100.5, orders[1].LimitPrice)

	// Effective budget is min(50, 100); per-level notional 6.25.
	assert.InDelta(t, 6.25/99.5, orders[0].Quantity, 1e-8)
	assert.InDelta(t, 6.25/100.5, orders[1].Quantity, 1e-8)

	// Outermost sell sits 4% above price.
	assert.Equal(t, 104.0, orders[len(orders)-1].LimitPrice)
}

func TestPlanLadderBalanceCapsBudget(t *testing.T) {
	full := PlanLadder(100, 50, 100, 4, 0.01, testFees, 0.002)
	capped := PlanLadder(100, 50, 25, 4, 0.01, testFees, 0.002)
	assert.Len(t, capped, len(full))
	// Half the funding, half the quantity.
	assert.InDelta(t, full[0].Quantity/2, capped[0].Quantity, 1e-8)
}

func TestPlanLadderFiltersThinLevels(t *testing.T) {
	// min net 0.0128 needs a gross step >= 0.015, i.e. level 3 outward.
	orders := PlanLadder(100, 50, 100, 8, 0.005, testFees, 0.0128)
	assert.Len(t, orders, 12)
	assert.Equal(t, 98.5, orders[0].LimitPrice)
	assert.Equal(t, 101.5, orders[1].LimitPrice)
}

func TestPlanLadderDegenerateInputs(t *testing.T) {
	assert.Empty(t, PlanLadder(0, 50, 100, 8, 0.005, testFees, 0.002))
	assert.Empty(t, PlanLadder(100, 0, 100, 8, 0.005, testFees, 0.002))
	assert.Empty(t, PlanLadder(100, 50, 0, 8, 0.005, testFees, 0.002))
	assert.Empty(t, PlanLadder(100, 50, 100, 0, 0.005, testFees, 0.002))
	assert.Empty(t, PlanLadder(-1, -1, -1, -1, 0.005, testFees, 0.002))
}

func TestPlanLadderWideSpacingDropsNonPositivePrices(t *testing.T) {
	// Spacing 0.2 over 8 levels pushes buy levels 5..8 to 0 and below;
	// those candidates must be discarded, not emitted with degenerate
	// prices. Sells are unaffected.
	orders := PlanLadder(100, 50, 100, 8, 0.2, testFees, 0.002)

	var buys, sells int
	for _, o := range orders {
		assert.Greater(t, o.Quantity, 0.0)
		assert.Greater(t, o.LimitPrice, 0.0)
		if o.Side == broker.Buy {
			buys++
		} else {
			sells++
		}
	}
	assert.Equal(t, 4, buys)
	assert.Equal(t, 8, sells)
	// Innermost buy is 20% below price.
	assert.Equal(t, 80.0, orders[0].LimitPrice)
}

func TestPlanLadderDropsQuantitiesRoundedToZero(t *testing.T) {
	// Per-level notional 6.25 at a 1e10 price is ~6e-10 units, below the
	// 8-decimal quantity resolution. Nothing useful can be ordered.
	assert.Empty(t, PlanLadder(1e10, 50, 100, 8, 0.005, testFees, 0.002))
}

func TestForRegime(t *testing.T) {
	orders := PlanLadder(100, 50, 100, 4, 0.01, testFees, 0.002)

	assert.Equal(t, orders, ForRegime(regime.Lunchbox, orders))
	assert.Equal(t, orders, ForRegime(regime.Regular, orders))
	assert.Nil(t, ForRegime(regime.Scout, orders))

	for _, o := range ForRegime(regime.Afterburner, orders) {
		assert.Equal(t, broker.Sell, o.Side)
	}
	for _, o := range ForRegime(regime.Dip, orders) {
		assert.Equal(t, broker.Buy, o.Side)
	}
	assert.Len(t, ForRegime(regime.Afterburner, orders), 4)
	assert.Len(t, ForRegime(regime.Dip, orders), 4)
}

func TestMaxOrdersPerCycle(t *testing.T) {
	assert.Equal(t, 2, MaxOrdersPerCycle)
}
