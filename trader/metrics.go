// Prometheus metrics for the tick loop. Registered once at package init
// and served by the HTTP handler the run command starts at /metrics.
package trader

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/rustyeddy/midas/regime"
)

var (
	mtxCycles = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "midas_cycles_total",
			Help: "Completed tick cycles, failed ones included",
		},
	)

	mtxCycleErrors = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "midas_cycle_errors_total",
			Help: "Cycles that ended in a caught failure",
		},
	)

	mtxOrders = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "midas_orders_total",
			Help: "Orders acted on, by side",
		},
		[]string{"side"},
	)

	// One labeled series per posture, flipped between 0/1 so dashboards
	// can plot the active regime directly.
	mtxRegime = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "midas_regime",
			Help: "Active market regime indicator",
		},
		[]string{"regime"},
	)

	mtxPnL = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "midas_sim_pnl_usd",
			Help: "Cumulative simulated profit and loss in USD",
		},
	)
)

var allRegimes = []regime.Regime{
	regime.Scout, regime.Lunchbox, regime.Regular, regime.Afterburner, regime.Dip,
}

func observeRegime(active regime.Regime) {
	for _, r := range allRegimes {
		v := 0.0
		if r == active {
			v = 1.0
		}
		mtxRegime.WithLabelValues(string(r)).Set(v)
	}
}

func init() {
	prometheus.MustRegister(mtxCycles, mtxCycleErrors, mtxOrders, mtxRegime, mtxPnL)
}
