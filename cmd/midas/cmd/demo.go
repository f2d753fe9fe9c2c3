package cmd

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rustyeddy/midas/broker"
	"github.com/rustyeddy/midas/broker/replay"
	"github.com/rustyeddy/midas/config"
	"github.com/rustyeddy/midas/journal"
	"github.com/rustyeddy/midas/market"
	"github.com/rustyeddy/midas/trader"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run offline cycles against canned market data",
	Long: `Run a handful of cycles against a synthetic quiet market, with no
network access, and print where the ledger was written. Useful for
seeing the regime classifier and ladder planner in action.`,
	RunE: runDemo,
}

var demoCycles int

func init() {
	rootCmd.AddCommand(demoCmd)
	demoCmd.Flags().IntVar(&demoCycles, "cycles", 3, "number of cycles to run")
}

// demoSeries is a gently oscillating market that classifies as LUNCHBOX.
func demoSeries(n int) market.Series {
	series := make(market.Series, n)
	start := time.Now().UTC().Add(-time.Duration(n) * 5 * time.Minute)
	for i := range series {
		px := 100 + 0.05*math.Sin(float64(i))
		series[i] = market.Candle{
			Open:  px,
			High:  px + 0.1,
			Low:   px - 0.1,
			Close: px,
			Time:  start.Add(time.Duration(i) * 5 * time.Minute),
		}
	}
	return series
}

func runDemo(cmd *cobra.Command, args []string) error {
	cfg := config.Default()
	cfg.Journal.Path = filepath.Join(os.TempDir(), "midas_demo_trades.csv")

	bkr := &replay.Broker{
		Price:   100,
		Series:  demoSeries(120),
		Fees:    broker.FeeSchedule{Maker: 0.0010, Taker: 0.0015},
		Balance: cfg.PaperBalanceUSD,
	}

	jnl, err := journal.NewCSV(cfg.Journal.Path)
	if err != nil {
		return fmt.Errorf("open ledger: %w", err)
	}
	defer jnl.Close()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		With().Timestamp().Logger()
	tr := trader.New(cfg, bkr, jnl, log)

	for i := 0; i < demoCycles; i++ {
		if err := tr.Cycle(context.Background()); err != nil {
			return err
		}
		phase, msg := tr.Status()
		fmt.Printf("cycle %d: phase=%s | %s\n", i+1, phase, msg)
	}

	fmt.Printf("\nLedger written to %s\n", cfg.Journal.Path)
	return nil
}
