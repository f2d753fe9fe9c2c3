package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "midas",
	Short: "A regime-driven grid trading bot for a single asset pair",
	Long: `Midas is a single-pair trading bot with one brain and five postures.

Once per tick it classifies the market into a regime (SCOUT, LUNCHBOX,
REGULAR, AFTERBURNER, DIP), plans a fee-aware ladder of limit orders
around the current price, and accounts the accepted orders as simulated
fills in an append-only CSV or SQLite ledger.

It trades on paper by default. Live mode requires an explicit
confirmation token and an order-submission collaborator this build does
not ship.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}
