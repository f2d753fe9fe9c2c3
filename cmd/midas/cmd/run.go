package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rustyeddy/midas/broker"
	"github.com/rustyeddy/midas/broker/kraken"
	"github.com/rustyeddy/midas/config"
	"github.com/rustyeddy/midas/journal"
	"github.com/rustyeddy/midas/trader"
)

// confirmToken must accompany --live; without it the bot stays on paper.
const confirmToken = "I-UNDERSTAND"

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the bot loop",
	Long: `Run the decide-plan-simulate loop for one asset pair.

Configuration is resolved from defaults, then an optional config file,
then MIDAS_* environment variables, then flags. Paper trading is the
default; --live needs --confirm I-UNDERSTAND or it falls back to paper.

Examples:
  midas run --pair BTC/USD --budget 50
  midas run --config midas.yaml --dry-run`,
	RunE: runRun,
}

var (
	runConfigPath string
	runLive       bool
	runConfirm    string
	runDryRun     bool
)

func init() {
	rootCmd.AddCommand(runCmd)

	flags := runCmd.Flags()
	flags.StringVarP(&runConfigPath, "config", "f", "", "path to config file (YAML or JSON)")
	flags.String("exchange", "kraken", "exchange to trade on")
	flags.String("pair", "BTC/USD", "asset pair")
	flags.Float64("budget", 50, "USD budget cap")
	flags.Int("grids", 8, "grid levels per side")
	flags.Float64("spacing", 0.005, "spacing between levels as a fraction")
	flags.Float64("min-net", 0.002, "minimum net step after round-trip fees")
	flags.Int("tick", 15, "loop interval in seconds (floor 5)")
	flags.Float64("paper-balance", 100, "paper quote balance in USD")
	flags.String("log", "", "ledger file path")
	flags.String("journal", "", "ledger type: csv or sqlite")
	flags.Float64("maker", -1, "manual maker fee override")
	flags.Float64("taker", -1, "manual taker fee override")
	flags.String("metrics", "", "address to serve /metrics on, e.g. :9100")
	flags.BoolVar(&runLive, "live", false, "live trading (needs --confirm "+confirmToken+")")
	flags.StringVar(&runConfirm, "confirm", "", "confirmation token for --live")
	flags.BoolVar(&runDryRun, "dry-run", false, "run a single cycle and exit")
}

// resolveConfig layers file, environment and changed flags over
// defaults. The environment overlay is returned as well; it carries the
// log level, which configures the logger rather than the session.
func resolveConfig(cmd *cobra.Command) (*config.Config, *config.Env, error) {
	cfg := config.Default()
	if runConfigPath != "" {
		loaded, err := config.LoadFromFile(runConfigPath)
		if err != nil {
			return nil, nil, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	env, err := config.LoadEnv()
	if err != nil {
		return nil, nil, err
	}
	env.Apply(cfg)

	flags := cmd.Flags()
	if flags.Changed("exchange") {
		cfg.Exchange, _ = flags.GetString("exchange")
	}
	if flags.Changed("pair") {
		cfg.Pair, _ = flags.GetString("pair")
	}
	if flags.Changed("budget") {
		cfg.BudgetUSD, _ = flags.GetFloat64("budget")
	}
	if flags.Changed("grids") {
		cfg.GridLevels, _ = flags.GetInt("grids")
	}
	if flags.Changed("spacing") {
		cfg.Spacing, _ = flags.GetFloat64("spacing")
	}
	if flags.Changed("min-net") {
		cfg.MinNet, _ = flags.GetFloat64("min-net")
	}
	if flags.Changed("tick") {
		cfg.TickSeconds, _ = flags.GetInt("tick")
	}
	if flags.Changed("paper-balance") {
		cfg.PaperBalanceUSD, _ = flags.GetFloat64("paper-balance")
	}
	if flags.Changed("log") {
		cfg.Journal.Path, _ = flags.GetString("log")
	}
	if flags.Changed("journal") {
		cfg.Journal.Type, _ = flags.GetString("journal")
	}
	if flags.Changed("metrics") {
		cfg.MetricsAddr, _ = flags.GetString("metrics")
	}
	if flags.Changed("maker") || flags.Changed("taker") {
		override := &config.FeeOverride{Maker: 0.0010, Taker: 0.0015}
		if cfg.Fees != nil {
			*override = *cfg.Fees
		}
		if flags.Changed("maker") {
			override.Maker, _ = flags.GetFloat64("maker")
		}
		if flags.Changed("taker") {
			override.Taker, _ = flags.GetFloat64("taker")
		}
		cfg.Fees = override
	}

	cfg.Simulated = true
	if runLive {
		if runConfirm == confirmToken {
			cfg.Simulated = false
		} else {
			fmt.Println("[!] Live mode requested without --confirm " + confirmToken + "; staying on paper.")
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, env, nil
}

// parseLogLevel maps the MIDAS_LOG_LEVEL value to a zerolog level,
// falling back to info for anything unrecognized.
func parseLogLevel(s string) zerolog.Level {
	level, err := zerolog.ParseLevel(s)
	if err != nil || level == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return level
}

func newBroker(cfg *config.Config) (broker.Broker, error) {
	switch cfg.Exchange {
	case "kraken":
		return kraken.NewClient(cfg.PaperBalanceUSD), nil
	default:
		return nil, fmt.Errorf("unsupported exchange %q (supported: kraken)", cfg.Exchange)
	}
}

func newJournal(cfg *config.Config) (journal.Journal, error) {
	if cfg.Journal.Type == "sqlite" {
		return journal.NewSQLite(cfg.Journal.Path)
	}
	return journal.NewCSV(cfg.Journal.Path)
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, env, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		Level(parseLogLevel(env.LogLevel)).
		With().Timestamp().Logger()

	bkr, err := newBroker(cfg)
	if err != nil {
		return err
	}

	jnl, err := newJournal(cfg)
	if err != nil {
		return fmt.Errorf("open ledger: %w", err)
	}
	defer jnl.Close()

	tr := trader.New(cfg, bkr, jnl, log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mode := "PAPER"
	if !cfg.Simulated {
		mode = "LIVE"
	}
	fmt.Printf("[+] MIDAS | %s %s | mode=%s\n", cfg.Exchange, cfg.Pair, mode)
	fmt.Printf("    budget=$%.2f grids=%d spacing=%g min_net=%g tick=%ds ledger=%s\n",
		cfg.BudgetUSD, cfg.GridLevels, cfg.Spacing, cfg.MinNet, cfg.TickSeconds, cfg.Journal.Path)

	if runDryRun {
		if err := tr.Cycle(ctx); err != nil {
			return err
		}
		phase, msg := tr.Status()
		fmt.Printf("[i] Dry run complete: phase=%s | %s\n", phase, msg)
		return nil
	}

	if cfg.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		go func() {
			if err := http.ListenAndServe(cfg.MetricsAddr, mux); err != nil {
				log.Error().Err(err).Msg("metrics server stopped")
			}
		}()
	}

	go tr.Run(ctx)

	// Foreground status reporter: read-only polling of the session's
	// snapshot until a stop signal arrives.
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			fmt.Println("\n[!] Stopping...")
			// Give an in-flight cycle a moment to finish its ledger append.
			time.Sleep(500 * time.Millisecond)
			return nil
		case <-ticker.C:
			phase, msg := tr.Status()
			fmt.Printf("[%s] phase=%s | %s\n", time.Now().UTC().Format("15:04:05"), phase, msg)
		}
	}
}
