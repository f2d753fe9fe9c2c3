package journal

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Header is the fixed first row of the CSV ledger. Existing files are
// never rewritten, so the header is emitted only when the file is new or
// empty.
var Header = []string{
	"utc", "exchange", "bot", "symbol", "side", "qty", "entry_px", "exit_px",
	"gross_pct", "net_pct", "fee_pct_rt", "pnl_usd", "runtime_sec", "notes",
}

type CSVJournal struct {
	w *csv.Writer
	f *os.File
}

// NewCSV opens (or creates) an append-only CSV ledger at path. The file
// is opened for append so restarting the process extends the existing
// trail rather than truncating it.
func NewCSV(path string) (*CSVJournal, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}

	w := csv.NewWriter(f)
	if info.Size() == 0 {
		if err := w.Write(Header); err != nil {
			f.Close()
			return nil, err
		}
		w.Flush()
		if err := w.Error(); err != nil {
			f.Close()
			return nil, err
		}
	}

	return &CSVJournal{w: w, f: f}, nil
}

func (j *CSVJournal) Append(t TradeRecord) error {
	err := j.w.Write([]string{
		t.UTC.UTC().Format(time.RFC3339),
		t.Exchange,
		t.Regime,
		t.Symbol,
		string(t.Side),
		f(t.Quantity),
		f(t.EntryPrice),
		f(t.ExitPrice),
		f(t.GrossPct),
		f(t.NetPct),
		f(t.FeePctRT),
		f(t.PnLUSD),
		strconv.Itoa(t.HoldSeconds),
		t.Notes,
	})
	if err != nil {
		return err
	}

	j.w.Flush()
	if err := j.w.Error(); err != nil {
		return err
	}
	// The record must be durable before the cycle is considered done.
	return j.f.Sync()
}

func (j *CSVJournal) Close() error {
	j.w.Flush()
	if err := j.w.Error(); err != nil {
		return err
	}
	return j.f.Close()
}

func f(x float64) string {
	return strconv.FormatFloat(x, 'g', -1, 64)
}
