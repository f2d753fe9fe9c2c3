package journal

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"

	"github.com/rustyeddy/midas/pkg/id"
)

type SQLiteJournal struct {
	db *sql.DB
}

// NewSQLite opens an SQLite-backed ledger. Rows are keyed by ULID so the
// primary key sorts by append time.
func NewSQLite(path string) (*SQLiteJournal, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteJournal{db: db}, nil
}

func (j *SQLiteJournal) Append(t TradeRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO trades
		(trade_id, utc, exchange, regime, symbol, side, qty, entry_px, exit_px,
		 gross_pct, net_pct, fee_pct_rt, pnl_usd, runtime_sec, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id.New(), t.UTC.UTC(), t.Exchange, t.Regime, t.Symbol, string(t.Side),
		t.Quantity, t.EntryPrice, t.ExitPrice, t.GrossPct, t.NetPct,
		t.FeePctRT, t.PnLUSD, t.HoldSeconds, t.Notes,
	)
	return err
}

func (j *SQLiteJournal) Close() error {
	return j.db.Close()
}
