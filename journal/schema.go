// journal/schema.go
package journal

const Schema = `
CREATE TABLE IF NOT EXISTS trades (
	trade_id TEXT PRIMARY KEY,
	utc DATETIME NOT NULL,
	exchange TEXT NOT NULL,
	regime TEXT NOT NULL,
	symbol TEXT NOT NULL,
	side TEXT NOT NULL,
	qty REAL NOT NULL,
	entry_px REAL NOT NULL,
	exit_px REAL NOT NULL,
	gross_pct REAL NOT NULL,
	net_pct REAL NOT NULL,
	fee_pct_rt REAL NOT NULL,
	pnl_usd REAL NOT NULL,
	runtime_sec INTEGER NOT NULL,
	notes TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_trades_utc ON trades(utc);
`
