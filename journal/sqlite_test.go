package journal

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSQLiteAppend(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "trades.db")
	j, err := NewSQLite(path)
	assert.NoError(t, err)

	ts := time.Date(2024, 3, 4, 5, 6, 7, 0, time.UTC)
	assert.NoError(t, j.Append(sampleRecord(ts)))
	assert.NoError(t, j.Append(sampleRecord(ts.Add(time.Minute))))
	assert.NoError(t, j.Close())

	db, err := sql.Open("sqlite3", path)
	assert.NoError(t, err)
	defer db.Close()

	var count int
	assert.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM trades`).Scan(&count))
	assert.Equal(t, 2, count)

	var regime, side string
	var qty float64
	err = db.QueryRow(`SELECT regime, side, qty FROM trades ORDER BY trade_id LIMIT 1`).
		Scan(&regime, &side, &qty)
	assert.NoError(t, err)
	assert.Equal(t, "LUNCHBOX", regime)
	assert.Equal(t, "LONG", side)
	assert.InDelta(t, 0.00125, qty, 1e-12)
}
