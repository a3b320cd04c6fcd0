package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"math"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists run history to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so analysis tools can read while the tracker writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS signal_snapshots (
			id               INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp        INTEGER NOT NULL,
			symbol           TEXT NOT NULL,
			price            REAL,
			rolling_avg      REAL,
			vs_average_pct   REAL,
			daily_change_pct REAL,
			classification   TEXT,
			score            REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_signal_ts ON signal_snapshots(timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_signal_symbol ON signal_snapshots(symbol)`,

		`CREATE TABLE IF NOT EXISTS fetch_log (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp   INTEGER NOT NULL,
			symbol      TEXT NOT NULL,
			provider    TEXT,
			points      INTEGER,
			duration_ms INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_fetch_ts ON fetch_log(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordSignal(snap *SignalSnapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO signal_snapshots
		(timestamp, symbol, price, rolling_avg, vs_average_pct, daily_change_pct, classification, score)
		VALUES (?,?,?,?,?,?,?,?)`,
		time.Now().Unix(), snap.Symbol, snap.Price,
		nullable(snap.RollingAvg), nullable(snap.VsAveragePct), nullable(snap.DailyChangePct),
		snap.Classification, snap.Score,
	)
	return err
}

func (r *SQLiteRecorder) RecordFetch(rec *FetchRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO fetch_log
		(timestamp, symbol, provider, points, duration_ms)
		VALUES (?,?,?,?,?)`,
		time.Now().Unix(), rec.Symbol, rec.Provider, rec.Points, rec.Duration.Milliseconds(),
	)
	return err
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}

// nullable maps NaN to SQL NULL.
func nullable(f float64) interface{} {
	if math.IsNaN(f) {
		return nil
	}
	return f
}
