package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"DeadReckoning/internal/model"
)

// SQLiteRecorder persists simulation output to a SQLite database.
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

	// WAL mode so dashboards can read while a run is writing.
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
		`CREATE TABLE IF NOT EXISTS runs (
			id                TEXT PRIMARY KEY,
			finished_at       INTEGER NOT NULL,
			released_count    INTEGER,
			released_total    REAL,
			historical_count  INTEGER,
			historical_total  REAL,
			avg_outstanding   REAL,
			warmup_days       INTEGER
		)`,

		`CREATE TABLE IF NOT EXISTS releases (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id       TEXT NOT NULL,
			day          INTEGER NOT NULL,
			tx_id        TEXT NOT NULL,
			amount       REAL,
			flags        TEXT,
			window_spend REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_releases_run_day ON releases(run_id, day)`,

		`CREATE TABLE IF NOT EXISTS daily_stats (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id         TEXT NOT NULL,
			day            INTEGER NOT NULL,
			window_spend   REAL,
			released_count INTEGER,
			released_total REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_daily_run_day ON daily_stats(run_id, day)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordRelease(evt *ReleaseEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO releases
		(run_id, day, tx_id, amount, flags, window_spend)
		VALUES (?,?,?,?,?,?)`,
		evt.RunID, evt.Day, evt.TxID, evt.Amount, evt.Flags, evt.WindowSpend,
	)
	return err
}

func (r *SQLiteRecorder) RecordDaily(stat *DayStat) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO daily_stats
		(run_id, day, window_spend, released_count, released_total)
		VALUES (?,?,?,?,?)`,
		stat.RunID, stat.Day, stat.WindowSpend, stat.ReleasedCount, stat.ReleasedTotal,
	)
	return err
}

func (r *SQLiteRecorder) RecordRun(sum *model.RunSummary) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO runs
		(id, finished_at, released_count, released_total,
		 historical_count, historical_total, avg_outstanding, warmup_days)
		VALUES (?,?,?,?,?,?,?,?)`,
		sum.RunID, time.Now().Unix(),
		sum.ReleasedCount, sum.ReleasedTotal,
		sum.HistoricalCount, sum.HistoricalTotal,
		sum.AvgOutstanding, sum.WarmupDays,
	)
	return err
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
