package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate applies all schema statements in order. Statements are written to
// be re-runnable; "duplicate column name" errors from additive ALTER TABLE
// statements are tolerated.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS work_centers (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		capacity_unit TEXT NOT NULL DEFAULT '',
		max_concurrent INTEGER NOT NULL DEFAULT 1,
		allows_cross_order_parallel INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS alternate_work_centers (
		work_center_id TEXT NOT NULL REFERENCES work_centers(id) ON DELETE CASCADE,
		alternate_id TEXT NOT NULL REFERENCES work_centers(id) ON DELETE CASCADE,
		priority INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (work_center_id, alternate_id)
	)`,

	`CREATE TABLE IF NOT EXISTS route_steps (
		product_id TEXT NOT NULL,
		work_center_id TEXT NOT NULL REFERENCES work_centers(id),
		operation TEXT NOT NULL,
		sequence INTEGER NOT NULL,
		PRIMARY KEY (product_id, sequence)
	)`,

	`CREATE TABLE IF NOT EXISTS productivity_params (
		product_id TEXT NOT NULL,
		work_center_id TEXT NOT NULL REFERENCES work_centers(id),
		units_per_hour REAL NOT NULL DEFAULT 0,
		fixed_minutes INTEGER NOT NULL DEFAULT 0,
		use_fixed INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (product_id, work_center_id)
	)`,

	`CREATE TABLE IF NOT EXISTS rest_times (
		product_id TEXT NOT NULL,
		operation TEXT NOT NULL,
		hours REAL NOT NULL DEFAULT 0,
		PRIMARY KEY (product_id, operation)
	)`,

	`CREATE TABLE IF NOT EXISTS shift_blocks (
		work_center_id TEXT NOT NULL REFERENCES work_centers(id) ON DELETE CASCADE,
		date TEXT NOT NULL,
		shift INTEGER NOT NULL CHECK (shift BETWEEN 1 AND 3),
		reason TEXT NOT NULL DEFAULT '',
		PRIMARY KEY (work_center_id, date, shift)
	)`,

	`CREATE TABLE IF NOT EXISTS staffing (
		work_center_id TEXT NOT NULL REFERENCES work_centers(id) ON DELETE CASCADE,
		date TEXT NOT NULL,
		shift INTEGER NOT NULL CHECK (shift BETWEEN 1 AND 3),
		headcount INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (work_center_id, date, shift)
	)`,

	`CREATE TABLE IF NOT EXISTS production_orders (
		order_key TEXT PRIMARY KEY,
		product_id TEXT NOT NULL,
		quantity INTEGER NOT NULL,
		state TEXT NOT NULL,
		requested_start TEXT NOT NULL,
		deadline TEXT,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS schedule_entries (
		id TEXT PRIMARY KEY,
		work_center_id TEXT NOT NULL REFERENCES work_centers(id),
		product_id TEXT NOT NULL,
		order_key TEXT NOT NULL,
		operation TEXT NOT NULL DEFAULT '',
		arrival_time TEXT NOT NULL,
		start_time TEXT NOT NULL,
		end_time TEXT NOT NULL,
		duration_min INTEGER NOT NULL,
		batch_index INTEGER NOT NULL,
		batch_total INTEGER NOT NULL,
		source_entry_id TEXT REFERENCES schedule_entries(id),
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_schedule_entries_wc_start
		ON schedule_entries(work_center_id, start_time)`,

	`CREATE INDEX IF NOT EXISTS idx_schedule_entries_order
		ON schedule_entries(order_key)`,

	// Optimistic-concurrency anchor: one row per (work center, ISO week),
	// bumped with a compare-and-swap at commit time.
	`CREATE TABLE IF NOT EXISTS schedule_windows (
		work_center_id TEXT NOT NULL REFERENCES work_centers(id) ON DELETE CASCADE,
		week_start TEXT NOT NULL,
		version INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (work_center_id, week_start)
	)`,

	// Order numbering lives in a single-row table updated atomically.
	`CREATE TABLE IF NOT EXISTS order_sequences (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		next_order INTEGER NOT NULL
	)`,
}
