package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/bakeryops/ovenplan/internal/contract"
	"github.com/bakeryops/ovenplan/internal/db"
)

// SQLiteScheduleWindowRepo implements ScheduleWindowRepo on SQLite. Each
// (work center, week) pair owns a version row; a cascade commit bumps the
// versions of every window it read with a compare-and-swap, so two commits
// racing over the same window cannot both succeed.
type SQLiteScheduleWindowRepo struct {
	db db.DBTX
}

// NewSQLiteScheduleWindowRepo creates a new SQLiteScheduleWindowRepo.
func NewSQLiteScheduleWindowRepo(conn db.DBTX) *SQLiteScheduleWindowRepo {
	return &SQLiteScheduleWindowRepo{db: conn}
}

// WeekStart truncates t to the Monday of its week in UTC.
func WeekStart(t time.Time) time.Time {
	t = t.UTC()
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	weekday := int(day.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	return day.AddDate(0, 0, 1-weekday)
}

func (r *SQLiteScheduleWindowRepo) Version(ctx context.Context, workCenterID string, weekStart time.Time) (int, error) {
	ws := weekStart.Format(dateLayout)
	if _, err := r.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO schedule_windows (work_center_id, week_start, version)
		VALUES (?, ?, 0)`, workCenterID, ws); err != nil {
		return 0, fmt.Errorf("seeding schedule window %s/%s: %w", workCenterID, ws, err)
	}

	var version int
	err := r.db.QueryRowContext(ctx,
		`SELECT version FROM schedule_windows WHERE work_center_id = ? AND week_start = ?`,
		workCenterID, ws).Scan(&version)
	if err != nil {
		return 0, fmt.Errorf("loading schedule window version %s/%s: %w", workCenterID, ws, err)
	}
	return version, nil
}

func (r *SQLiteScheduleWindowRepo) BumpVersion(ctx context.Context, workCenterID string, weekStart time.Time, expected int) error {
	ws := weekStart.Format(dateLayout)
	res, err := r.db.ExecContext(ctx,
		`UPDATE schedule_windows SET version = version + 1
		WHERE work_center_id = ? AND week_start = ? AND version = ?`,
		workCenterID, ws, expected)
	if err != nil {
		return fmt.Errorf("bumping schedule window %s/%s: %w", workCenterID, ws, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking schedule window bump: %w", err)
	}
	if n == 0 {
		return &contract.ConflictError{WorkCenterID: workCenterID, WeekStart: weekStart}
	}
	return nil
}
