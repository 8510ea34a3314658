package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/bakeryops/ovenplan/internal/db"
	"github.com/bakeryops/ovenplan/internal/domain"
)

// SQLiteStaffingRepo implements StaffingRepo on SQLite.
type SQLiteStaffingRepo struct {
	db db.DBTX
}

// NewSQLiteStaffingRepo creates a new SQLiteStaffingRepo.
func NewSQLiteStaffingRepo(conn db.DBTX) *SQLiteStaffingRepo {
	return &SQLiteStaffingRepo{db: conn}
}

func (r *SQLiteStaffingRepo) Upsert(ctx context.Context, s domain.Staffing) error {
	query := `INSERT INTO staffing (work_center_id, date, shift, headcount)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (work_center_id, date, shift) DO UPDATE SET headcount = excluded.headcount`
	_, err := r.db.ExecContext(ctx, query,
		s.WorkCenterID, s.Date.Format(dateLayout), int(s.Shift), s.Headcount)
	if err != nil {
		return fmt.Errorf("upserting staffing: %w", err)
	}
	return nil
}

func (r *SQLiteStaffingRepo) HasStaff(ctx context.Context, workCenterID string, from, to time.Time) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM staffing
		WHERE work_center_id = ? AND headcount > 0 AND date >= ? AND date < ?`,
		workCenterID, from.Format(dateLayout), to.Format(dateLayout),
	).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("checking staffing for %s: %w", workCenterID, err)
	}
	return n > 0, nil
}
