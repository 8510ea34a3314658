package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/bakeryops/ovenplan/internal/db"
	"github.com/bakeryops/ovenplan/internal/domain"
)

// SQLiteShiftBlockRepo implements ShiftBlockRepo on SQLite.
type SQLiteShiftBlockRepo struct {
	db db.DBTX
}

// NewSQLiteShiftBlockRepo creates a new SQLiteShiftBlockRepo.
func NewSQLiteShiftBlockRepo(conn db.DBTX) *SQLiteShiftBlockRepo {
	return &SQLiteShiftBlockRepo{db: conn}
}

// Create inserts a new blocking record. Blocking the same (work center,
// date, shift) twice is an error; use Upsert to overwrite the reason.
func (r *SQLiteShiftBlockRepo) Create(ctx context.Context, b domain.ShiftBlock) error {
	query := `INSERT INTO shift_blocks (work_center_id, date, shift, reason)
		VALUES (?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		b.WorkCenterID, b.Date.Format(dateLayout), int(b.Shift), b.Reason)
	if err != nil {
		return fmt.Errorf("inserting shift block: %w", err)
	}
	return nil
}

func (r *SQLiteShiftBlockRepo) Upsert(ctx context.Context, b domain.ShiftBlock) error {
	query := `INSERT INTO shift_blocks (work_center_id, date, shift, reason)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (work_center_id, date, shift) DO UPDATE SET reason = excluded.reason`
	_, err := r.db.ExecContext(ctx, query,
		b.WorkCenterID, b.Date.Format(dateLayout), int(b.Shift), b.Reason)
	if err != nil {
		return fmt.Errorf("upserting shift block: %w", err)
	}
	return nil
}

func (r *SQLiteShiftBlockRepo) Delete(ctx context.Context, workCenterID string, date time.Time, shift domain.ShiftNumber) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM shift_blocks WHERE work_center_id = ? AND date = ? AND shift = ?`,
		workCenterID, date.Format(dateLayout), int(shift))
	if err != nil {
		return fmt.Errorf("deleting shift block: %w", err)
	}
	return nil
}

// ListWindow includes one day on each side of [from, to): the night shift
// of a day inside the window starts on the previous calendar day.
func (r *SQLiteShiftBlockRepo) ListWindow(ctx context.Context, workCenterID string, from, to time.Time) ([]domain.ShiftBlock, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT work_center_id, date, shift, reason
		FROM shift_blocks
		WHERE work_center_id = ? AND date >= ? AND date <= ?
		ORDER BY date, shift`,
		workCenterID,
		from.AddDate(0, 0, -1).Format(dateLayout),
		to.AddDate(0, 0, 1).Format(dateLayout))
	if err != nil {
		return nil, fmt.Errorf("listing shift blocks for %s: %w", workCenterID, err)
	}
	defer rows.Close()

	var out []domain.ShiftBlock
	for rows.Next() {
		var b domain.ShiftBlock
		var date string
		var shift int
		if err := rows.Scan(&b.WorkCenterID, &date, &shift, &b.Reason); err != nil {
			return nil, fmt.Errorf("scanning shift block: %w", err)
		}
		b.Date, _ = time.Parse(dateLayout, date)
		b.Shift = domain.ShiftNumber(shift)
		out = append(out, b)
	}
	return out, rows.Err()
}
