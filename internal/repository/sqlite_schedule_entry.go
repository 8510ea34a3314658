package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bakeryops/ovenplan/internal/db"
	"github.com/bakeryops/ovenplan/internal/domain"
)

const entryColumns = `e.id, e.work_center_id, e.product_id, e.order_key, e.operation,
		e.arrival_time, e.start_time, e.end_time, e.duration_min,
		e.batch_index, e.batch_total, e.source_entry_id, e.created_at, e.updated_at`

// entrySelect joins each entry to its upstream source and the rest-time
// configuration so arrival times load already derived.
const entrySelect = `SELECT ` + entryColumns + `, s.end_time, r.hours
		FROM schedule_entries e
		LEFT JOIN schedule_entries s ON e.source_entry_id = s.id
		LEFT JOIN rest_times r ON r.product_id = e.product_id AND r.operation = e.operation`

// SQLiteScheduleEntryRepo implements ScheduleEntryRepo on SQLite.
type SQLiteScheduleEntryRepo struct {
	db db.DBTX
}

// NewSQLiteScheduleEntryRepo creates a new SQLiteScheduleEntryRepo.
func NewSQLiteScheduleEntryRepo(conn db.DBTX) *SQLiteScheduleEntryRepo {
	return &SQLiteScheduleEntryRepo{db: conn}
}

// Operation is persisted per entry so rest-time lookups can key on the
// product/operation pair at load time.
func (r *SQLiteScheduleEntryRepo) Create(ctx context.Context, e *domain.ScheduleEntry, operation string) error {
	query := `INSERT INTO schedule_entries (id, work_center_id, product_id, order_key, operation,
		arrival_time, start_time, end_time, duration_min,
		batch_index, batch_total, source_entry_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		e.ID,
		e.WorkCenterID,
		e.ProductID,
		e.OrderKey,
		operation,
		e.ArrivalTime.Format(time.RFC3339),
		e.StartTime.Format(time.RFC3339),
		e.EndTime.Format(time.RFC3339),
		e.DurationMin,
		e.BatchIndex,
		e.BatchTotal,
		nullableString(e.SourceEntryID),
		e.CreatedAt.Format(time.RFC3339),
		e.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting schedule entry: %w", err)
	}
	return nil
}

func (r *SQLiteScheduleEntryRepo) GetByID(ctx context.Context, id string) (*domain.ScheduleEntry, error) {
	row := r.db.QueryRowContext(ctx, entrySelect+` WHERE e.id = ?`, id)
	e, err := r.scanEntry(row)
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (r *SQLiteScheduleEntryRepo) ListWindow(ctx context.Context, workCenterID string, from, to time.Time) ([]domain.ScheduleEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		entrySelect+` WHERE e.work_center_id = ? AND e.start_time < ? AND e.end_time > ?
		ORDER BY e.start_time, e.id`,
		workCenterID, to.UTC().Format(time.RFC3339), from.UTC().Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("listing schedule window for %s: %w", workCenterID, err)
	}
	defer rows.Close()
	return r.scanEntries(rows)
}

func (r *SQLiteScheduleEntryRepo) ListByOrder(ctx context.Context, orderKey string) ([]domain.ScheduleEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		entrySelect+` WHERE e.order_key = ? ORDER BY e.start_time, e.batch_index`, orderKey)
	if err != nil {
		return nil, fmt.Errorf("listing entries for order %s: %w", orderKey, err)
	}
	defer rows.Close()
	return r.scanEntries(rows)
}

func (r *SQLiteScheduleEntryRepo) UpdatePlacement(ctx context.Context, e *domain.ScheduleEntry) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE schedule_entries
		SET arrival_time = ?, start_time = ?, end_time = ?, updated_at = ?
		WHERE id = ?`,
		e.ArrivalTime.Format(time.RFC3339),
		e.StartTime.Format(time.RFC3339),
		e.EndTime.Format(time.RFC3339),
		nowUTC(),
		e.ID,
	)
	if err != nil {
		return fmt.Errorf("updating placement for %s: %w", e.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking placement update: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("schedule entry %s not found", e.ID)
	}
	return nil
}

// DeleteCascade removes the order's entries and every entry whose source
// chain leads back to them. Source references are nulled before the rows
// delete so no foreign key dangles mid-transaction.
func (r *SQLiteScheduleEntryRepo) DeleteCascade(ctx context.Context, orderKey string) (int, error) {
	rows, err := r.db.QueryContext(ctx,
		`WITH RECURSIVE doomed(id) AS (
			SELECT id FROM schedule_entries WHERE order_key = ?
			UNION
			SELECT e.id FROM schedule_entries e JOIN doomed d ON e.source_entry_id = d.id
		)
		SELECT id FROM doomed`, orderKey)
	if err != nil {
		return 0, fmt.Errorf("collecting cascade for order %s: %w", orderKey, err)
	}
	defer rows.Close()

	var ids []any
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return 0, fmt.Errorf("scanning cascade id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(ids)), ", ")

	if _, err := r.db.ExecContext(ctx,
		`UPDATE schedule_entries SET source_entry_id = NULL
		WHERE source_entry_id IN (`+placeholders+`)`, ids...); err != nil {
		return 0, fmt.Errorf("nulling source references for order %s: %w", orderKey, err)
	}

	res, err := r.db.ExecContext(ctx,
		`DELETE FROM schedule_entries WHERE id IN (`+placeholders+`)`, ids...)
	if err != nil {
		return 0, fmt.Errorf("deleting cascade for order %s: %w", orderKey, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting cascade deletion: %w", err)
	}
	return int(n), nil
}

func (r *SQLiteScheduleEntryRepo) scanEntries(rows *sql.Rows) ([]domain.ScheduleEntry, error) {
	var out []domain.ScheduleEntry
	for rows.Next() {
		e, err := r.scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	return out, rows.Err()
}

func (r *SQLiteScheduleEntryRepo) scanEntry(row rowScanner) (*domain.ScheduleEntry, error) {
	var e domain.ScheduleEntry
	var operation, arrival, start, end, createdAt, updatedAt string
	var sourceID, sourceEnd sql.NullString
	var restHours sql.NullFloat64
	err := row.Scan(
		&e.ID,
		&e.WorkCenterID,
		&e.ProductID,
		&e.OrderKey,
		&operation,
		&arrival,
		&start,
		&end,
		&e.DurationMin,
		&e.BatchIndex,
		&e.BatchTotal,
		&sourceID,
		&createdAt,
		&updatedAt,
		&sourceEnd,
		&restHours,
	)
	if err != nil {
		return nil, fmt.Errorf("scanning schedule entry: %w", err)
	}
	if sourceID.Valid {
		e.SourceEntryID = &sourceID.String
	}
	stored, _ := time.Parse(time.RFC3339, arrival)
	e.ArrivalTime = deriveArrival(stored, sourceEnd, restHours)
	e.StartTime, _ = time.Parse(time.RFC3339, start)
	e.EndTime, _ = time.Parse(time.RFC3339, end)
	e.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	e.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	e.IsExisting = true
	return &e, nil
}

// IsNotFound reports whether err wraps sql.ErrNoRows.
func IsNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
