package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/bakeryops/ovenplan/internal/db"
	"github.com/bakeryops/ovenplan/internal/domain"
)

const workCenterColumns = `id, name, capacity_unit, max_concurrent,
		allows_cross_order_parallel, created_at, updated_at`

// SQLiteWorkCenterRepo implements WorkCenterRepo on SQLite.
type SQLiteWorkCenterRepo struct {
	db db.DBTX
}

// NewSQLiteWorkCenterRepo creates a new SQLiteWorkCenterRepo.
func NewSQLiteWorkCenterRepo(conn db.DBTX) *SQLiteWorkCenterRepo {
	return &SQLiteWorkCenterRepo{db: conn}
}

func (r *SQLiteWorkCenterRepo) Create(ctx context.Context, wc *domain.WorkCenter) error {
	query := `INSERT INTO work_centers (` + workCenterColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		wc.ID,
		wc.Name,
		wc.CapacityUnit,
		wc.MaxConcurrent,
		boolToInt(wc.AllowsCrossOrderParallel),
		wc.CreatedAt.Format(time.RFC3339),
		wc.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting work center: %w", err)
	}
	return nil
}

func (r *SQLiteWorkCenterRepo) GetByID(ctx context.Context, id string) (*domain.WorkCenter, error) {
	query := `SELECT ` + workCenterColumns + ` FROM work_centers WHERE id = ?`
	return r.scanWorkCenter(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteWorkCenterRepo) List(ctx context.Context) ([]*domain.WorkCenter, error) {
	query := `SELECT ` + workCenterColumns + ` FROM work_centers ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing work centers: %w", err)
	}
	defer rows.Close()

	var out []*domain.WorkCenter
	for rows.Next() {
		wc, err := r.scanWorkCenter(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, wc)
	}
	return out, rows.Err()
}

func (r *SQLiteWorkCenterRepo) Update(ctx context.Context, wc *domain.WorkCenter) error {
	query := `UPDATE work_centers
		SET name = ?, capacity_unit = ?, max_concurrent = ?,
			allows_cross_order_parallel = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		wc.Name,
		wc.CapacityUnit,
		wc.MaxConcurrent,
		boolToInt(wc.AllowsCrossOrderParallel),
		nowUTC(),
		wc.ID,
	)
	if err != nil {
		return fmt.Errorf("updating work center: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking work center update: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("work center %s not found", wc.ID)
	}
	return nil
}

func (r *SQLiteWorkCenterRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM work_centers WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting work center: %w", err)
	}
	return nil
}

func (r *SQLiteWorkCenterRepo) SetAlternates(ctx context.Context, id string, alternateIDs []string) error {
	if _, err := r.db.ExecContext(ctx,
		`DELETE FROM alternate_work_centers WHERE work_center_id = ?`, id); err != nil {
		return fmt.Errorf("clearing alternates for %s: %w", id, err)
	}
	for i, altID := range alternateIDs {
		if _, err := r.db.ExecContext(ctx,
			`INSERT INTO alternate_work_centers (work_center_id, alternate_id, priority) VALUES (?, ?, ?)`,
			id, altID, i,
		); err != nil {
			return fmt.Errorf("inserting alternate %s for %s: %w", altID, id, err)
		}
	}
	return nil
}

func (r *SQLiteWorkCenterRepo) ListAlternates(ctx context.Context, id string) ([]*domain.WorkCenter, error) {
	query := `SELECT ` + aliasColumns(workCenterColumns, "w") + `
		FROM work_centers w
		JOIN alternate_work_centers a ON a.alternate_id = w.id
		WHERE a.work_center_id = ?
		ORDER BY a.priority`
	rows, err := r.db.QueryContext(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("listing alternates for %s: %w", id, err)
	}
	defer rows.Close()

	var out []*domain.WorkCenter
	for rows.Next() {
		wc, err := r.scanWorkCenter(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, wc)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *SQLiteWorkCenterRepo) scanWorkCenter(row rowScanner) (*domain.WorkCenter, error) {
	var wc domain.WorkCenter
	var crossOrder int
	var createdAt, updatedAt string
	err := row.Scan(
		&wc.ID,
		&wc.Name,
		&wc.CapacityUnit,
		&wc.MaxConcurrent,
		&crossOrder,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("scanning work center: %w", err)
	}
	wc.AllowsCrossOrderParallel = intToBool(crossOrder)
	wc.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	wc.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return &wc, nil
}
