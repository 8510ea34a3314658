package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/bakeryops/ovenplan/internal/db"
	"github.com/bakeryops/ovenplan/internal/domain"
)

// SQLiteProductivityRepo implements ProductivityRepo on SQLite.
type SQLiteProductivityRepo struct {
	db db.DBTX
}

// NewSQLiteProductivityRepo creates a new SQLiteProductivityRepo.
func NewSQLiteProductivityRepo(conn db.DBTX) *SQLiteProductivityRepo {
	return &SQLiteProductivityRepo{db: conn}
}

func (r *SQLiteProductivityRepo) Upsert(ctx context.Context, p domain.ProductivityParam) error {
	query := `INSERT INTO productivity_params (product_id, work_center_id, units_per_hour, fixed_minutes, use_fixed)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (product_id, work_center_id) DO UPDATE SET
			units_per_hour = excluded.units_per_hour,
			fixed_minutes = excluded.fixed_minutes,
			use_fixed = excluded.use_fixed`
	_, err := r.db.ExecContext(ctx, query,
		p.ProductID, p.WorkCenterID, p.UnitsPerHour, p.FixedMinutes, boolToInt(p.UseFixed))
	if err != nil {
		return fmt.Errorf("upserting productivity for %s@%s: %w", p.ProductID, p.WorkCenterID, err)
	}
	return nil
}

// Get returns (nil, nil) when no record exists: the caller substitutes the
// default batch duration.
func (r *SQLiteProductivityRepo) Get(ctx context.Context, productID, workCenterID string) (*domain.ProductivityParam, error) {
	var p domain.ProductivityParam
	var useFixed int
	err := r.db.QueryRowContext(ctx,
		`SELECT product_id, work_center_id, units_per_hour, fixed_minutes, use_fixed
		FROM productivity_params WHERE product_id = ? AND work_center_id = ?`,
		productID, workCenterID,
	).Scan(&p.ProductID, &p.WorkCenterID, &p.UnitsPerHour, &p.FixedMinutes, &useFixed)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading productivity for %s@%s: %w", productID, workCenterID, err)
	}
	p.UseFixed = intToBool(useFixed)
	return &p, nil
}
