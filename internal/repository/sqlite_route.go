package repository

import (
	"context"
	"fmt"

	"github.com/bakeryops/ovenplan/internal/db"
	"github.com/bakeryops/ovenplan/internal/domain"
)

// SQLiteRouteRepo implements RouteRepo on SQLite.
type SQLiteRouteRepo struct {
	db db.DBTX
}

// NewSQLiteRouteRepo creates a new SQLiteRouteRepo.
func NewSQLiteRouteRepo(conn db.DBTX) *SQLiteRouteRepo {
	return &SQLiteRouteRepo{db: conn}
}

func (r *SQLiteRouteRepo) ReplaceForProduct(ctx context.Context, productID string, steps []domain.RouteStep) error {
	if _, err := r.db.ExecContext(ctx,
		`DELETE FROM route_steps WHERE product_id = ?`, productID); err != nil {
		return fmt.Errorf("clearing route for %s: %w", productID, err)
	}
	for _, s := range steps {
		if _, err := r.db.ExecContext(ctx,
			`INSERT INTO route_steps (product_id, work_center_id, operation, sequence)
			VALUES (?, ?, ?, ?)`,
			productID, s.WorkCenterID, s.Operation, s.Sequence,
		); err != nil {
			return fmt.Errorf("inserting route step %d for %s: %w", s.Sequence, productID, err)
		}
	}
	return nil
}

func (r *SQLiteRouteRepo) ListByProduct(ctx context.Context, productID string) ([]domain.RouteStep, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT product_id, work_center_id, operation, sequence
		FROM route_steps WHERE product_id = ? ORDER BY sequence`, productID)
	if err != nil {
		return nil, fmt.Errorf("listing route for %s: %w", productID, err)
	}
	defer rows.Close()

	var steps []domain.RouteStep
	for rows.Next() {
		var s domain.RouteStep
		if err := rows.Scan(&s.ProductID, &s.WorkCenterID, &s.Operation, &s.Sequence); err != nil {
			return nil, fmt.Errorf("scanning route step: %w", err)
		}
		steps = append(steps, s)
	}
	return steps, rows.Err()
}
