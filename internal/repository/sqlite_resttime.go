package repository

import (
	"context"
	"fmt"

	"github.com/bakeryops/ovenplan/internal/db"
	"github.com/bakeryops/ovenplan/internal/domain"
)

// SQLiteRestTimeRepo implements RestTimeRepo on SQLite.
type SQLiteRestTimeRepo struct {
	db db.DBTX
}

// NewSQLiteRestTimeRepo creates a new SQLiteRestTimeRepo.
func NewSQLiteRestTimeRepo(conn db.DBTX) *SQLiteRestTimeRepo {
	return &SQLiteRestTimeRepo{db: conn}
}

func (r *SQLiteRestTimeRepo) Upsert(ctx context.Context, rt domain.RestTime) error {
	query := `INSERT INTO rest_times (product_id, operation, hours)
		VALUES (?, ?, ?)
		ON CONFLICT (product_id, operation) DO UPDATE SET hours = excluded.hours`
	if _, err := r.db.ExecContext(ctx, query, rt.ProductID, rt.Operation, rt.Hours); err != nil {
		return fmt.Errorf("upserting rest time for %s/%s: %w", rt.ProductID, rt.Operation, err)
	}
	return nil
}

func (r *SQLiteRestTimeRepo) ListByProduct(ctx context.Context, productID string) ([]domain.RestTime, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT product_id, operation, hours FROM rest_times WHERE product_id = ? ORDER BY operation`,
		productID)
	if err != nil {
		return nil, fmt.Errorf("listing rest times for %s: %w", productID, err)
	}
	defer rows.Close()

	var out []domain.RestTime
	for rows.Next() {
		var rt domain.RestTime
		if err := rows.Scan(&rt.ProductID, &rt.Operation, &rt.Hours); err != nil {
			return nil, fmt.Errorf("scanning rest time: %w", err)
		}
		out = append(out, rt)
	}
	return out, rows.Err()
}
