package repository

import (
	"context"
	"fmt"

	"github.com/bakeryops/ovenplan/internal/db"
)

// SQLiteOrderSequenceRepo allocates production-order numbers atomically
// from the single-row order_sequences table via increment-and-fetch.
type SQLiteOrderSequenceRepo struct {
	db db.DBTX
}

// NewSQLiteOrderSequenceRepo creates a new SQLiteOrderSequenceRepo.
func NewSQLiteOrderSequenceRepo(conn db.DBTX) *SQLiteOrderSequenceRepo {
	return &SQLiteOrderSequenceRepo{db: conn}
}

// NextOrderNumber returns the next order number. Allocation is atomic and
// safe under concurrent writers.
func (r *SQLiteOrderSequenceRepo) NextOrderNumber(ctx context.Context) (int, error) {
	if _, err := r.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO order_sequences (id, next_order) VALUES (1, 1)`); err != nil {
		return 0, fmt.Errorf("seeding order sequence: %w", err)
	}

	var next int
	err := r.db.QueryRowContext(ctx,
		`UPDATE order_sequences SET next_order = next_order + 1 WHERE id = 1
		RETURNING next_order - 1`).Scan(&next)
	if err != nil {
		return 0, fmt.Errorf("allocating next order number: %w", err)
	}
	return next, nil
}
