package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/bakeryops/ovenplan/internal/contract"
	"github.com/bakeryops/ovenplan/internal/db"
	"github.com/bakeryops/ovenplan/internal/domain"
)

const orderColumns = `order_key, product_id, quantity, state,
		requested_start, deadline, created_at, updated_at`

// SQLiteOrderRepo implements OrderRepo on SQLite.
type SQLiteOrderRepo struct {
	db db.DBTX
}

// NewSQLiteOrderRepo creates a new SQLiteOrderRepo.
func NewSQLiteOrderRepo(conn db.DBTX) *SQLiteOrderRepo {
	return &SQLiteOrderRepo{db: conn}
}

func (r *SQLiteOrderRepo) Create(ctx context.Context, o *domain.ProductionOrder) error {
	query := `INSERT INTO production_orders (` + orderColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		o.OrderKey,
		o.ProductID,
		o.Quantity,
		string(o.State),
		o.RequestedStart.Format(time.RFC3339),
		nullableTimeToString(o.Deadline, time.RFC3339),
		o.CreatedAt.Format(time.RFC3339),
		o.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting production order: %w", err)
	}
	return nil
}

func (r *SQLiteOrderRepo) GetByKey(ctx context.Context, key string) (*domain.ProductionOrder, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+orderColumns+` FROM production_orders WHERE order_key = ?`, key)
	o, err := r.scanOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", contract.ErrOrderNotFound, key)
	}
	return o, err
}

func (r *SQLiteOrderRepo) List(ctx context.Context) ([]*domain.ProductionOrder, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+orderColumns+` FROM production_orders ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing production orders: %w", err)
	}
	defer rows.Close()

	var out []*domain.ProductionOrder
	for rows.Next() {
		o, err := r.scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (r *SQLiteOrderRepo) UpdateState(ctx context.Context, key string, state domain.CascadeState) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE production_orders SET state = ?, updated_at = ? WHERE order_key = ?`,
		string(state), nowUTC(), key)
	if err != nil {
		return fmt.Errorf("updating order state: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking order state update: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", contract.ErrOrderNotFound, key)
	}
	return nil
}

func (r *SQLiteOrderRepo) Delete(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx,
		`DELETE FROM production_orders WHERE order_key = ?`, key); err != nil {
		return fmt.Errorf("deleting production order: %w", err)
	}
	return nil
}

func (r *SQLiteOrderRepo) scanOrder(row rowScanner) (*domain.ProductionOrder, error) {
	var o domain.ProductionOrder
	var state, requestedStart, createdAt, updatedAt string
	var deadline sql.NullString
	err := row.Scan(
		&o.OrderKey,
		&o.ProductID,
		&o.Quantity,
		&state,
		&requestedStart,
		&deadline,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning production order: %w", err)
	}
	o.State = domain.CascadeState(state)
	o.RequestedStart, _ = time.Parse(time.RFC3339, requestedStart)
	o.Deadline = parseNullableTime(deadline, time.RFC3339)
	o.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	o.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return &o, nil
}
