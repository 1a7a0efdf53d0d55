package repository

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Bjornanger/webshop/internal/domain/order"
)

const (
	listOrdersSQL = `SELECT id, customer_id, quantity, total, created_at FROM orders ORDER BY id`

	getOrderByIDSQL = `SELECT id, customer_id, quantity, total, created_at FROM orders WHERE id = $1`

	createOrderSQL = `INSERT INTO orders (customer_id, quantity, total)
		VALUES ($1, $2, $3) RETURNING id, created_at`

	updateOrderSQL = `UPDATE orders SET customer_id = $2, quantity = $3, total = $4 WHERE id = $1`

	insertLineSQL = `INSERT INTO order_lines (order_id, product_id, quantity, unit_price)
		VALUES ($1, $2, $3, $4)`

	deleteLinesSQL = `DELETE FROM order_lines WHERE order_id = $1`

	linesByOrderSQL = `SELECT order_id, product_id, quantity, unit_price
		FROM order_lines WHERE order_id = ANY($1) ORDER BY order_id, product_id`

	deleteOrderSQL = `DELETE FROM orders WHERE id = $1`
)

var _ order.Repository = (*OrderRepository)(nil)

// OrderRepository implements order.Repository backed by PostgreSQL. The
// aggregate is the transactional unit: order row and line rows are always
// committed together in one transaction.
type OrderRepository struct {
	pool *pgxpool.Pool
}

// NewOrderRepository returns an OrderRepository that uses the given pool.
func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

// Create persists a new order aggregate in a single transaction and fills in
// the generated id and creation time.
func (r *OrderRepository) Create(ctx context.Context, o *order.Order) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, createOrderSQL, o.CustomerID, o.Quantity, o.Total).
		Scan(&o.ID, &o.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating order: %w", err)
	}

	if err := insertLines(ctx, tx, o); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing order %d: %w", o.ID, err)
	}
	return nil
}

// Update replaces the whole aggregate: the order row is updated and the line
// set is rewritten, all in one transaction.
func (r *OrderRepository) Update(ctx context.Context, o *order.Order) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, updateOrderSQL, o.ID, o.CustomerID, o.Quantity, o.Total)
	if err != nil {
		return fmt.Errorf("updating order %d: %w", o.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return order.ErrNotFound
	}

	if _, err := tx.Exec(ctx, deleteLinesSQL, o.ID); err != nil {
		return fmt.Errorf("clearing lines of order %d: %w", o.ID, err)
	}
	if err := insertLines(ctx, tx, o); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing order %d: %w", o.ID, err)
	}
	return nil
}

// GetByID returns a single order aggregate with its lines.
func (r *OrderRepository) GetByID(ctx context.Context, id int64) (*order.Order, error) {
	rows, err := r.pool.Query(ctx, getOrderByIDSQL, id)
	if err != nil {
		return nil, fmt.Errorf("getting order %d: %w", id, err)
	}

	o, err := pgx.CollectExactlyOneRow(rows, scanOrder)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, order.ErrNotFound
		}
		return nil, fmt.Errorf("getting order %d: %w", id, err)
	}

	lines, err := r.linesFor(ctx, []int64{id})
	if err != nil {
		return nil, err
	}
	o.Lines = lines[id]
	return &o, nil
}

// List returns all orders with their lines, ordered by ID.
func (r *OrderRepository) List(ctx context.Context) ([]order.Order, error) {
	rows, err := r.pool.Query(ctx, listOrdersSQL)
	if err != nil {
		return nil, fmt.Errorf("listing orders: %w", err)
	}

	orders, err := pgx.CollectRows(rows, scanOrder)
	if err != nil {
		return nil, fmt.Errorf("listing orders: %w", err)
	}
	if len(orders) == 0 {
		return orders, nil
	}

	ids := make([]int64, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
	}

	lines, err := r.linesFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		orders[i].Lines = lines[orders[i].ID]
	}
	return orders, nil
}

// Delete removes an order; its lines go with it via ON DELETE CASCADE.
func (r *OrderRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, deleteOrderSQL, id)
	if err != nil {
		return fmt.Errorf("deleting order %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return order.ErrNotFound
	}
	return nil
}

func insertLines(ctx context.Context, tx pgx.Tx, o *order.Order) error {
	for _, l := range o.Lines {
		if _, err := tx.Exec(ctx, insertLineSQL, o.ID, l.ProductID, l.Quantity, l.UnitPrice); err != nil {
			return fmt.Errorf("inserting line (order %d, product %d): %w", o.ID, l.ProductID, err)
		}
	}
	return nil
}

// linesFor loads lines for the given order ids, keyed by order id.
func (r *OrderRepository) linesFor(ctx context.Context, ids []int64) (map[int64][]order.Line, error) {
	rows, err := r.pool.Query(ctx, linesByOrderSQL, ids)
	if err != nil {
		return nil, fmt.Errorf("loading order lines: %w", err)
	}
	defer rows.Close()

	lines := make(map[int64][]order.Line)
	for rows.Next() {
		var (
			orderID int64
			l       order.Line
		)
		if err := rows.Scan(&orderID, &l.ProductID, &l.Quantity, &l.UnitPrice); err != nil {
			return nil, fmt.Errorf("scanning order line: %w", err)
		}
		lines[orderID] = append(lines[orderID], l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("loading order lines: %w", err)
	}
	return lines, nil
}

func scanOrder(row pgx.CollectableRow) (order.Order, error) {
	var o order.Order
	err := row.Scan(&o.ID, &o.CustomerID, &o.Quantity, &o.Total, &o.CreatedAt)
	return o, err
}
