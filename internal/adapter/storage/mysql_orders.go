package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rl1809/grocery-shop/internal/core/domain"
)

type MySQLOrderRepository struct {
	db *sql.DB
}

func NewMySQLOrderRepository(db *sql.DB) *MySQLOrderRepository {
	return &MySQLOrderRepository{db: db}
}

// PlaceOrder validates and persists a checkout as a single transaction.
// Each referenced grocery_items row is read FOR UPDATE so that concurrent
// checkouts of the same item serialize on the row lock; the decrement is
// additionally guarded by `inventory >= ?` with an affected-row check, so
// inventory can never go negative.
func (m *MySQLOrderRepository) PlaceOrder(ctx context.Context, order *domain.Order, lines []domain.CartLine) error {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	// Validate every line under row locks before writing anything, so error
	// messages name the first offending item in submission order.
	prices := make([]float64, len(lines))
	for i, line := range lines {
		var price float64
		var inventory int
		err := tx.QueryRowContext(ctx, `
			SELECT price, inventory FROM grocery_items WHERE id = ? FOR UPDATE`,
			line.ItemID,
		).Scan(&price, &inventory)
		if errors.Is(err, sql.ErrNoRows) {
			return &domain.ItemNotFoundError{ItemID: line.ItemID}
		}
		if err != nil {
			return fmt.Errorf("lock item %d: %w", line.ItemID, err)
		}
		if inventory < line.Quantity {
			return &domain.InsufficientInventoryError{
				ItemID:    line.ItemID,
				Requested: line.Quantity,
				Available: inventory,
			}
		}
		prices[i] = price
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO orders (id, user_id, created_at) VALUES (?, ?, ?)`,
		order.ID, order.UserID, order.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	order.Lines = make([]domain.OrderLine, 0, len(lines))
	for i, line := range lines {
		res, err := tx.ExecContext(ctx, `
			INSERT INTO order_items (order_id, item_id, quantity, price)
			VALUES (?, ?, ?, ?)`,
			order.ID, line.ItemID, line.Quantity, prices[i],
		)
		if err != nil {
			return fmt.Errorf("insert order line for item %d: %w", line.ItemID, err)
		}
		lineID, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("order line id for item %d: %w", line.ItemID, err)
		}

		res, err = tx.ExecContext(ctx, `
			UPDATE grocery_items
			SET inventory = inventory - ?, updated_at = NOW()
			WHERE id = ? AND inventory >= ?`,
			line.Quantity, line.ItemID, line.Quantity,
		)
		if err != nil {
			return fmt.Errorf("decrement inventory for item %d: %w", line.ItemID, err)
		}
		rows, _ := res.RowsAffected()
		if rows == 0 {
			// Unreachable while the FOR UPDATE lock is held, kept as the
			// final guard against oversell.
			return &domain.InsufficientInventoryError{
				ItemID:    line.ItemID,
				Requested: line.Quantity,
			}
		}

		order.Lines = append(order.Lines, domain.OrderLine{
			ID:        lineID,
			OrderID:   order.ID,
			ItemID:    line.ItemID,
			Quantity:  line.Quantity,
			UnitPrice: prices[i],
		})
	}

	if err := tx.Commit(); err != nil {
		order.Lines = nil
		return fmt.Errorf("commit order: %w", err)
	}
	return nil
}

func (m *MySQLOrderRepository) ListOrdersByUser(ctx context.Context, userID int64) ([]domain.Order, error) {
	rows, err := m.db.QueryContext(ctx, `
		SELECT id, user_id, created_at FROM orders
		WHERE user_id = ? ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate orders: %w", err)
	}

	for i := range orders {
		lines, err := m.listLines(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Lines = lines
	}
	return orders, nil
}

func (m *MySQLOrderRepository) listLines(ctx context.Context, orderID string) ([]domain.OrderLine, error) {
	rows, err := m.db.QueryContext(ctx, `
		SELECT id, order_id, item_id, quantity, price FROM order_items
		WHERE order_id = ? ORDER BY id`, orderID)
	if err != nil {
		return nil, fmt.Errorf("query order lines: %w", err)
	}
	defer rows.Close()

	var lines []domain.OrderLine
	for rows.Next() {
		var l domain.OrderLine
		if err := rows.Scan(&l.ID, &l.OrderID, &l.ItemID, &l.Quantity, &l.UnitPrice); err != nil {
			return nil, fmt.Errorf("scan order line: %w", err)
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}
