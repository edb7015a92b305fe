package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rl1809/grocery-shop/internal/core/domain"
)

type MySQLGroceryRepository struct {
	db *sql.DB
}

func NewMySQLGroceryRepository(db *sql.DB) *MySQLGroceryRepository {
	return &MySQLGroceryRepository{db: db}
}

func (m *MySQLGroceryRepository) CreateItem(ctx context.Context, item *domain.GroceryItem) (int64, error) {
	res, err := m.db.ExecContext(ctx, `
		INSERT INTO grocery_items (name, price, inventory) VALUES (?, ?, ?)`,
		item.Name, item.Price, item.Inventory,
	)
	if err != nil {
		return 0, fmt.Errorf("insert grocery item: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("grocery item id: %w", err)
	}
	item.ID = id
	return id, nil
}

func (m *MySQLGroceryRepository) GetItem(ctx context.Context, id int64) (*domain.GroceryItem, error) {
	var item domain.GroceryItem
	err := m.db.QueryRowContext(ctx, `
		SELECT id, name, price, inventory, created_at, updated_at
		FROM grocery_items WHERE id = ?`, id,
	).Scan(&item.ID, &item.Name, &item.Price, &item.Inventory, &item.CreatedAt, &item.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query grocery item: %w", err)
	}
	return &item, nil
}

func (m *MySQLGroceryRepository) ListItems(ctx context.Context) ([]domain.GroceryItem, error) {
	rows, err := m.db.QueryContext(ctx, `
		SELECT id, name, price, inventory, created_at, updated_at
		FROM grocery_items ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query grocery items: %w", err)
	}
	defer rows.Close()

	var items []domain.GroceryItem
	for rows.Next() {
		var item domain.GroceryItem
		if err := rows.Scan(&item.ID, &item.Name, &item.Price, &item.Inventory, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan grocery item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (m *MySQLGroceryRepository) UpdateItem(ctx context.Context, id int64, name string, price float64) error {
	res, err := m.db.ExecContext(ctx, `
		UPDATE grocery_items SET name = ?, price = ?, updated_at = NOW() WHERE id = ?`,
		name, price, id,
	)
	if err != nil {
		return fmt.Errorf("update grocery item: %w", err)
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (m *MySQLGroceryRepository) SetInventory(ctx context.Context, id int64, inventory int) error {
	res, err := m.db.ExecContext(ctx, `
		UPDATE grocery_items SET inventory = ?, updated_at = NOW() WHERE id = ?`,
		inventory, id,
	)
	if err != nil {
		return fmt.Errorf("set inventory: %w", err)
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (m *MySQLGroceryRepository) DeleteItem(ctx context.Context, id int64) error {
	res, err := m.db.ExecContext(ctx, `DELETE FROM grocery_items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete grocery item: %w", err)
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
