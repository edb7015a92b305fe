package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rl1809/grocery-shop/internal/core/domain"
)

type MySQLProductRepository struct {
	db *sql.DB
}

func NewMySQLProductRepository(db *sql.DB) *MySQLProductRepository {
	return &MySQLProductRepository{db: db}
}

func (m *MySQLProductRepository) CreateProduct(ctx context.Context, product *domain.Product) (int64, error) {
	res, err := m.db.ExecContext(ctx, `
		INSERT INTO products (name, description, price, image_url, created_by)
		VALUES (?, ?, ?, ?, ?)`,
		product.Name, product.Description, product.Price, product.ImageURL, product.CreatedBy,
	)
	if err != nil {
		return 0, fmt.Errorf("insert product: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("product id: %w", err)
	}
	product.ID = id
	return id, nil
}

func (m *MySQLProductRepository) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	var p domain.Product
	err := m.db.QueryRowContext(ctx, `
		SELECT id, name, description, price, image_url, created_by, created_at
		FROM products WHERE id = ?`, id,
	).Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.ImageURL, &p.CreatedBy, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query product: %w", err)
	}
	return &p, nil
}

func (m *MySQLProductRepository) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return m.listProducts(ctx, `
		SELECT id, name, description, price, image_url, created_by, created_at
		FROM products ORDER BY id`)
}

func (m *MySQLProductRepository) ListProductsByAdmin(ctx context.Context, adminID int64) ([]domain.Product, error) {
	return m.listProducts(ctx, `
		SELECT id, name, description, price, image_url, created_by, created_at
		FROM products WHERE created_by = ? ORDER BY id`, adminID)
}

func (m *MySQLProductRepository) listProducts(ctx context.Context, query string, args ...interface{}) ([]domain.Product, error) {
	rows, err := m.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.ImageURL, &p.CreatedBy, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (m *MySQLProductRepository) UpdateProduct(ctx context.Context, product *domain.Product) error {
	res, err := m.db.ExecContext(ctx, `
		UPDATE products SET name = ?, description = ?, price = ?, image_url = ?
		WHERE id = ?`,
		product.Name, product.Description, product.Price, product.ImageURL, product.ID,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (m *MySQLProductRepository) DeleteProduct(ctx context.Context, id int64) error {
	res, err := m.db.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
