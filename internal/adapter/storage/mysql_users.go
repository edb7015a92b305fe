package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rl1809/grocery-shop/internal/core/domain"
)

type MySQLUserRepository struct {
	db *sql.DB
}

func NewMySQLUserRepository(db *sql.DB) *MySQLUserRepository {
	return &MySQLUserRepository{db: db}
}

func (m *MySQLUserRepository) CreateUser(ctx context.Context, user *domain.User) (int64, error) {
	res, err := m.db.ExecContext(ctx, `
		INSERT INTO users (name, email, password, role) VALUES (?, ?, ?, ?)`,
		user.Name, user.Email, user.PasswordHash, user.Role,
	)
	if err != nil {
		return 0, fmt.Errorf("insert user: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("user id: %w", err)
	}
	user.ID = id
	return id, nil
}

func (m *MySQLUserRepository) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	return m.getUser(ctx, `
		SELECT id, name, email, password, role, created_at
		FROM users WHERE id = ?`, id)
}

func (m *MySQLUserRepository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return m.getUser(ctx, `
		SELECT id, name, email, password, role, created_at
		FROM users WHERE email = ?`, email)
}

func (m *MySQLUserRepository) getUser(ctx context.Context, query string, arg interface{}) (*domain.User, error) {
	var u domain.User
	err := m.db.QueryRowContext(ctx, query, arg).
		Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query user: %w", err)
	}
	return &u, nil
}

func (m *MySQLUserRepository) ListUsers(ctx context.Context) ([]domain.User, error) {
	rows, err := m.db.QueryContext(ctx, `
		SELECT id, name, email, password, role, created_at FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
