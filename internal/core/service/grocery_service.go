package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/rl1809/grocery-shop/internal/core/domain"
	"github.com/rl1809/grocery-shop/internal/port"
)

var (
	ErrInvalidPrice     = errors.New("price must be positive")
	ErrInvalidInventory = errors.New("inventory must be non-negative")
)

type GroceryService struct {
	items  port.GroceryRepository
	logger *zap.Logger
}

func NewGroceryService(items port.GroceryRepository, logger *zap.Logger) *GroceryService {
	return &GroceryService{items: items, logger: logger}
}

func (s *GroceryService) Create(ctx context.Context, name string, price float64, inventory int) (*domain.GroceryItem, error) {
	if price <= 0 {
		return nil, ErrInvalidPrice
	}
	if inventory < 0 {
		return nil, ErrInvalidInventory
	}

	item := &domain.GroceryItem{Name: name, Price: price, Inventory: inventory}
	if _, err := s.items.CreateItem(ctx, item); err != nil {
		s.logger.Error("failed to create grocery item", zap.Error(err))
		return nil, fmt.Errorf("create grocery item: %w", err)
	}
	return item, nil
}

func (s *GroceryService) Get(ctx context.Context, id int64) (*domain.GroceryItem, error) {
	return s.items.GetItem(ctx, id)
}

func (s *GroceryService) List(ctx context.Context) ([]domain.GroceryItem, error) {
	return s.items.ListItems(ctx)
}

func (s *GroceryService) Update(ctx context.Context, id int64, name string, price float64) error {
	if price <= 0 {
		return ErrInvalidPrice
	}
	return s.items.UpdateItem(ctx, id, name, price)
}

// SetInventory replaces the on-hand quantity. This is the management path;
// order placement never goes through here.
func (s *GroceryService) SetInventory(ctx context.Context, id int64, inventory int) error {
	if inventory < 0 {
		return ErrInvalidInventory
	}
	return s.items.SetInventory(ctx, id, inventory)
}

func (s *GroceryService) Delete(ctx context.Context, id int64) error {
	return s.items.DeleteItem(ctx, id)
}
