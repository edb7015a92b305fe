package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rl1809/grocery-shop/internal/core/domain"
	"github.com/rl1809/grocery-shop/internal/port"
)

var (
	ErrEmptyCart        = errors.New("cart must contain at least one item")
	ErrInvalidQuantity  = errors.New("quantity must be a positive integer")
	ErrDuplicateRequest = errors.New("duplicate request")
)

// OrderService places orders: it validates the cart, guards against duplicate
// submissions, and delegates the transactional write to the order repository.
// All inventory mutation happens inside that single transaction; a failed
// attempt leaves no order, no lines, and no decrement behind.
type OrderService struct {
	orders port.OrderRepository
	cache  port.CacheRepository
	logger *zap.Logger
}

func NewOrderService(orders port.OrderRepository, cache port.CacheRepository, logger *zap.Logger) *OrderService {
	return &OrderService{orders: orders, cache: cache, logger: logger}
}

// PlaceOrder creates an order for userID from the given cart lines. requestID
// is optional; when present it is used as an idempotency key so that a client
// retransmit cannot place the order twice.
func (s *OrderService) PlaceOrder(ctx context.Context, userID int64, requestID string, lines []domain.CartLine) (*domain.Order, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}
	for _, line := range lines {
		if line.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}
	}

	idempotencyKey := ""
	if requestID != "" {
		idempotencyKey = fmt.Sprintf("checkout:%d:%s", userID, requestID)

		ok, err := s.cache.SetIdempotency(ctx, idempotencyKey)
		if err != nil {
			return nil, fmt.Errorf("idempotency check failed: %w", err)
		}
		if !ok {
			return nil, ErrDuplicateRequest
		}
	}

	order := &domain.Order{
		ID:        uuid.NewString(),
		UserID:    userID,
		CreatedAt: time.Now(),
	}

	if err := s.orders.PlaceOrder(ctx, order, lines); err != nil {
		// Release the key so a corrected resubmission is not mistaken for a
		// duplicate; a retry against unchanged stock fails the same way again.
		if idempotencyKey != "" {
			if relErr := s.cache.ReleaseIdempotency(ctx, idempotencyKey); relErr != nil {
				s.logger.Error("failed to release idempotency key",
					zap.String("key", idempotencyKey), zap.Error(relErr))
			}
		}

		var notFound *domain.ItemNotFoundError
		var insufficient *domain.InsufficientInventoryError
		if errors.As(err, &notFound) || errors.As(err, &insufficient) {
			return nil, err
		}

		s.logger.Error("order placement failed",
			zap.Int64("user_id", userID), zap.Error(err))
		return nil, fmt.Errorf("place order: %w", err)
	}

	s.logger.Info("order placed",
		zap.String("order_id", order.ID),
		zap.Int64("user_id", userID),
		zap.Int("line_count", len(order.Lines)))

	return order, nil
}

func (s *OrderService) OrdersByUser(ctx context.Context, userID int64) ([]domain.Order, error) {
	orders, err := s.orders.ListOrdersByUser(ctx, userID)
	if err != nil {
		s.logger.Error("failed to list orders", zap.Int64("user_id", userID), zap.Error(err))
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}
