package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rl1809/grocery-shop/internal/core/domain"
)

// Mock OrderRepository backed by an in-memory inventory map. PlaceOrder
// mirrors the transactional semantics of the MySQL adapter: all lines are
// validated and applied under one lock, or nothing changes.
type mockOrderRepo struct {
	mu        sync.Mutex
	inventory map[int64]int
	prices    map[int64]float64
	orders    []domain.Order
	failWith  error
}

func newMockOrderRepo() *mockOrderRepo {
	return &mockOrderRepo{
		inventory: make(map[int64]int),
		prices:    make(map[int64]float64),
	}
}

func (m *mockOrderRepo) PlaceOrder(ctx context.Context, order *domain.Order, lines []domain.CartLine) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failWith != nil {
		return m.failWith
	}

	for _, line := range lines {
		available, ok := m.inventory[line.ItemID]
		if !ok {
			return &domain.ItemNotFoundError{ItemID: line.ItemID}
		}
		if available < line.Quantity {
			return &domain.InsufficientInventoryError{
				ItemID:    line.ItemID,
				Requested: line.Quantity,
				Available: available,
			}
		}
	}

	for _, line := range lines {
		m.inventory[line.ItemID] -= line.Quantity
		order.Lines = append(order.Lines, domain.OrderLine{
			OrderID:   order.ID,
			ItemID:    line.ItemID,
			Quantity:  line.Quantity,
			UnitPrice: m.prices[line.ItemID],
		})
	}
	m.orders = append(m.orders, *order)
	return nil
}

func (m *mockOrderRepo) ListOrdersByUser(ctx context.Context, userID int64) ([]domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []domain.Order
	for _, o := range m.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

type mockCacheRepo struct {
	mu   sync.Mutex
	keys map[string]bool
}

func newMockCacheRepo() *mockCacheRepo {
	return &mockCacheRepo{keys: make(map[string]bool)}
}

func (m *mockCacheRepo) SetIdempotency(ctx context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.keys[key] {
		return false, nil
	}
	m.keys[key] = true
	return true, nil
}

func (m *mockCacheRepo) ReleaseIdempotency(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.keys, key)
	return nil
}

func newTestOrderService(repo *mockOrderRepo) *OrderService {
	return NewOrderService(repo, newMockCacheRepo(), zap.NewNop())
}

func TestPlaceOrder_Success(t *testing.T) {
	repo := newMockOrderRepo()
	repo.inventory[1] = 10
	repo.prices[1] = 2.50
	svc := newTestOrderService(repo)

	order, err := svc.PlaceOrder(context.Background(), 7, "", []domain.CartLine{{ItemID: 1, Quantity: 2}})
	require.NoError(t, err)
	require.NotEmpty(t, order.ID)
	require.Len(t, order.Lines, 1)
	require.Equal(t, int64(1), order.Lines[0].ItemID)
	require.Equal(t, 2, order.Lines[0].Quantity)
	require.Equal(t, 2.50, order.Lines[0].UnitPrice)
	require.Equal(t, 8, repo.inventory[1])
}

func TestPlaceOrder_EmptyCart(t *testing.T) {
	svc := newTestOrderService(newMockOrderRepo())

	_, err := svc.PlaceOrder(context.Background(), 7, "", nil)
	require.ErrorIs(t, err, ErrEmptyCart)
}

func TestPlaceOrder_InvalidQuantity(t *testing.T) {
	repo := newMockOrderRepo()
	repo.inventory[1] = 10
	svc := newTestOrderService(repo)

	_, err := svc.PlaceOrder(context.Background(), 7, "", []domain.CartLine{{ItemID: 1, Quantity: 0}})
	require.ErrorIs(t, err, ErrInvalidQuantity)
	require.Equal(t, 10, repo.inventory[1])
}

func TestPlaceOrder_ItemNotFound(t *testing.T) {
	repo := newMockOrderRepo()
	repo.inventory[1] = 10
	svc := newTestOrderService(repo)

	_, err := svc.PlaceOrder(context.Background(), 7, "", []domain.CartLine{
		{ItemID: 1, Quantity: 1},
		{ItemID: 99, Quantity: 1},
	})

	var notFound *domain.ItemNotFoundError
	require.ErrorAs(t, err, &notFound)
	require.Equal(t, int64(99), notFound.ItemID)
	// nothing persisted
	require.Equal(t, 10, repo.inventory[1])
	require.Empty(t, repo.orders)
}

func TestPlaceOrder_InsufficientInventory(t *testing.T) {
	repo := newMockOrderRepo()
	repo.inventory[1] = 10
	svc := newTestOrderService(repo)

	_, err := svc.PlaceOrder(context.Background(), 7, "", []domain.CartLine{{ItemID: 1, Quantity: 11}})

	var insufficient *domain.InsufficientInventoryError
	require.ErrorAs(t, err, &insufficient)
	require.Equal(t, int64(1), insufficient.ItemID)
	require.Equal(t, 11, insufficient.Requested)
	require.Equal(t, 10, insufficient.Available)
	require.Equal(t, 1, insufficient.Shortfall())
	require.Equal(t, 10, repo.inventory[1])
	require.Empty(t, repo.orders)
}

func TestPlaceOrder_FailureIsRepeatable(t *testing.T) {
	repo := newMockOrderRepo()
	repo.inventory[1] = 10
	svc := newTestOrderService(repo)

	for i := 0; i < 2; i++ {
		_, err := svc.PlaceOrder(context.Background(), 7, "", []domain.CartLine{{ItemID: 1, Quantity: 11}})

		var insufficient *domain.InsufficientInventoryError
		require.ErrorAs(t, err, &insufficient)
		require.Equal(t, 10, repo.inventory[1])
	}
}

func TestPlaceOrder_DuplicateRequest(t *testing.T) {
	repo := newMockOrderRepo()
	repo.inventory[1] = 10
	svc := newTestOrderService(repo)

	lines := []domain.CartLine{{ItemID: 1, Quantity: 1}}

	_, err := svc.PlaceOrder(context.Background(), 7, "req-1", lines)
	require.NoError(t, err)

	_, err = svc.PlaceOrder(context.Background(), 7, "req-1", lines)
	require.ErrorIs(t, err, ErrDuplicateRequest)

	// stock decremented exactly once
	require.Equal(t, 9, repo.inventory[1])
}

func TestPlaceOrder_FailureReleasesIdempotencyKey(t *testing.T) {
	repo := newMockOrderRepo()
	repo.inventory[1] = 10
	repo.failWith = errors.New("connection reset")
	svc := newTestOrderService(repo)

	lines := []domain.CartLine{{ItemID: 1, Quantity: 1}}

	_, err := svc.PlaceOrder(context.Background(), 7, "req-1", lines)
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrDuplicateRequest)

	// same request id must be retryable after the store failure
	repo.failWith = nil
	_, err = svc.PlaceOrder(context.Background(), 7, "req-1", lines)
	require.NoError(t, err)
	require.Equal(t, 9, repo.inventory[1])
}

func TestPlaceOrder_ConcurrentOverdraw(t *testing.T) {
	repo := newMockOrderRepo()
	repo.inventory[1] = 5
	svc := newTestOrderService(repo)

	var successCount atomic.Int32
	var insufficientCount atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.PlaceOrder(context.Background(), 7, "", []domain.CartLine{{ItemID: 1, Quantity: 3}})
			if err == nil {
				successCount.Add(1)
				return
			}
			var insufficient *domain.InsufficientInventoryError
			if errors.As(err, &insufficient) {
				insufficientCount.Add(1)
			}
		}()
	}
	wg.Wait()

	require.Equal(t, int32(1), successCount.Load())
	require.Equal(t, int32(1), insufficientCount.Load())
	require.Equal(t, 2, repo.inventory[1])
}

func TestPlaceOrder_ConcurrentDepletion(t *testing.T) {
	initialStock := 20
	totalRequests := 50

	repo := newMockOrderRepo()
	repo.inventory[1] = initialStock
	svc := newTestOrderService(repo)

	var successCount atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < totalRequests; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.PlaceOrder(context.Background(), 7, "", []domain.CartLine{{ItemID: 1, Quantity: 1}})
			if err == nil {
				successCount.Add(1)
			}
		}()
	}
	wg.Wait()

	require.Equal(t, int32(initialStock), successCount.Load())
	require.Equal(t, 0, repo.inventory[1])
}
