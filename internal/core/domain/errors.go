package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by repositories when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// ItemNotFoundError aborts an order placement referencing a nonexistent
// grocery item.
type ItemNotFoundError struct {
	ItemID int64
}

func (e *ItemNotFoundError) Error() string {
	return fmt.Sprintf("item %d not found", e.ItemID)
}

// InsufficientInventoryError aborts an order placement that would overdraw
// stock for an item.
type InsufficientInventoryError struct {
	ItemID    int64
	Requested int
	Available int
}

func (e *InsufficientInventoryError) Error() string {
	return fmt.Sprintf("insufficient inventory for item %d: requested %d, available %d",
		e.ItemID, e.Requested, e.Available)
}

// Shortfall is how many units the request exceeds current stock by.
func (e *InsufficientInventoryError) Shortfall() int {
	return e.Requested - e.Available
}
