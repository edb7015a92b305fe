package domain

import "time"

// CartLine is one (item, quantity) pair of a checkout request.
type CartLine struct {
	ItemID   int64 `json:"itemId"`
	Quantity int   `json:"quantity"`
}

type Order struct {
	ID        string      `json:"id"`
	UserID    int64       `json:"user_id"`
	CreatedAt time.Time   `json:"created_at"`
	Lines     []OrderLine `json:"lines"`
}

// OrderLine captures the unit price at time of purchase; it is never re-read
// from the catalog afterwards.
type OrderLine struct {
	ID        int64   `json:"id"`
	OrderID   string  `json:"order_id"`
	ItemID    int64   `json:"item_id"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}
