package domain

import "time"

type GroceryItem struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	Inventory int       `json:"inventory"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CanFulfill reports whether the item has enough stock for the requested quantity.
func (g *GroceryItem) CanFulfill(quantity int) bool {
	return g.Inventory >= quantity
}
