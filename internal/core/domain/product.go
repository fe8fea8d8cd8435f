package domain

import "time"

// LowStockThreshold is the stock level at or below which a product is flagged
// for operator attention. Shared by the sale response and inventory listings.
const LowStockThreshold = 10

// Product is the single source of truth for availability. Quantity is only
// mutated through the sale transactor (sales) or inventory CRUD (restocking).
type Product struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Quantity  int       `json:"quantity"`
	Price     float64   `json:"price"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LowStock reports whether the product's current quantity is at or below the
// low-stock threshold.
func (p Product) LowStock() bool {
	return p.Quantity <= LowStockThreshold
}
