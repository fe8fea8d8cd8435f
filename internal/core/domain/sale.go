package domain

import "time"

// Sale is an append-only record of a committed stock decrement. A Sale row
// exists if and only if the matching product decrement was committed in the
// same transaction.
type Sale struct {
	ID        int64     `json:"id"`
	ProductID int64     `json:"productId"`
	Quantity  int       `json:"quantity"`
	SaleDate  time.Time `json:"timestamp"`

	// Denormalized product fields carried for display; populated from the
	// product row at sale time or by the listing join.
	ProductName string  `json:"productName"`
	UnitPrice   float64 `json:"unitPrice"`
}
