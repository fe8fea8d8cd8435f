package ports

import (
	"context"

	"github.com/farmaplus/pharmacy-api/internal/core/domain"
)

// SaleTxResult is what the transactional sale returns after commit.
type SaleTxResult struct {
	Sale           domain.Sale
	RemainingStock int
}

// SaleRepository owns the atomic unit of work for sales: it reads the product
// row under an exclusive lock, decrements stock, and inserts the sale record,
// committing all of it or nothing. Concurrent sales on the same product
// serialize on the row lock.
type SaleRepository interface {
	// RecordSale executes the locked read-decrement-insert transaction.
	// Fails with domain.ErrProductNotFound or *domain.InsufficientStockError;
	// any other error means the unit of work was rolled back.
	RecordSale(ctx context.Context, productID int64, quantity int) (*SaleTxResult, error)

	// ListSales returns committed sales joined with product name and price.
	// Plain query, no transactional requirement.
	ListSales(ctx context.Context) ([]domain.Sale, error)
}
