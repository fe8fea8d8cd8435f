package ports

import (
	"context"

	"github.com/farmaplus/pharmacy-api/internal/core/domain"
)

// RecordSaleInput carries the parameters of a sale request.
type RecordSaleInput struct {
	ProductID int64
	Quantity  int
}

// SaleResult is returned to the caller after a committed sale.
type SaleResult struct {
	Sale           domain.Sale
	RemainingStock int
	LowStock       bool
}

// SaleService defines the sale use cases. RecordSale is deliberately not
// idempotent: resubmitting the same input produces a second independent sale.
type SaleService interface {
	RecordSale(ctx context.Context, input RecordSaleInput) (*SaleResult, error)
	ListSales(ctx context.Context) ([]domain.Sale, error)
}
