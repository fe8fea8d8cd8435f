package ports

import (
	"context"

	"github.com/farmaplus/pharmacy-api/internal/core/domain"
)

// ProductRepository defines plain CRUD persistence for products. Stock
// decrements for sales never go through here; they belong to SaleRepository
// where the row lock lives.
type ProductRepository interface {
	List(ctx context.Context) ([]domain.Product, error)
	FindByID(ctx context.Context, id int64) (*domain.Product, error)
	Create(ctx context.Context, product *domain.Product) (*domain.Product, error)
	Update(ctx context.Context, product *domain.Product) (*domain.Product, error)
	Delete(ctx context.Context, id int64) error
}
