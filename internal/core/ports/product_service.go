package ports

import (
	"context"

	"github.com/farmaplus/pharmacy-api/internal/core/domain"
)

// ProductInput carries the fields used for creating or correcting a product.
type ProductInput struct {
	Name     string
	Quantity int
	Price    float64
}

// ProductView is a product together with its low-stock flag, as surfaced in
// inventory listings.
type ProductView struct {
	domain.Product
	LowStock bool
}

// ProductService defines inventory CRUD available to any authenticated role.
type ProductService interface {
	List(ctx context.Context) ([]ProductView, error)
	Create(ctx context.Context, input ProductInput) (*ProductView, error)
	Update(ctx context.Context, id int64, input ProductInput) (*ProductView, error)
	Delete(ctx context.Context, id int64) error
}
