package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/farmaplus/pharmacy-api/internal/core/domain"
	"github.com/farmaplus/pharmacy-api/internal/core/ports"
)

// ProductService implements inventory CRUD. Restocking and corrections go
// through here; sale decrements never do.
type ProductService struct {
	repo   ports.ProductRepository
	logger zerolog.Logger
}

func NewProductService(repo ports.ProductRepository, logger zerolog.Logger) *ProductService {
	return &ProductService{repo: repo, logger: logger}
}

func (s *ProductService) List(ctx context.Context) ([]ports.ProductView, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]ports.ProductView, 0, len(products))
	for _, p := range products {
		views = append(views, ports.ProductView{Product: p, LowStock: p.LowStock()})
	}
	return views, nil
}

func (s *ProductService) Create(ctx context.Context, input ports.ProductInput) (*ports.ProductView, error) {
	created, err := s.repo.Create(ctx, &domain.Product{
		Name:     input.Name,
		Quantity: input.Quantity,
		Price:    input.Price,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("product_id", created.ID).Str("name", created.Name).Msg("product created")
	return &ports.ProductView{Product: *created, LowStock: created.LowStock()}, nil
}

func (s *ProductService) Update(ctx context.Context, id int64, input ports.ProductInput) (*ports.ProductView, error) {
	updated, err := s.repo.Update(ctx, &domain.Product{
		ID:       id,
		Name:     input.Name,
		Quantity: input.Quantity,
		Price:    input.Price,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("product_id", id).Msg("product updated")
	return &ports.ProductView{Product: *updated, LowStock: updated.LowStock()}, nil
}

func (s *ProductService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("product_id", id).Msg("product deleted")
	return nil
}
