package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/farmaplus/pharmacy-api/internal/core/domain"
	"github.com/farmaplus/pharmacy-api/internal/core/ports"
)

// SaleService executes sales through the transactional repository and exposes
// the read-only sales listing.
type SaleService struct {
	repo   ports.SaleRepository
	logger zerolog.Logger
}

func NewSaleService(repo ports.SaleRepository, logger zerolog.Logger) *SaleService {
	return &SaleService{repo: repo, logger: logger}
}

// RecordSale validates the request, then runs the atomic stock-check-and-
// decrement. Validation failures never touch storage. No retry is attempted on
// any failure; resubmitting the same request records a second sale.
func (s *SaleService) RecordSale(ctx context.Context, input ports.RecordSaleInput) (*ports.SaleResult, error) {
	if input.ProductID <= 0 || input.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}

	res, err := s.repo.RecordSale(ctx, input.ProductID, input.Quantity)
	if err != nil {
		if ise, ok := domain.IsInsufficientStock(err); ok {
			s.logger.Info().
				Int64("product_id", input.ProductID).
				Int("requested", input.Quantity).
				Int("available", ise.Available).
				Msg("sale rejected: insufficient stock")
		}
		return nil, err
	}

	lowStock := res.RemainingStock <= domain.LowStockThreshold
	s.logger.Info().
		Int64("sale_id", res.Sale.ID).
		Int64("product_id", input.ProductID).
		Int("quantity", input.Quantity).
		Int("remaining", res.RemainingStock).
		Bool("low_stock", lowStock).
		Msg("sale recorded")

	return &ports.SaleResult{
		Sale:           res.Sale,
		RemainingStock: res.RemainingStock,
		LowStock:       lowStock,
	}, nil
}

// ListSales returns all committed sales joined with product name and price.
func (s *SaleService) ListSales(ctx context.Context) ([]domain.Sale, error) {
	return s.repo.ListSales(ctx)
}
