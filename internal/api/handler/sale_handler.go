package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/farmaplus/pharmacy-api/internal/api/metrics"
	"github.com/farmaplus/pharmacy-api/internal/core/domain"
	"github.com/farmaplus/pharmacy-api/internal/core/ports"
)

// SaleHandler handles sale recording and listing.
type SaleHandler struct {
	service ports.SaleService
}

func NewSaleHandler(service ports.SaleService) *SaleHandler {
	return &SaleHandler{service: service}
}

// Record handles POST /sales — the transactional sale.
//
// @Summary      Record a sale
// @Tags         sales
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      recordSaleRequest  true  "Product and quantity"
// @Success      201   {object}  recordSaleResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /sales [post]
func (h *SaleHandler) Record(c echo.Context) error {
	var req recordSaleRequest
	if err := c.Bind(&req); err != nil {
		metrics.SalesFailedTotal.WithLabelValues("invalid_request").Inc()
		return echo.NewHTTPError(http.StatusBadRequest, "valid product ID and positive quantity are required")
	}
	if err := c.Validate(&req); err != nil {
		metrics.SalesFailedTotal.WithLabelValues("invalid_request").Inc()
		return echo.NewHTTPError(http.StatusBadRequest, "valid product ID and positive quantity are required")
	}

	start := time.Now()
	result, err := h.service.RecordSale(c.Request().Context(), ports.RecordSaleInput{
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	})
	metrics.SaleProcessingDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidQuantity):
			metrics.SalesFailedTotal.WithLabelValues("invalid_request").Inc()
		case errors.Is(err, domain.ErrProductNotFound):
			metrics.SalesFailedTotal.WithLabelValues("not_found").Inc()
		default:
			if _, ok := domain.IsInsufficientStock(err); ok {
				metrics.SalesFailedTotal.WithLabelValues("insufficient_stock").Inc()
			} else {
				metrics.SalesFailedTotal.WithLabelValues("storage_error").Inc()
			}
		}
		return err
	}

	metrics.SalesRecordedTotal.Inc()
	if result.LowStock {
		metrics.LowStockSalesTotal.Inc()
	}

	return c.JSON(http.StatusCreated, recordSaleResponse{
		Sale:           toSaleView(result.Sale),
		LowStock:       result.LowStock,
		RemainingStock: result.RemainingStock,
	})
}

// List handles GET /sales — read-only listing joined with product data.
//
// @Summary      List sales
// @Tags         sales
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   saleView
// @Failure      401  {object}  map[string]string
// @Router       /sales [get]
func (h *SaleHandler) List(c echo.Context) error {
	sales, err := h.service.ListSales(c.Request().Context())
	if err != nil {
		return err
	}

	views := make([]saleView, 0, len(sales))
	for _, s := range sales {
		views = append(views, toSaleView(s))
	}
	return c.JSON(http.StatusOK, views)
}

func toSaleView(s domain.Sale) saleView {
	return saleView{
		ID:          s.ID,
		ProductID:   s.ProductID,
		Quantity:    s.Quantity,
		Timestamp:   s.SaleDate,
		ProductName: s.ProductName,
		UnitPrice:   s.UnitPrice,
	}
}
