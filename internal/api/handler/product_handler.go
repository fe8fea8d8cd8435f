package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/farmaplus/pharmacy-api/internal/core/ports"
)

// ProductHandler handles inventory CRUD.
type ProductHandler struct {
	service ports.ProductService
}

func NewProductHandler(service ports.ProductService) *ProductHandler {
	return &ProductHandler{service: service}
}

// List handles GET /inventory.
//
// @Summary      List products
// @Tags         inventory
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   productResponse
// @Failure      401  {object}  map[string]string
// @Router       /inventory [get]
func (h *ProductHandler) List(c echo.Context) error {
	views, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}

	resp := make([]productResponse, 0, len(views))
	for _, v := range views {
		resp = append(resp, toProductResponse(v))
	}
	return c.JSON(http.StatusOK, resp)
}

// Create handles POST /inventory.
//
// @Summary      Add a product
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      productRequest  true  "Product details"
// @Success      201   {object}  productResponse
// @Failure      400   {object}  map[string]string
// @Router       /inventory [post]
func (h *ProductHandler) Create(c echo.Context) error {
	req, err := bindProduct(c)
	if err != nil {
		return err
	}

	view, err := h.service.Create(c.Request().Context(), ports.ProductInput{
		Name:     req.Name,
		Quantity: *req.Quantity,
		Price:    *req.Price,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toProductResponse(*view))
}

// Update handles PUT /inventory/:id.
//
// @Summary      Update a product
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int             true  "Product ID"
// @Param        body  body      productRequest  true  "Product details"
// @Success      200   {object}  productResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /inventory/{id} [put]
func (h *ProductHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	req, err := bindProduct(c)
	if err != nil {
		return err
	}

	view, err := h.service.Update(c.Request().Context(), id, ports.ProductInput{
		Name:     req.Name,
		Quantity: *req.Quantity,
		Price:    *req.Price,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProductResponse(*view))
}

// Delete handles DELETE /inventory/:id.
//
// @Summary      Delete a product
// @Tags         inventory
// @Security     BearerAuth
// @Param        id  path  int  true  "Product ID"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /inventory/{id} [delete]
func (h *ProductHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func bindProduct(c echo.Context) (*productRequest, error) {
	var req productRequest
	if err := c.Bind(&req); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return &req, nil
}

// pathID parses the :id path parameter shared by the update/delete routes.
func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}

func toProductResponse(v ports.ProductView) productResponse {
	return productResponse{
		ID:       v.ID,
		Name:     v.Name,
		Quantity: v.Quantity,
		Price:    v.Price,
		LowStock: v.LowStock,
	}
}
