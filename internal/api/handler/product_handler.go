package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/myapp/catalog-api/internal/api/metrics"
	"github.com/myapp/catalog-api/internal/core/domain"
	"github.com/myapp/catalog-api/internal/core/ports"
)

// ProductHandler handles HTTP requests for product operations.
type ProductHandler struct {
	service ports.ProductService
}

func NewProductHandler(service ports.ProductService) *ProductHandler {
	return &ProductHandler{service: service}
}

// List handles GET /api/products.
//
// @Summary      List products with their category name, newest first
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  productListResponse
// @Failure      401  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c echo.Context) error {
	products, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, productListResponse{Success: true, Data: products})
}

// Get handles GET /api/products/:id.
//
// @Summary      Get a product
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Product id"
// @Success      200  {object}  productResponse
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	product, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, productResponse{Success: true, Data: product})
}

// Create handles POST /api/products.
//
// @Summary      Create a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      productRequest  true  "Product"
// @Success      201   {object}  productResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c echo.Context) error {
	var req productRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	product, err := h.service.Create(c.Request().Context(), ports.ProductInput{
		Title:       req.Title,
		Description: req.Description,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		return err
	}

	metrics.MutationsTotal.WithLabelValues("product", string(domain.AuditCreate)).Inc()
	return c.JSON(http.StatusCreated, productResponse{
		Success: true,
		Message: "product created",
		Data:    product,
	})
}

// Update handles PUT /api/products/:id.
//
// @Summary      Update a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int             true  "Product id"
// @Param        body  body      productRequest  true  "Product"
// @Success      200   {object}  productResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/products/{id} [put]
func (h *ProductHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req productRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	product, err := h.service.Update(c.Request().Context(), id, ports.ProductInput{
		Title:       req.Title,
		Description: req.Description,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		return err
	}

	metrics.MutationsTotal.WithLabelValues("product", string(domain.AuditUpdate)).Inc()
	return c.JSON(http.StatusOK, productResponse{
		Success: true,
		Message: "product updated",
		Data:    product,
	})
}

// Delete handles DELETE /api/products/:id. The last remaining product
// cannot be deleted.
//
// @Summary      Delete a product
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Product id"
// @Success      200  {object}  productResponse
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/products/{id} [delete]
func (h *ProductHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	product, err := h.service.Delete(c.Request().Context(), id)
	if err != nil {
		return err
	}

	metrics.MutationsTotal.WithLabelValues("product", string(domain.AuditDelete)).Inc()
	return c.JSON(http.StatusOK, productResponse{
		Success: true,
		Message: "product deleted",
		Data:    product,
	})
}

// Count handles GET /api/products/count.
//
// @Summary      Count products
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  countResponse
// @Failure      500  {object}  errorResponse
// @Router       /api/products/count [get]
func (h *ProductHandler) Count(c echo.Context) error {
	n, err := h.service.Count(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, countResponse{Count: n})
}

// CategoryOptions handles GET /api/products/categories-dropdown.
//
// @Summary      Category choices for the product form
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  categoryOptionsResponse
// @Failure      500  {object}  errorResponse
// @Router       /api/products/categories-dropdown [get]
func (h *ProductHandler) CategoryOptions(c echo.Context) error {
	options, err := h.service.CategoryOptions(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, categoryOptionsResponse{Success: true, Data: options})
}
