package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/bakehouse/storefront/internal/core/domain"
	"github.com/bakehouse/storefront/internal/core/ports"
)

// ProductHandler handles HTTP requests for the catalog.
type ProductHandler struct {
	service ports.ProductService
}

func NewProductHandler(service ports.ProductService) *ProductHandler {
	return &ProductHandler{service: service}
}

// --- Request / Response types ---

type priceOptionRequest struct {
	Name       string  `json:"name" validate:"required"`
	Servings   string  `json:"servings"`
	Multiplier float64 `json:"price_multiplier" validate:"gt=0"`
}

type productRequest struct {
	Name        string               `json:"name" validate:"required"`
	Description string               `json:"description"`
	Category    string               `json:"category" validate:"required"`
	Subcategory string               `json:"subcategory" validate:"required"`
	BasePrice   float64              `json:"base_price" validate:"gt=0"`
	Image       string               `json:"image"`
	Images      []string             `json:"images"`
	Flavors     []priceOptionRequest `json:"flavors" validate:"dive"`
	Sizes       []priceOptionRequest `json:"sizes" validate:"dive"`
	EggOptions  []priceOptionRequest `json:"egg_options" validate:"dive"`
	Available   *bool                `json:"available"`
	Featured    bool                 `json:"featured"`
	Stock       int                  `json:"stock" validate:"min=0"`
}

type listProductsResponse struct {
	Items      []*domain.Product `json:"items"`
	Total      int64             `json:"total"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"total_pages"`
}

// List handles GET /products.
//
// @Summary      List catalog products
// @Tags         products
// @Produce      json
// @Param        category  query     string  false  "Filter by category"
// @Param        featured  query     bool    false  "Only featured products"
// @Param        search    query     string  false  "Search name/description"
// @Success      200       {object}  listProductsResponse
// @Router       /products [get]
func (h *ProductHandler) List(c echo.Context) error {
	input := ports.ListProductsInput{
		Category:    c.QueryParam("category"),
		Subcategory: c.QueryParam("subcategory"),
		Search:      c.QueryParam("search"),
	}
	if v := c.QueryParam("featured"); v != "" {
		b, _ := strconv.ParseBool(v)
		input.Featured = &b
	}
	if v := c.QueryParam("available"); v != "" {
		b, _ := strconv.ParseBool(v)
		input.Available = &b
	}
	input.Page, _ = strconv.Atoi(c.QueryParam("page"))
	input.Limit, _ = strconv.Atoi(c.QueryParam("limit"))

	result, err := h.service.ListProducts(c.Request().Context(), input)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, listProductsResponse{
		Items:      result.Items,
		Total:      result.Total,
		Page:       result.Page,
		Limit:      result.Limit,
		TotalPages: result.TotalPages,
	})
}

// Get handles GET /products/:id.
func (h *ProductHandler) Get(c echo.Context) error {
	product, err := h.service.GetProduct(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, product)
}

// Create handles POST /products (admin only).
func (h *ProductHandler) Create(c echo.Context) error {
	var req productRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	product, err := h.service.CreateProduct(c.Request().Context(), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, product)
}

// Update handles PUT /products/:id (admin only).
func (h *ProductHandler) Update(c echo.Context) error {
	var req productRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	product, err := h.service.UpdateProduct(c.Request().Context(), ports.UpdateProductInput{
		ID:                 c.Param("id"),
		CreateProductInput: req.toInput(),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, product)
}

// Delete handles DELETE /products/:id (admin only).
func (h *ProductHandler) Delete(c echo.Context) error {
	if err := h.service.DeleteProduct(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (r productRequest) toInput() ports.CreateProductInput {
	return ports.CreateProductInput{
		Name:        r.Name,
		Description: r.Description,
		Category:    r.Category,
		Subcategory: r.Subcategory,
		BasePrice:   r.BasePrice,
		Image:       r.Image,
		Images:      r.Images,
		Flavors:     toOptionInputs(r.Flavors),
		Sizes:       toOptionInputs(r.Sizes),
		EggOptions:  toOptionInputs(r.EggOptions),
		Available:   r.Available,
		Featured:    r.Featured,
		Stock:       r.Stock,
	}
}

func toOptionInputs(in []priceOptionRequest) []ports.PriceOptionInput {
	if len(in) == 0 {
		return nil
	}
	out := make([]ports.PriceOptionInput, len(in))
	for i, o := range in {
		out[i] = ports.PriceOptionInput{Name: o.Name, Servings: o.Servings, Multiplier: o.Multiplier}
	}
	return out
}
