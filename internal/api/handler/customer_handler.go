package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bakehouse/storefront/internal/core/ports"
)

// CustomerHandler serves the admin customer views.
type CustomerHandler struct {
	service ports.CustomerService
}

func NewCustomerHandler(service ports.CustomerService) *CustomerHandler {
	return &CustomerHandler{service: service}
}

// List handles GET /customers (admin only).
func (h *CustomerHandler) List(c echo.Context) error {
	customers, err := h.service.ListCustomers(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, customers)
}

// Get handles GET /customers/:id (admin only).
func (h *CustomerHandler) Get(c echo.Context) error {
	customer, err := h.service.GetCustomer(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, customer)
}
