package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/bakehouse/storefront/internal/core/domain"
	"github.com/bakehouse/storefront/internal/core/ports"
)

// OrderHandler handles HTTP requests for orders.
type OrderHandler struct {
	service ports.OrderService
}

func NewOrderHandler(service ports.OrderService) *OrderHandler {
	return &OrderHandler{service: service}
}

// --- Request / Response types ---

type orderItemRequest struct {
	ProductID string  `json:"product_id" validate:"required"`
	Name      string  `json:"name" validate:"required"`
	Quantity  int     `json:"quantity" validate:"gt=0"`
	Price     float64 `json:"price" validate:"gt=0"`
	Flavor    string  `json:"flavor"`
	Size      string  `json:"size"`
	EggOption string  `json:"egg_option"`
	Subtotal  float64 `json:"subtotal"`
}

type createOrderRequest struct {
	Items           []orderItemRequest `json:"items" validate:"required,min=1,dive"`
	TotalPrice      float64            `json:"total_price" validate:"gt=0"`
	ShippingAddress string             `json:"shipping_address" validate:"required"`
	Phone           string             `json:"phone" validate:"required"`
	PaymentMethod   string             `json:"payment_method"`
	Notes           string             `json:"notes"`
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type listOrdersResponse struct {
	Items      []*domain.Order `json:"items"`
	Total      int64           `json:"total"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"total_pages"`
}

// Create handles POST /orders (customer).
//
// @Summary      Place a new order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createOrderRequest  true  "Order details"
// @Success      201   {object}  domain.Order
// @Failure      400   {object}  map[string]string
// @Router       /orders [post]
func (h *OrderHandler) Create(c echo.Context) error {
	_, userID, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req createOrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	items := make([]ports.OrderItemInput, len(req.Items))
	for i, it := range req.Items {
		items[i] = ports.OrderItemInput{
			ProductID: it.ProductID,
			Name:      it.Name,
			Quantity:  it.Quantity,
			Price:     it.Price,
			Flavor:    it.Flavor,
			Size:      it.Size,
			EggOption: it.EggOption,
			Subtotal:  it.Subtotal,
		}
	}

	userName, _ := c.Get("email").(string)
	order, err := h.service.CreateOrder(c.Request().Context(), ports.CreateOrderInput{
		UserID:          userID,
		UserName:        userName,
		Items:           items,
		TotalPrice:      req.TotalPrice,
		ShippingAddress: req.ShippingAddress,
		Phone:           req.Phone,
		PaymentMethod:   req.PaymentMethod,
		Notes:           req.Notes,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, order)
}

// ListMine handles GET /orders/mine (customer).
func (h *OrderHandler) ListMine(c echo.Context) error {
	_, userID, err := ctxClaims(c)
	if err != nil {
		return err
	}
	input := h.listInput(c)
	input.Role = domain.RoleCustomer // always self-scoped, even for staff
	input.UserID = userID

	result, err := h.service.ListOrders(c.Request().Context(), input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.listResponse(result))
}

// ListAll handles GET /orders (admin only).
func (h *OrderHandler) ListAll(c echo.Context) error {
	role, userID, err := ctxClaims(c)
	if err != nil {
		return err
	}
	input := h.listInput(c)
	input.Role = role
	input.UserID = userID

	result, err := h.service.ListOrders(c.Request().Context(), input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.listResponse(result))
}

// Get handles GET /orders/:id (owner or admin).
func (h *OrderHandler) Get(c echo.Context) error {
	role, userID, err := ctxClaims(c)
	if err != nil {
		return err
	}

	order, err := h.service.GetOrder(c.Request().Context(), ports.GetOrderInput{
		OrderID: c.Param("id"),
		Role:    role,
		UserID:  userID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, order)
}

// UpdateStatus handles PATCH /orders/:id/status (admin only).
//
// @Summary      Update order status
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Order id"
// @Param        body  body      updateStatusRequest  true  "New status"
// @Success      200   {object}  domain.Order
// @Failure      422   {object}  map[string]string
// @Router       /orders/{id}/status [patch]
func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	var req updateStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	order, err := h.service.UpdateStatus(c.Request().Context(), ports.UpdateOrderStatusInput{
		OrderID: c.Param("id"),
		Status:  req.Status,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) listInput(c echo.Context) ports.ListOrdersInput {
	input := ports.ListOrdersInput{
		Status: c.QueryParam("status"),
	}
	if v := c.QueryParam("date_from"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			input.DateFrom = t
		}
	}
	if v := c.QueryParam("date_to"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			input.DateTo = t
		}
	}
	input.Page, _ = strconv.Atoi(c.QueryParam("page"))
	input.Limit, _ = strconv.Atoi(c.QueryParam("limit"))
	return input
}

func (h *OrderHandler) listResponse(result *ports.ListOrdersResult) listOrdersResponse {
	return listOrdersResponse{
		Items:      result.Items,
		Total:      result.Total,
		Page:       result.Page,
		Limit:      result.Limit,
		TotalPages: result.TotalPages,
	}
}
