package ports

import (
	"context"
	"time"

	"github.com/bakehouse/storefront/internal/core/domain"
)

// OrderItemInput is one line of a new order as submitted at checkout.
type OrderItemInput struct {
	ProductID string
	Name      string
	Quantity  int
	Price     float64
	Flavor    string
	Size      string
	EggOption string
	Subtotal  float64
}

// CreateOrderInput carries all data needed to place an order.
type CreateOrderInput struct {
	UserID          string
	UserName        string // display name, used in the staff notification
	Items           []OrderItemInput
	TotalPrice      float64
	ShippingAddress string
	Phone           string
	PaymentMethod   string
	Notes           string
}

// ListOrdersInput carries all parameters for the list endpoints.
type ListOrdersInput struct {
	Role     string
	UserID   string
	Status   string
	DateFrom time.Time
	DateTo   time.Time
	Page     int
	Limit    int
}

// ListOrdersResult is returned by ListOrders.
type ListOrdersResult struct {
	Items      []*domain.Order
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// GetOrderInput carries the parameters to retrieve a single order.
// Role and UserID enforce RBAC: customers only see their own orders.
type GetOrderInput struct {
	OrderID string
	Role    string
	UserID  string
}

// UpdateOrderStatusInput carries a staff status transition request.
type UpdateOrderStatusInput struct {
	OrderID string
	Status  string
}

// OrderService defines use-case operations for orders.
type OrderService interface {
	CreateOrder(ctx context.Context, input CreateOrderInput) (*domain.Order, error)
	GetOrder(ctx context.Context, input GetOrderInput) (*domain.Order, error)
	ListOrders(ctx context.Context, input ListOrdersInput) (*ListOrdersResult, error)
	UpdateStatus(ctx context.Context, input UpdateOrderStatusInput) (*domain.Order, error)
}
