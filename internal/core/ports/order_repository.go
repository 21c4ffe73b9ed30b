package ports

import (
	"context"
	"time"

	"github.com/bakehouse/storefront/internal/core/domain"
)

// ListOrdersFilter carries all query parameters for listing orders.
// UserID is enforced by the service layer for customer callers (RBAC).
type ListOrdersFilter struct {
	UserID   string    // empty = no filter (admin); non-empty = scoped to owner
	Status   string    // optional: filter by order status
	DateFrom time.Time // optional: created_at >= DateFrom
	DateTo   time.Time // optional: created_at <= DateTo
	Page     int       // 1-based
	Limit    int       // max rows per page (capped at 100 by service)
}

// CustomerStats aggregates order totals for the admin customer view.
type CustomerStats struct {
	TotalOrders int64
	TotalSpent  float64
}

// OrderRepository defines persistence operations for orders.
type OrderRepository interface {
	Create(ctx context.Context, o *domain.Order) (*domain.Order, error)
	FindByID(ctx context.Context, id string) (*domain.Order, error)
	// List returns a page of orders matching filter and the total count,
	// newest first.
	List(ctx context.Context, filter ListOrdersFilter) ([]*domain.Order, int64, error)
	// UpdateStatus sets the order status and returns the updated document.
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus, at time.Time) (*domain.Order, error)
	// StatsByUser aggregates order count and total spend for one customer.
	StatsByUser(ctx context.Context, userID string) (*CustomerStats, error)
}
