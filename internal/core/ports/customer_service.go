package ports

import (
	"context"

	"github.com/bakehouse/storefront/internal/core/domain"
)

// CustomerSummary is one row in the admin customer list.
type CustomerSummary struct {
	User        *domain.User `json:"user"`
	TotalOrders int64        `json:"total_orders"`
	TotalSpent  float64      `json:"total_spent"`
}

// CustomerService backs the admin customer views.
type CustomerService interface {
	ListCustomers(ctx context.Context) ([]*CustomerSummary, error)
	GetCustomer(ctx context.Context, id string) (*CustomerSummary, error)
}
