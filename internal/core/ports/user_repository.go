package ports

import (
	"context"

	"github.com/bakehouse/storefront/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// ListCustomers returns all non-admin users, newest first.
	ListCustomers(ctx context.Context) ([]*domain.User, error)
}
