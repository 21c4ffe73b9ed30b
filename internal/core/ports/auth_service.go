package ports

import (
	"context"

	"github.com/bakehouse/storefront/internal/core/domain"
)

// RegisterInput carries the data for a new account.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
	Role     string // admin or customer; empty defaults to customer
}

// AuthService implements registration and login.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (string, *domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}
