package ports

import (
	"context"

	"github.com/bakehouse/storefront/internal/core/domain"
)

// AddCartItemInput carries one product selection to add to a cart.
type AddCartItemInput struct {
	UserID    string
	ProductID string
	Quantity  int
	Flavor    string
	Size      string
	EggOption string
}

// CartService defines use-case operations for customer carts.
type CartService interface {
	GetCart(ctx context.Context, userID string) (*domain.Cart, error)
	// AddItem validates the product exists and is available, then merges the
	// selection into the cart (same product+options bumps quantity).
	AddItem(ctx context.Context, input AddCartItemInput) (*domain.Cart, error)
	// UpdateQuantity sets the quantity of an existing line; zero removes it.
	UpdateQuantity(ctx context.Context, userID, productID string, quantity int) (*domain.Cart, error)
	RemoveItem(ctx context.Context, userID, productID string) (*domain.Cart, error)
	ClearCart(ctx context.Context, userID string) error
}
