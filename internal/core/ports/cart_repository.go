package ports

import (
	"context"

	"github.com/bakehouse/storefront/internal/core/domain"
)

// CartRepository defines persistence operations for customer carts.
// Carts are ephemeral per-user documents; a missing cart is returned as an
// empty cart, never as an error.
type CartRepository interface {
	Get(ctx context.Context, userID string) (*domain.Cart, error)
	Save(ctx context.Context, cart *domain.Cart) error
	Clear(ctx context.Context, userID string) error
}
