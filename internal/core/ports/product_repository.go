package ports

import (
	"context"

	"github.com/bakehouse/storefront/internal/core/domain"
)

// ListProductsFilter carries all query parameters for listing catalog entries.
type ListProductsFilter struct {
	Category    string // optional: filter by category
	Subcategory string // optional: filter by subcategory
	Featured    *bool  // optional: only featured / only non-featured
	Available   *bool  // optional: only available / only unavailable
	Search      string // optional: partial match on name or description
	Page        int    // 1-based
	Limit       int    // max rows per page (capped at 100 by service)
}

// ProductRepository defines persistence operations for catalog products.
type ProductRepository interface {
	Create(ctx context.Context, p *domain.Product) (*domain.Product, error)
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	// List returns a page of products matching filter and the total count.
	List(ctx context.Context, filter ListProductsFilter) ([]*domain.Product, int64, error)
	Update(ctx context.Context, p *domain.Product) (*domain.Product, error)
	// Delete removes the product and returns the deleted document so the
	// caller can broadcast its final state.
	Delete(ctx context.Context, id string) (*domain.Product, error)
}
