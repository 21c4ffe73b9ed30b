package ports

import (
	"context"

	"github.com/bakehouse/storefront/internal/core/domain"
)

// PriceOptionInput holds one customization choice for create/update calls.
type PriceOptionInput struct {
	Name       string
	Servings   string
	Multiplier float64
}

// CreateProductInput carries all data needed to create a catalog entry.
type CreateProductInput struct {
	Name        string
	Description string
	Category    string
	Subcategory string
	BasePrice   float64
	Image       string
	Images      []string
	Flavors     []PriceOptionInput
	Sizes       []PriceOptionInput
	EggOptions  []PriceOptionInput
	Available   *bool
	Featured    bool
	Stock       int
}

// UpdateProductInput mirrors CreateProductInput plus the target id.
type UpdateProductInput struct {
	ID string
	CreateProductInput
}

// ListProductsInput carries all parameters for the list endpoint.
type ListProductsInput struct {
	Category    string
	Subcategory string
	Featured    *bool
	Available   *bool
	Search      string
	Page        int
	Limit       int
}

// ListProductsResult is returned by ListProducts.
type ListProductsResult struct {
	Items      []*domain.Product
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// ProductService defines use-case operations for the catalog.
type ProductService interface {
	ListProducts(ctx context.Context, input ListProductsInput) (*ListProductsResult, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	CreateProduct(ctx context.Context, input CreateProductInput) (*domain.Product, error)
	UpdateProduct(ctx context.Context, input UpdateProductInput) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id string) error
}
