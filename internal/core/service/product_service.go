package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/bakehouse/storefront/internal/core/domain"
	"github.com/bakehouse/storefront/internal/core/ports"
)

const maxPageLimit = 100

type ProductService struct {
	repo      ports.ProductRepository
	publisher ports.EventPublisher
	logger    zerolog.Logger
}

func NewProductService(repo ports.ProductRepository, publisher ports.EventPublisher, logger zerolog.Logger) *ProductService {
	return &ProductService{repo: repo, publisher: publisher, logger: logger}
}

// ListProducts returns a page of catalog entries matching the given filters.
func (s *ProductService) ListProducts(ctx context.Context, input ports.ListProductsInput) (*ports.ListProductsResult, error) {
	page := input.Page
	if page < 1 {
		page = 1
	}
	limit := input.Limit
	if limit <= 0 {
		limit = 20
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	items, total, err := s.repo.List(ctx, ports.ListProductsFilter{
		Category:    input.Category,
		Subcategory: input.Subcategory,
		Featured:    input.Featured,
		Available:   input.Available,
		Search:      input.Search,
		Page:        page,
		Limit:       limit,
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list products")
		return nil, err
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &ports.ListProductsResult{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

func (s *ProductService) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.FindByID(ctx, id)
}

// CreateProduct persists a new catalog entry and broadcasts it to every
// connected client once the write has committed.
func (s *ProductService) CreateProduct(ctx context.Context, input ports.CreateProductInput) (*domain.Product, error) {
	now := time.Now().UTC()
	available := true
	if input.Available != nil {
		available = *input.Available
	}

	product := &domain.Product{
		Name:        input.Name,
		Description: input.Description,
		Category:    input.Category,
		Subcategory: input.Subcategory,
		BasePrice:   input.BasePrice,
		Image:       input.Image,
		Images:      input.Images,
		Flavors:     toPriceOptions(input.Flavors),
		Sizes:       toPriceOptions(input.Sizes),
		EggOptions:  toPriceOptions(input.EggOptions),
		Available:   available,
		Featured:    input.Featured,
		Stock:       input.Stock,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.repo.Create(ctx, product)
	if err != nil {
		s.logger.Error().Err(err).Str("name", input.Name).Msg("failed to create product")
		return nil, err
	}

	s.logger.Info().Str("product_id", created.ID).Str("category", created.Category).Msg("product created")
	s.publisher.ProductCreated(created)
	return created, nil
}

// UpdateProduct replaces the mutable fields of a catalog entry and broadcasts
// the new state.
func (s *ProductService) UpdateProduct(ctx context.Context, input ports.UpdateProductInput) (*domain.Product, error) {
	existing, err := s.repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	existing.Name = input.Name
	existing.Description = input.Description
	existing.Category = input.Category
	existing.Subcategory = input.Subcategory
	existing.BasePrice = input.BasePrice
	existing.Image = input.Image
	existing.Images = input.Images
	existing.Flavors = toPriceOptions(input.Flavors)
	existing.Sizes = toPriceOptions(input.Sizes)
	existing.EggOptions = toPriceOptions(input.EggOptions)
	if input.Available != nil {
		existing.Available = *input.Available
	}
	existing.Featured = input.Featured
	existing.Stock = input.Stock
	existing.UpdatedAt = time.Now().UTC()

	updated, err := s.repo.Update(ctx, existing)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", input.ID).Msg("failed to update product")
		return nil, err
	}

	s.publisher.ProductUpdated(updated)
	return updated, nil
}

// DeleteProduct removes a catalog entry and broadcasts the deletion so
// browsing clients drop it from their local catalog.
func (s *ProductService) DeleteProduct(ctx context.Context, id string) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", id).Msg("failed to delete product")
		return err
	}

	s.logger.Info().Str("product_id", id).Msg("product deleted")
	s.publisher.ProductDeleted(deleted)
	return nil
}

func toPriceOptions(in []ports.PriceOptionInput) []domain.PriceOption {
	if len(in) == 0 {
		return nil
	}
	out := make([]domain.PriceOption, len(in))
	for i, o := range in {
		out[i] = domain.PriceOption{Name: o.Name, Servings: o.Servings, Multiplier: o.Multiplier}
	}
	return out
}
