package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/bakehouse/storefront/internal/core/domain"
	"github.com/bakehouse/storefront/internal/core/ports"
)

type CartService struct {
	carts    ports.CartRepository
	products ports.ProductRepository
	logger   zerolog.Logger
}

func NewCartService(carts ports.CartRepository, products ports.ProductRepository, logger zerolog.Logger) *CartService {
	return &CartService{carts: carts, products: products, logger: logger}
}

func (s *CartService) GetCart(ctx context.Context, userID string) (*domain.Cart, error) {
	return s.carts.Get(ctx, userID)
}

// AddItem validates the product, prices the line from the current catalog
// entry, and merges it into the cart. Adding the same product with the same
// options bumps the quantity instead of duplicating the line.
func (s *CartService) AddItem(ctx context.Context, input ports.AddCartItemInput) (*domain.Cart, error) {
	product, err := s.products.FindByID(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}
	if !product.Available {
		return nil, domain.ErrProductUnavailable
	}

	quantity := input.Quantity
	if quantity < 1 {
		quantity = 1
	}

	cart, err := s.carts.Get(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	merged := false
	for i, it := range cart.Items {
		if it.ProductID == input.ProductID && it.Flavor == input.Flavor && it.Size == input.Size && it.EggOption == input.EggOption {
			cart.Items[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		cart.Items = append(cart.Items, domain.CartItem{
			ProductID: product.ID,
			Name:      product.Name,
			Quantity:  quantity,
			Price:     linePrice(product, input.Flavor, input.Size, input.EggOption),
			Image:     product.Image,
			Flavor:    input.Flavor,
			Size:      input.Size,
			EggOption: input.EggOption,
		})
	}
	cart.UpdatedAt = time.Now().UTC()

	if err := s.carts.Save(ctx, cart); err != nil {
		s.logger.Error().Err(err).Str("user_id", input.UserID).Msg("failed to save cart")
		return nil, err
	}
	return cart, nil
}

// UpdateQuantity sets the quantity of an existing line; zero removes it.
func (s *CartService) UpdateQuantity(ctx context.Context, userID, productID string, quantity int) (*domain.Cart, error) {
	cart, err := s.carts.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i, it := range cart.Items {
		if it.ProductID == productID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, domain.ErrCartItemNotFound
	}

	if quantity <= 0 {
		cart.Items = append(cart.Items[:idx], cart.Items[idx+1:]...)
	} else {
		cart.Items[idx].Quantity = quantity
	}
	cart.UpdatedAt = time.Now().UTC()

	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *CartService) RemoveItem(ctx context.Context, userID, productID string) (*domain.Cart, error) {
	return s.UpdateQuantity(ctx, userID, productID, 0)
}

func (s *CartService) ClearCart(ctx context.Context, userID string) error {
	return s.carts.Clear(ctx, userID)
}

// linePrice applies the multipliers of the chosen options to the base price.
func linePrice(p *domain.Product, flavor, size, eggOption string) float64 {
	price := p.BasePrice
	price *= optionMultiplier(p.Flavors, flavor)
	price *= optionMultiplier(p.Sizes, size)
	price *= optionMultiplier(p.EggOptions, eggOption)
	return price
}

func optionMultiplier(options []domain.PriceOption, name string) float64 {
	if name == "" {
		return 1
	}
	for _, o := range options {
		if o.Name == name && o.Multiplier > 0 {
			return o.Multiplier
		}
	}
	return 1
}
