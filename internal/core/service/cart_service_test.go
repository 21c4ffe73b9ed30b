package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/bakehouse/storefront/internal/core/domain"
	"github.com/bakehouse/storefront/internal/core/ports"
)

type stubProductRepo struct {
	products map[string]*domain.Product
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: make(map[string]*domain.Product)}
}

func cloneProduct(p *domain.Product) *domain.Product {
	if p == nil {
		return nil
	}
	clone := *p
	return &clone
}

func (r *stubProductRepo) Create(_ context.Context, p *domain.Product) (*domain.Product, error) {
	copy := cloneProduct(p)
	if copy.ID == "" {
		copy.ID = p.Name
	}
	r.products[copy.ID] = cloneProduct(copy)
	return copy, nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id string) (*domain.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return cloneProduct(p), nil
}

func (r *stubProductRepo) List(_ context.Context, _ ports.ListProductsFilter) ([]*domain.Product, int64, error) {
	out := make([]*domain.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, cloneProduct(p))
	}
	return out, int64(len(out)), nil
}

func (r *stubProductRepo) Update(_ context.Context, p *domain.Product) (*domain.Product, error) {
	if _, ok := r.products[p.ID]; !ok {
		return nil, domain.ErrProductNotFound
	}
	r.products[p.ID] = cloneProduct(p)
	return cloneProduct(p), nil
}

func (r *stubProductRepo) Delete(_ context.Context, id string) (*domain.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	delete(r.products, id)
	return p, nil
}

func newCartFixture() (*CartService, *stubCartRepo, *stubProductRepo) {
	carts := newStubCartRepo()
	products := newStubProductRepo()
	svc := NewCartService(carts, products, zerolog.Nop())
	return svc, carts, products
}

func TestCartService_AddItem(t *testing.T) {
	svc, _, products := newCartFixture()
	products.products["p1"] = &domain.Product{
		ID: "p1", Name: "Carrot Cake", BasePrice: 20, Available: true,
		Sizes: []domain.PriceOption{{Name: "large", Multiplier: 1.5}},
	}

	cart, err := svc.AddItem(context.Background(), ports.AddCartItemInput{UserID: "u1", ProductID: "p1", Quantity: 2, Size: "large"})
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if len(cart.Items) != 1 {
		t.Fatalf("expected 1 line, got %d", len(cart.Items))
	}
	line := cart.Items[0]
	if line.Quantity != 2 {
		t.Fatalf("quantity = %d, want 2", line.Quantity)
	}
	if line.Price != 30 {
		t.Fatalf("line price = %v, want 30 (base 20 * 1.5)", line.Price)
	}
}

func TestCartService_AddItem_MergesSameSelection(t *testing.T) {
	svc, _, products := newCartFixture()
	products.products["p1"] = &domain.Product{ID: "p1", Name: "Brownie", BasePrice: 5, Available: true}

	input := ports.AddCartItemInput{UserID: "u1", ProductID: "p1", Quantity: 1}
	if _, err := svc.AddItem(context.Background(), input); err != nil {
		t.Fatalf("first AddItem: %v", err)
	}
	cart, err := svc.AddItem(context.Background(), input)
	if err != nil {
		t.Fatalf("second AddItem: %v", err)
	}
	if len(cart.Items) != 1 || cart.Items[0].Quantity != 2 {
		t.Fatalf("same selection must merge into one line with quantity 2, got %+v", cart.Items)
	}

	// Different options make a new line.
	cart, err = svc.AddItem(context.Background(), ports.AddCartItemInput{UserID: "u1", ProductID: "p1", Quantity: 1, Flavor: "walnut"})
	if err != nil {
		t.Fatalf("third AddItem: %v", err)
	}
	if len(cart.Items) != 2 {
		t.Fatalf("different options must not merge, got %d lines", len(cart.Items))
	}
}

func TestCartService_AddItem_Unavailable(t *testing.T) {
	svc, _, products := newCartFixture()
	products.products["p1"] = &domain.Product{ID: "p1", Name: "Seasonal", BasePrice: 10, Available: false}

	if _, err := svc.AddItem(context.Background(), ports.AddCartItemInput{UserID: "u1", ProductID: "p1", Quantity: 1}); !errors.Is(err, domain.ErrProductUnavailable) {
		t.Fatalf("expected ErrProductUnavailable, got %v", err)
	}
	if _, err := svc.AddItem(context.Background(), ports.AddCartItemInput{UserID: "u1", ProductID: "missing", Quantity: 1}); !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestCartService_UpdateQuantity(t *testing.T) {
	svc, _, products := newCartFixture()
	products.products["p1"] = &domain.Product{ID: "p1", Name: "Brownie", BasePrice: 5, Available: true}
	if _, err := svc.AddItem(context.Background(), ports.AddCartItemInput{UserID: "u1", ProductID: "p1", Quantity: 1}); err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	cart, err := svc.UpdateQuantity(context.Background(), "u1", "p1", 5)
	if err != nil {
		t.Fatalf("UpdateQuantity: %v", err)
	}
	if cart.Items[0].Quantity != 5 {
		t.Fatalf("quantity = %d, want 5", cart.Items[0].Quantity)
	}

	// Zero removes the line.
	cart, err = svc.UpdateQuantity(context.Background(), "u1", "p1", 0)
	if err != nil {
		t.Fatalf("UpdateQuantity(0): %v", err)
	}
	if len(cart.Items) != 0 {
		t.Fatalf("expected empty cart, got %+v", cart.Items)
	}

	if _, err := svc.UpdateQuantity(context.Background(), "u1", "p1", 1); !errors.Is(err, domain.ErrCartItemNotFound) {
		t.Fatalf("expected ErrCartItemNotFound, got %v", err)
	}
}

func TestCartService_GetCart_MissingIsEmpty(t *testing.T) {
	svc, _, _ := newCartFixture()

	cart, err := svc.GetCart(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("GetCart: %v", err)
	}
	if cart.UserID != "nobody" || len(cart.Items) != 0 {
		t.Fatalf("missing cart must come back empty, got %+v", cart)
	}
}
