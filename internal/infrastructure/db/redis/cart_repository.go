package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/bakehouse/storefront/internal/core/domain"
)

// Carts are ephemeral: an untouched cart disappears after cartTTL.
const cartTTL = 30 * 24 * time.Hour

// CartRepository stores one JSON cart document per user in Redis.
// Key format: cart:<user_id>
type CartRepository struct {
	client *redis.Client
}

func NewCartRepository(client *redis.Client) *CartRepository {
	return &CartRepository{client: client}
}

// Get returns the user's cart. A missing key is an empty cart, not an error.
func (r *CartRepository) Get(ctx context.Context, userID string) (*domain.Cart, error) {
	data, err := r.client.Get(ctx, r.key(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return &domain.Cart{UserID: userID}, nil
		}
		return nil, fmt.Errorf("cart get: %w", err)
	}

	var cart domain.Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		return nil, fmt.Errorf("cart decode: %w", err)
	}
	return &cart, nil
}

// Save writes the cart document, refreshing its TTL.
func (r *CartRepository) Save(ctx context.Context, cart *domain.Cart) error {
	data, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("cart encode: %w", err)
	}
	if err := r.client.Set(ctx, r.key(cart.UserID), data, cartTTL).Err(); err != nil {
		return fmt.Errorf("cart set: %w", err)
	}
	return nil
}

// Clear removes the cart. No error if it does not exist.
func (r *CartRepository) Clear(ctx context.Context, userID string) error {
	if err := r.client.Del(ctx, r.key(userID)).Err(); err != nil {
		return fmt.Errorf("cart del: %w", err)
	}
	return nil
}

func (r *CartRepository) key(userID string) string {
	return "cart:" + userID
}
