package domain

import (
	"errors"
	"time"
)

var ErrCartItemNotFound = errors.New("cart item not found")

// CartItem is a single product selection held in a customer's cart.
type CartItem struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
	Image     string  `json:"image,omitempty"`
	Flavor    string  `json:"flavor,omitempty"`
	Size      string  `json:"size,omitempty"`
	EggOption string  `json:"egg_option,omitempty"`
}

// Cart holds the pending selections for one customer.
type Cart struct {
	UserID    string     `json:"user_id"`
	Items     []CartItem `json:"items"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Total returns the sum of quantity*price over all items.
func (c *Cart) Total() float64 {
	var total float64
	for _, it := range c.Items {
		total += float64(it.Quantity) * it.Price
	}
	return total
}
