package domain

import (
	"errors"
	"time"
)

// OrderStatus represents the lifecycle state of an order.
type OrderStatus string

const (
	StatusPending        OrderStatus = "pending"
	StatusAccepted       OrderStatus = "accepted"
	StatusBaking         OrderStatus = "baking"
	StatusOutForDelivery OrderStatus = "out_for_delivery"
	StatusCompleted      OrderStatus = "completed"
	StatusCancelled      OrderStatus = "cancelled"
)

// validTransitions defines the allowed state machine transitions.
var validTransitions = map[OrderStatus][]OrderStatus{
	StatusPending:        {StatusAccepted, StatusCancelled},
	StatusAccepted:       {StatusBaking, StatusCancelled},
	StatusBaking:         {StatusOutForDelivery, StatusCancelled},
	StatusOutForDelivery: {StatusCompleted},
}

var ErrInvalidTransition = errors.New("invalid status transition")
var ErrOrderNotFound = errors.New("order not found")
var ErrEmptyOrder = errors.New("order has no items")
var ErrForbidden = errors.New("access forbidden")

// CanTransitionTo reports whether a transition from current status to next is valid.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsValid reports whether s is one of the known order statuses.
func (s OrderStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusBaking, StatusOutForDelivery, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// OrderItem is a single line of an order, with the customization the
// customer picked and the price that was locked in at order time.
type OrderItem struct {
	ProductID string  `json:"product_id" bson:"product_id"`
	Name      string  `json:"name" bson:"name"`
	Quantity  int     `json:"quantity" bson:"quantity"`
	Price     float64 `json:"price" bson:"price"`
	Flavor    string  `json:"flavor,omitempty" bson:"flavor,omitempty"`
	Size      string  `json:"size,omitempty" bson:"size,omitempty"`
	EggOption string  `json:"egg_option,omitempty" bson:"egg_option,omitempty"`
	Subtotal  float64 `json:"subtotal" bson:"subtotal"`
}

// Order is the core aggregate for a customer purchase.
type Order struct {
	ID              string      `json:"id" bson:"_id,omitempty"`
	UserID          string      `json:"user_id" bson:"user_id"`
	Items           []OrderItem `json:"items" bson:"items"`
	TotalPrice      float64     `json:"total_price" bson:"total_price"`
	ShippingAddress string      `json:"shipping_address" bson:"shipping_address"`
	Phone           string      `json:"phone" bson:"phone"`
	Status          OrderStatus `json:"status" bson:"status"`
	PaymentMethod   string      `json:"payment_method" bson:"payment_method"`
	Notes           string      `json:"notes,omitempty" bson:"notes,omitempty"`
	CreatedAt       time.Time   `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at" bson:"updated_at"`
}
