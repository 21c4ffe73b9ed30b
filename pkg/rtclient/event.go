package rtclient

import (
	"encoding/json"
	"time"
)

// Event kinds pushed by the server. The strings are the wire protocol; they
// are duplicated here so this package stays importable without depending on
// the server's internal packages.
const (
	KindProductCreated       = "product_created"
	KindProductUpdated       = "product_updated"
	KindProductDeleted       = "product_deleted"
	KindOrderCreated         = "order_created"
	KindOrderStatusUpdated   = "order_status_updated"
	KindAdminNotification    = "admin_notification"
	KindCustomerNotification = "customer_notification"
)

// Event is the server→client envelope. Data is left raw so each handler can
// decode the payload shape it expects.
type Event struct {
	Kind      string          `json:"event_kind"`
	Timestamp time.Time       `json:"timestamp"`
	Data      json.RawMessage `json:"data"`
}

// announce is the client→server identity announcement, sent after every
// (re)connect because the server does not remember membership across
// connections.
type announce struct {
	Action string `json:"action"`
	Role   string `json:"role"`
	UserID string `json:"user_id"`
}

// PriceOption mirrors the server's product customization entries.
type PriceOption struct {
	Name       string  `json:"name"`
	Servings   string  `json:"servings,omitempty"`
	Multiplier float64 `json:"price_multiplier"`
}

// Product is the client-side view of a catalog entry.
type Product struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	Category    string        `json:"category"`
	Subcategory string        `json:"subcategory"`
	BasePrice   float64       `json:"base_price"`
	Image       string        `json:"image,omitempty"`
	Images      []string      `json:"images,omitempty"`
	Flavors     []PriceOption `json:"flavors,omitempty"`
	Sizes       []PriceOption `json:"sizes,omitempty"`
	EggOptions  []PriceOption `json:"egg_options,omitempty"`
	Rating      float64       `json:"rating"`
	Available   bool          `json:"available"`
	Featured    bool          `json:"featured"`
	Stock       int           `json:"stock"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// OrderItem is one line of an order.
type OrderItem struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
	Flavor    string  `json:"flavor,omitempty"`
	Size      string  `json:"size,omitempty"`
	EggOption string  `json:"egg_option,omitempty"`
	Subtotal  float64 `json:"subtotal"`
}

// Order is the client-side view of an order.
type Order struct {
	ID              string      `json:"id"`
	UserID          string      `json:"user_id"`
	Items           []OrderItem `json:"items"`
	TotalPrice      float64     `json:"total_price"`
	ShippingAddress string      `json:"shipping_address"`
	Phone           string      `json:"phone"`
	Status          string      `json:"status"`
	PaymentMethod   string      `json:"payment_method"`
	Notes           string      `json:"notes,omitempty"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

// notificationPayload is the wire shape of notification events.
type notificationPayload struct {
	Message  string         `json:"message"`
	Severity string         `json:"severity"`
	Data     map[string]any `json:"data,omitempty"`
}

// Notification is a transient feed entry. The ID is client-generated; feed
// entries are a UI affordance, not a durable inbox.
type Notification struct {
	ID        string         `json:"id"`
	Timestamp time.Time      `json:"timestamp"`
	Message   string         `json:"message"`
	Severity  string         `json:"severity"`
	Data      map[string]any `json:"data,omitempty"`
}
