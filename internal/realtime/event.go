package realtime

import "time"

// Kind identifies what changed. The set is fixed: clients register handlers
// by kind and the hub's targeting table is keyed by it.
type Kind string

const (
	KindProductCreated     Kind = "product_created"
	KindProductUpdated     Kind = "product_updated"
	KindProductDeleted     Kind = "product_deleted"
	KindOrderCreated       Kind = "order_created"
	KindOrderStatusUpdated Kind = "order_status_updated"
	KindAdminNotification  Kind = "admin_notification"
	KindCustomerNotification Kind = "customer_notification"
)

// Event is the immutable wire envelope pushed to clients. Events are
// fire-and-forget: not persisted, not retried, not acknowledged.
type Event struct {
	Kind      Kind      `json:"event_kind"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}

// NewEvent stamps an envelope with the current time.
func NewEvent(kind Kind, data any) *Event {
	return &Event{Kind: kind, Timestamp: time.Now().UTC(), Data: data}
}

// Notification is the payload of admin_notification and customer_notification
// events: an informational ping rather than an entity change.
type Notification struct {
	Message  string         `json:"message"`
	Severity string         `json:"severity"`
	Data     map[string]any `json:"data,omitempty"`
}
