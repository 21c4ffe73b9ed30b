package realtime

import (
	"github.com/rs/zerolog"

	"github.com/bakehouse/storefront/internal/api/metrics"
	"github.com/bakehouse/storefront/internal/core/domain"
)

// Hub translates a domain change into the correct room-targeting calls:
//
//	product_created/updated/deleted  → all clients
//	order_created                    → staff room only
//	order_status_updated             → staff room + the order owner's room
//	admin_notification               → staff room
//	customer_notification            → one customer's room
//
// Delivery is at most once per live connection matching the target; offline
// connections miss the event permanently (no backlog). A target room with
// zero members is a normal no-subscriber case, not an error. The Hub
// implements ports.EventPublisher.
type Hub struct {
	registry *Registry
	log      zerolog.Logger
}

func NewHub(registry *Registry, log zerolog.Logger) *Hub {
	return &Hub{registry: registry, log: log}
}

func (h *Hub) ProductCreated(p *domain.Product) {
	h.broadcastAll(KindProductCreated, p)
}

func (h *Hub) ProductUpdated(p *domain.Product) {
	h.broadcastAll(KindProductUpdated, p)
}

func (h *Hub) ProductDeleted(p *domain.Product) {
	h.broadcastAll(KindProductDeleted, p)
}

// OrderCreated reaches staff only: customers don't see other customers'
// orders, and the ordering customer is told via NotifyCustomer.
func (h *Hub) OrderCreated(o *domain.Order) {
	h.publish(KindOrderCreated)
	h.registry.DeliverToRoom(Admins(), NewEvent(KindOrderCreated, o))
	h.log.Debug().Str("order_id", o.ID).Msg("order_created broadcast to staff")
}

// OrderStatusUpdated reaches both the staff dashboard and the owning
// customer, who must each see the transition.
func (h *Hub) OrderStatusUpdated(o *domain.Order) {
	h.publish(KindOrderStatusUpdated)
	ev := NewEvent(KindOrderStatusUpdated, o)
	h.registry.DeliverToRoom(Admins(), ev)
	h.registry.DeliverToRoom(Customer(o.UserID), ev)
	h.log.Debug().Str("order_id", o.ID).Str("user_id", o.UserID).Msg("order_status_updated broadcast")
}

func (h *Hub) NotifyAdmin(message, severity string, data map[string]any) {
	h.publish(KindAdminNotification)
	h.registry.DeliverToRoom(Admins(), NewEvent(KindAdminNotification, Notification{
		Message:  message,
		Severity: severity,
		Data:     data,
	}))
}

func (h *Hub) NotifyCustomer(userID, message, severity string, data map[string]any) {
	h.publish(KindCustomerNotification)
	h.registry.DeliverToRoom(Customer(userID), NewEvent(KindCustomerNotification, Notification{
		Message:  message,
		Severity: severity,
		Data:     data,
	}))
}

func (h *Hub) broadcastAll(kind Kind, data any) {
	h.publish(kind)
	h.registry.DeliverToAll(NewEvent(kind, data))
}

func (h *Hub) publish(kind Kind) {
	metrics.RealtimeEventsPublishedTotal.WithLabelValues(string(kind)).Inc()
}
