package ports

import "github.com/bakehouse/storefront/internal/core/domain"

// EventPublisher is the boundary between the CRUD services and the realtime
// fan-out layer. Services call it exactly once per change, after the
// persistence write has committed. Implementations are fire-and-forget:
// they must never return delivery problems into the request/response cycle,
// so none of these methods return an error.
type EventPublisher interface {
	ProductCreated(p *domain.Product)
	ProductUpdated(p *domain.Product)
	ProductDeleted(p *domain.Product)

	// OrderCreated reaches staff only; customers learn about their own
	// order through NotifyCustomer.
	OrderCreated(o *domain.Order)
	// OrderStatusUpdated reaches staff and the order's owner.
	OrderStatusUpdated(o *domain.Order)

	NotifyAdmin(message, severity string, data map[string]any)
	NotifyCustomer(userID, message, severity string, data map[string]any)
}
