package rtclient

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const defaultNotificationTTL = 5 * time.Second

// StoreOptions configures a Store.
type StoreOptions struct {
	// Role and UserID gate which order and notification events are applied.
	// The server's room targeting already prevents cross-role delivery; the
	// store re-checks as defense in depth against already-delivered data. It
	// is never an access control on its own.
	Role   string
	UserID string
	// NotificationTTL is how long a feed entry stays visible. Defaults to 5s.
	NotificationTTL time.Duration

	Logger zerolog.Logger
}

// Store keeps the local product list, order list, and notification feed
// consistent as pushed events arrive, interleaved with full snapshot loads.
// All mutation goes through Replace*/apply operations; readers get copies.
//
// No cross-event ordering is assumed: for a given entity id the last applied
// write wins, and a stale update can overwrite a newer one. Events carry no
// version number; the snapshot refetch after a reconnect is the recovery
// path.
type Store struct {
	mu            sync.Mutex
	role          string
	userID        string
	ttl           time.Duration
	products      []Product
	orders        []Order
	notifications []Notification
	log           zerolog.Logger
}

func NewStore(opts StoreOptions) *Store {
	ttl := opts.NotificationTTL
	if ttl <= 0 {
		ttl = defaultNotificationTTL
	}
	return &Store{
		role:   opts.Role,
		userID: opts.UserID,
		ttl:    ttl,
		log:    opts.Logger,
	}
}

// Bind registers this store's apply functions on the client for every event
// kind. Call once, before or after Start.
func (s *Store) Bind(c *Client) {
	c.On(KindProductCreated, s.onProductCreated)
	c.On(KindProductUpdated, s.onProductUpdated)
	c.On(KindProductDeleted, s.onProductDeleted)
	c.On(KindOrderCreated, s.onOrderCreated)
	c.On(KindOrderStatusUpdated, s.onOrderStatusUpdated)
	c.On(KindAdminNotification, s.onNotification)
	c.On(KindCustomerNotification, s.onNotification)
}

// ── Snapshot loads ───────────────────────────────────────────────────────────

// ReplaceProducts swaps in a full catalog snapshot.
func (s *Store) ReplaceProducts(products []Product) {
	s.mu.Lock()
	s.products = append([]Product(nil), products...)
	s.mu.Unlock()
}

// ReplaceOrders swaps in a full order snapshot.
func (s *Store) ReplaceOrders(orders []Order) {
	s.mu.Lock()
	s.orders = append([]Order(nil), orders...)
	s.mu.Unlock()
}

// ── Read accessors ───────────────────────────────────────────────────────────

func (s *Store) Products() []Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Product(nil), s.products...)
}

func (s *Store) Orders() []Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Order(nil), s.orders...)
}

func (s *Store) Notifications() []Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Notification(nil), s.notifications...)
}

// ── Apply operations ─────────────────────────────────────────────────────────

// ApplyProductCreated prepends the product unless an entry with the same id
// already exists; duplicate delivery of a create is a no-op (first write
// wins — an update event is the only way to replace a cached entity).
func (s *Store) ApplyProductCreated(p Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.products {
		if existing.ID == p.ID {
			return
		}
	}
	s.products = append([]Product{p}, s.products...)
}

// ApplyProductUpdated replaces the entry matching the product's id, or
// inserts it when no match exists (a missed create is treated as a create).
func (s *Store) ApplyProductUpdated(p Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.products {
		if existing.ID == p.ID {
			s.products[i] = p
			return
		}
	}
	s.products = append([]Product{p}, s.products...)
}

// ApplyProductDeleted removes the entry with the given id; no-op if absent.
func (s *Store) ApplyProductDeleted(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.products {
		if existing.ID == id {
			s.products = append(s.products[:i], s.products[i+1:]...)
			return
		}
	}
}

// ApplyOrderCreated prepends the order if not already present. Only staff
// clients track other customers' new orders.
func (s *Store) ApplyOrderCreated(o Order) {
	if s.role != "admin" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.orders {
		if existing.ID == o.ID {
			return
		}
	}
	s.orders = append([]Order{o}, s.orders...)
}

// ApplyOrderStatusUpdated replaces the matching order, inserting it when
// absent. Customer clients apply it only for their own orders.
func (s *Store) ApplyOrderStatusUpdated(o Order) {
	if s.role != "admin" && o.UserID != s.userID {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.orders {
		if existing.ID == o.ID {
			s.orders[i] = o
			return
		}
	}
	s.orders = append([]Order{o}, s.orders...)
}

// ApplyNotification prepends a feed entry with a client-generated id and
// schedules its expiry. kind decides the audience gate.
func (s *Store) ApplyNotification(kind string, message, severity string, data map[string]any) {
	if kind == KindAdminNotification && s.role != "admin" {
		return
	}
	if kind == KindCustomerNotification && s.role == "admin" {
		return
	}

	n := Notification{
		ID:        uuid.NewString(),
		Timestamp: time.Now(),
		Message:   message,
		Severity:  severity,
		Data:      data,
	}

	s.mu.Lock()
	s.notifications = append([]Notification{n}, s.notifications...)
	s.mu.Unlock()

	time.AfterFunc(s.ttl, func() { s.expireNotification(n.ID) })
}

// ClearNotifications empties the feed immediately.
func (s *Store) ClearNotifications() {
	s.mu.Lock()
	s.notifications = nil
	s.mu.Unlock()
}

func (s *Store) expireNotification(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, n := range s.notifications {
		if n.ID == id {
			s.notifications = append(s.notifications[:i], s.notifications[i+1:]...)
			return
		}
	}
}

// ── Event decoding ───────────────────────────────────────────────────────────

func (s *Store) onProductCreated(ev Event) {
	if p, ok := s.decodeProduct(ev); ok {
		s.ApplyProductCreated(p)
	}
}

func (s *Store) onProductUpdated(ev Event) {
	if p, ok := s.decodeProduct(ev); ok {
		s.ApplyProductUpdated(p)
	}
}

func (s *Store) onProductDeleted(ev Event) {
	if p, ok := s.decodeProduct(ev); ok {
		s.ApplyProductDeleted(p.ID)
	}
}

func (s *Store) onOrderCreated(ev Event) {
	if o, ok := s.decodeOrder(ev); ok {
		s.ApplyOrderCreated(o)
	}
}

func (s *Store) onOrderStatusUpdated(ev Event) {
	if o, ok := s.decodeOrder(ev); ok {
		s.ApplyOrderStatusUpdated(o)
	}
}

func (s *Store) onNotification(ev Event) {
	var payload notificationPayload
	if err := json.Unmarshal(ev.Data, &payload); err != nil {
		s.log.Warn().Err(err).Str("kind", ev.Kind).Msg("malformed notification payload dropped")
		return
	}
	s.ApplyNotification(ev.Kind, payload.Message, payload.Severity, payload.Data)
}

func (s *Store) decodeProduct(ev Event) (Product, bool) {
	var p Product
	if err := json.Unmarshal(ev.Data, &p); err != nil || p.ID == "" {
		s.log.Warn().Err(err).Str("kind", ev.Kind).Msg("malformed product payload dropped")
		return Product{}, false
	}
	return p, true
}

func (s *Store) decodeOrder(ev Event) (Order, bool) {
	var o Order
	if err := json.Unmarshal(ev.Data, &o); err != nil || o.ID == "" {
		s.log.Warn().Err(err).Str("kind", ev.Kind).Msg("malformed order payload dropped")
		return Order{}, false
	}
	return o, true
}
