package realtime

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/bakehouse/storefront/internal/core/domain"
)

// hubFixture wires a hub with one staff connection and two customer
// connections (u1, u2).
type hubFixture struct {
	hub   *Hub
	staff *fakeSubscriber
	u1    *fakeSubscriber
	u2    *fakeSubscriber
}

func newHubFixture() *hubFixture {
	r := NewRegistry(zerolog.Nop())
	f := &hubFixture{
		staff: newFakeSubscriber("staff"),
		u1:    newFakeSubscriber("u1-conn"),
		u2:    newFakeSubscriber("u2-conn"),
	}
	r.Register(f.staff)
	r.Register(f.u1)
	r.Register(f.u2)
	r.Join("staff", Admins())
	r.Join("staff", Customer("admin-1"))
	r.Join("u1-conn", Customer("u1"))
	r.Join("u2-conn", Customer("u2"))
	f.hub = NewHub(r, zerolog.Nop())
	return f
}

func kinds(events []*Event) []Kind {
	out := make([]Kind, len(events))
	for i, ev := range events {
		out[i] = ev.Kind
	}
	return out
}

func TestHub_ProductEventsReachEveryone(t *testing.T) {
	f := newHubFixture()
	p := &domain.Product{ID: "p1", Name: "Tres Leches"}

	f.hub.ProductCreated(p)
	f.hub.ProductUpdated(p)
	f.hub.ProductDeleted(p)

	for name, sub := range map[string]*fakeSubscriber{"staff": f.staff, "u1": f.u1, "u2": f.u2} {
		got := kinds(sub.received())
		want := []Kind{KindProductCreated, KindProductUpdated, KindProductDeleted}
		if len(got) != len(want) {
			t.Fatalf("%s: expected %d events, got %d", name, len(want), len(got))
		}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("%s: event %d = %s, want %s", name, i, got[i], want[i])
			}
		}
	}
}

func TestHub_OrderCreatedReachesStaffOnly(t *testing.T) {
	f := newHubFixture()

	f.hub.OrderCreated(&domain.Order{ID: "o1", UserID: "u1"})

	if got := len(f.staff.received()); got != 1 {
		t.Fatalf("staff expected 1 event, got %d", got)
	}
	if len(f.u1.received()) != 0 || len(f.u2.received()) != 0 {
		t.Fatalf("customers must not see other customers' order_created")
	}
}

func TestHub_OrderStatusUpdatedReachesStaffAndOwner(t *testing.T) {
	f := newHubFixture()

	f.hub.OrderStatusUpdated(&domain.Order{ID: "o1", UserID: "u1", Status: domain.StatusAccepted})

	if got := len(f.staff.received()); got != 1 {
		t.Fatalf("staff expected 1 event, got %d", got)
	}
	if got := len(f.u1.received()); got != 1 {
		t.Fatalf("owner expected 1 event, got %d", got)
	}
	if got := len(f.u2.received()); got != 0 {
		t.Fatalf("non-owner expected 0 events, got %d", got)
	}
}

func TestHub_NotifyAdmin(t *testing.T) {
	f := newHubFixture()

	f.hub.NotifyAdmin("New order received from Alice", "success", map[string]any{"order_id": "o1"})

	events := f.staff.received()
	if len(events) != 1 {
		t.Fatalf("staff expected 1 notification, got %d", len(events))
	}
	n, ok := events[0].Data.(Notification)
	if !ok {
		t.Fatalf("expected Notification payload, got %T", events[0].Data)
	}
	if n.Message != "New order received from Alice" || n.Severity != "success" {
		t.Fatalf("unexpected notification: %+v", n)
	}
	if len(f.u1.received()) != 0 {
		t.Fatalf("customer must not see staff notifications")
	}
}

func TestHub_NotifyCustomerTargetsOneRoom(t *testing.T) {
	f := newHubFixture()

	f.hub.NotifyCustomer("u2", "Your order has been received! Waiting for confirmation.", "success", nil)

	if got := len(f.u2.received()); got != 1 {
		t.Fatalf("target customer expected 1 event, got %d", got)
	}
	if len(f.u1.received()) != 0 || len(f.staff.received()) != 0 {
		t.Fatalf("only the target customer's room may receive the notification")
	}
}

func TestHub_NotifyCustomerOffline(t *testing.T) {
	f := newHubFixture()

	// No connection ever joined u3's room; the event is simply dropped.
	f.hub.NotifyCustomer("u3", "hello", "info", nil)

	if len(f.staff.received()) != 0 || len(f.u1.received()) != 0 || len(f.u2.received()) != 0 {
		t.Fatalf("event for an offline customer must reach nobody")
	}
}
