package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/bakehouse/storefront/internal/core/domain"
	"github.com/bakehouse/storefront/internal/core/ports"
)

type stubOrderRepo struct {
	orders map[string]*domain.Order
	nextID int
}

func newStubOrderRepo() *stubOrderRepo {
	return &stubOrderRepo{orders: make(map[string]*domain.Order)}
}

func cloneOrder(o *domain.Order) *domain.Order {
	if o == nil {
		return nil
	}
	clone := *o
	clone.Items = append([]domain.OrderItem(nil), o.Items...)
	return &clone
}

func (r *stubOrderRepo) Create(_ context.Context, o *domain.Order) (*domain.Order, error) {
	r.nextID++
	copy := cloneOrder(o)
	copy.ID = fmt.Sprintf("order-%d", r.nextID)
	r.orders[copy.ID] = cloneOrder(copy)
	return copy, nil
}

func (r *stubOrderRepo) FindByID(_ context.Context, id string) (*domain.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	return cloneOrder(o), nil
}

func (r *stubOrderRepo) List(_ context.Context, filter ports.ListOrdersFilter) ([]*domain.Order, int64, error) {
	var out []*domain.Order
	for _, o := range r.orders {
		if filter.UserID != "" && o.UserID != filter.UserID {
			continue
		}
		if filter.Status != "" && string(o.Status) != filter.Status {
			continue
		}
		out = append(out, cloneOrder(o))
	}
	return out, int64(len(out)), nil
}

func (r *stubOrderRepo) UpdateStatus(_ context.Context, id string, status domain.OrderStatus, at time.Time) (*domain.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	o.Status = status
	o.UpdatedAt = at
	return cloneOrder(o), nil
}

func (r *stubOrderRepo) StatsByUser(_ context.Context, userID string) (*ports.CustomerStats, error) {
	stats := &ports.CustomerStats{}
	for _, o := range r.orders {
		if o.UserID == userID {
			stats.TotalOrders++
			stats.TotalSpent += o.TotalPrice
		}
	}
	return stats, nil
}

type stubCartRepo struct {
	carts    map[string]*domain.Cart
	clearErr error
	cleared  []string
}

func newStubCartRepo() *stubCartRepo {
	return &stubCartRepo{carts: make(map[string]*domain.Cart)}
}

func (r *stubCartRepo) Get(_ context.Context, userID string) (*domain.Cart, error) {
	if c, ok := r.carts[userID]; ok {
		clone := *c
		clone.Items = append([]domain.CartItem(nil), c.Items...)
		return &clone, nil
	}
	return &domain.Cart{UserID: userID}, nil
}

func (r *stubCartRepo) Save(_ context.Context, cart *domain.Cart) error {
	clone := *cart
	clone.Items = append([]domain.CartItem(nil), cart.Items...)
	r.carts[cart.UserID] = &clone
	return nil
}

func (r *stubCartRepo) Clear(_ context.Context, userID string) error {
	if r.clearErr != nil {
		return r.clearErr
	}
	delete(r.carts, userID)
	r.cleared = append(r.cleared, userID)
	return nil
}

// recordingPublisher captures every publish call in order.
type recordingPublisher struct {
	calls []string
}

func (p *recordingPublisher) ProductCreated(prod *domain.Product) {
	p.calls = append(p.calls, "product_created:"+prod.ID)
}

func (p *recordingPublisher) ProductUpdated(prod *domain.Product) {
	p.calls = append(p.calls, "product_updated:"+prod.ID)
}

func (p *recordingPublisher) ProductDeleted(prod *domain.Product) {
	p.calls = append(p.calls, "product_deleted:"+prod.ID)
}

func (p *recordingPublisher) OrderCreated(o *domain.Order) {
	p.calls = append(p.calls, "order_created:"+o.ID)
}

func (p *recordingPublisher) OrderStatusUpdated(o *domain.Order) {
	p.calls = append(p.calls, fmt.Sprintf("order_status_updated:%s:%s", o.ID, o.Status))
}

func (p *recordingPublisher) NotifyAdmin(message, severity string, _ map[string]any) {
	p.calls = append(p.calls, fmt.Sprintf("notify_admin:%s:%s", severity, message))
}

func (p *recordingPublisher) NotifyCustomer(userID, message, severity string, _ map[string]any) {
	p.calls = append(p.calls, fmt.Sprintf("notify_customer:%s:%s:%s", userID, severity, message))
}

func newOrderFixture() (*OrderService, *stubOrderRepo, *stubCartRepo, *recordingPublisher) {
	repo := newStubOrderRepo()
	carts := newStubCartRepo()
	pub := &recordingPublisher{}
	svc := NewOrderService(repo, carts, pub, zerolog.Nop())
	return svc, repo, carts, pub
}

func sampleOrderInput(userID string) ports.CreateOrderInput {
	return ports.CreateOrderInput{
		UserID:   userID,
		UserName: "Alice",
		Items: []ports.OrderItemInput{
			{ProductID: "p1", Name: "Chocolate Cake", Quantity: 2, Price: 25},
		},
		TotalPrice:      50,
		ShippingAddress: "123 Baker Street",
		Phone:           "555-0101",
	}
}

func TestOrderService_CreateOrder(t *testing.T) {
	svc, _, carts, pub := newOrderFixture()
	carts.carts["u1"] = &domain.Cart{UserID: "u1", Items: []domain.CartItem{{ProductID: "p1", Quantity: 2}}}

	order, err := svc.CreateOrder(context.Background(), sampleOrderInput("u1"))
	if err != nil {
		t.Fatalf("CreateOrder returned error: %v", err)
	}
	if order.ID == "" {
		t.Fatalf("expected assigned order id")
	}
	if order.Status != domain.StatusPending {
		t.Fatalf("new order status = %s, want pending", order.Status)
	}
	if order.PaymentMethod != "cash_on_delivery" {
		t.Fatalf("expected default payment method, got %q", order.PaymentMethod)
	}

	if len(carts.cleared) != 1 || carts.cleared[0] != "u1" {
		t.Fatalf("expected cart cleared for u1, got %v", carts.cleared)
	}

	want := []string{
		"order_created:" + order.ID,
		"notify_admin:success:New order received from Alice",
		"notify_customer:u1:success:Your order has been received! Waiting for confirmation.",
	}
	if len(pub.calls) != len(want) {
		t.Fatalf("publish calls = %v, want %v", pub.calls, want)
	}
	for i := range want {
		if pub.calls[i] != want[i] {
			t.Fatalf("publish call %d = %q, want %q", i, pub.calls[i], want[i])
		}
	}
}

func TestOrderService_CreateOrder_Empty(t *testing.T) {
	svc, _, _, pub := newOrderFixture()

	if _, err := svc.CreateOrder(context.Background(), ports.CreateOrderInput{UserID: "u1"}); !errors.Is(err, domain.ErrEmptyOrder) {
		t.Fatalf("expected ErrEmptyOrder, got %v", err)
	}
	if len(pub.calls) != 0 {
		t.Fatalf("nothing may be published for a rejected order")
	}
}

func TestOrderService_CreateOrder_CartClearFailureIsNotFatal(t *testing.T) {
	svc, _, carts, pub := newOrderFixture()
	carts.clearErr = errors.New("redis down")

	order, err := svc.CreateOrder(context.Background(), sampleOrderInput("u1"))
	if err != nil {
		t.Fatalf("CreateOrder must succeed despite cart clear failure: %v", err)
	}
	if order == nil || len(pub.calls) == 0 {
		t.Fatalf("order must be created and published")
	}
}

func TestOrderService_GetOrder_Ownership(t *testing.T) {
	svc, repo, _, _ := newOrderFixture()
	repo.orders["o1"] = &domain.Order{ID: "o1", UserID: "u1", Status: domain.StatusPending}

	if _, err := svc.GetOrder(context.Background(), ports.GetOrderInput{OrderID: "o1", Role: domain.RoleCustomer, UserID: "u1"}); err != nil {
		t.Fatalf("owner must read own order: %v", err)
	}
	if _, err := svc.GetOrder(context.Background(), ports.GetOrderInput{OrderID: "o1", Role: domain.RoleAdmin, UserID: "staff"}); err != nil {
		t.Fatalf("admin must read any order: %v", err)
	}
	if _, err := svc.GetOrder(context.Background(), ports.GetOrderInput{OrderID: "o1", Role: domain.RoleCustomer, UserID: "u2"}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for foreign order, got %v", err)
	}
}

func TestOrderService_ListOrders_CustomerScoped(t *testing.T) {
	svc, repo, _, _ := newOrderFixture()
	repo.orders["o1"] = &domain.Order{ID: "o1", UserID: "u1"}
	repo.orders["o2"] = &domain.Order{ID: "o2", UserID: "u2"}

	result, err := svc.ListOrders(context.Background(), ports.ListOrdersInput{Role: domain.RoleCustomer, UserID: "u1"})
	if err != nil {
		t.Fatalf("ListOrders: %v", err)
	}
	if result.Total != 1 || len(result.Items) != 1 || result.Items[0].UserID != "u1" {
		t.Fatalf("customer list must be scoped to own orders, got %+v", result)
	}

	all, err := svc.ListOrders(context.Background(), ports.ListOrdersInput{Role: domain.RoleAdmin, UserID: "staff"})
	if err != nil {
		t.Fatalf("ListOrders admin: %v", err)
	}
	if all.Total != 2 {
		t.Fatalf("admin list must include all orders, got %d", all.Total)
	}
}

func TestOrderService_UpdateStatus(t *testing.T) {
	svc, repo, _, pub := newOrderFixture()
	repo.orders["o1"] = &domain.Order{ID: "o1", UserID: "u1", Status: domain.StatusPending}

	updated, err := svc.UpdateStatus(context.Background(), ports.UpdateOrderStatusInput{OrderID: "o1", Status: "accepted"})
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if updated.Status != domain.StatusAccepted {
		t.Fatalf("status = %s, want accepted", updated.Status)
	}

	want := []string{
		"order_status_updated:o1:accepted",
		"notify_customer:u1:info:Order status updated to: accepted",
	}
	if len(pub.calls) != len(want) || pub.calls[0] != want[0] || pub.calls[1] != want[1] {
		t.Fatalf("publish calls = %v, want %v", pub.calls, want)
	}
}

func TestOrderService_UpdateStatus_InvalidTransition(t *testing.T) {
	svc, repo, _, pub := newOrderFixture()
	repo.orders["o1"] = &domain.Order{ID: "o1", UserID: "u1", Status: domain.StatusPending}

	if _, err := svc.UpdateStatus(context.Background(), ports.UpdateOrderStatusInput{OrderID: "o1", Status: "completed"}); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition for pending->completed, got %v", err)
	}
	if _, err := svc.UpdateStatus(context.Background(), ports.UpdateOrderStatusInput{OrderID: "o1", Status: "shipped"}); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition for unknown status, got %v", err)
	}
	if len(pub.calls) != 0 {
		t.Fatalf("rejected transitions must not publish, got %v", pub.calls)
	}

	if got := repo.orders["o1"].Status; got != domain.StatusPending {
		t.Fatalf("order status must be unchanged, got %s", got)
	}
}

func TestOrderService_UpdateStatus_NotFound(t *testing.T) {
	svc, _, _, _ := newOrderFixture()

	if _, err := svc.UpdateStatus(context.Background(), ports.UpdateOrderStatusInput{OrderID: "missing", Status: "accepted"}); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}
