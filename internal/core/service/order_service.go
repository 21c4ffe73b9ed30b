package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/bakehouse/storefront/internal/api/metrics"
	"github.com/bakehouse/storefront/internal/core/domain"
	"github.com/bakehouse/storefront/internal/core/ports"
)

type OrderService struct {
	repo      ports.OrderRepository
	carts     ports.CartRepository
	publisher ports.EventPublisher
	logger    zerolog.Logger
}

func NewOrderService(repo ports.OrderRepository, carts ports.CartRepository, publisher ports.EventPublisher, logger zerolog.Logger) *OrderService {
	return &OrderService{repo: repo, carts: carts, publisher: publisher, logger: logger}
}

// CreateOrder persists a new order, clears the customer's cart, and emits the
// realtime events: order_created to staff, plus notifications to staff and
// the ordering customer. Publishing happens strictly after the write commits
// and can never fail the request.
func (s *OrderService) CreateOrder(ctx context.Context, input ports.CreateOrderInput) (*domain.Order, error) {
	if len(input.Items) == 0 {
		return nil, domain.ErrEmptyOrder
	}

	now := time.Now().UTC()
	paymentMethod := input.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = "cash_on_delivery"
	}

	order := &domain.Order{
		UserID:          input.UserID,
		Items:           toOrderItems(input.Items),
		TotalPrice:      input.TotalPrice,
		ShippingAddress: input.ShippingAddress,
		Phone:           input.Phone,
		Status:          domain.StatusPending,
		PaymentMethod:   paymentMethod,
		Notes:           input.Notes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	created, err := s.repo.Create(ctx, order)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", input.UserID).Msg("failed to create order")
		return nil, err
	}

	// Cart clearing is best-effort: the order exists either way.
	if err := s.carts.Clear(ctx, input.UserID); err != nil {
		s.logger.Warn().Err(err).Str("user_id", input.UserID).Msg("failed to clear cart after order")
	}

	s.logger.Info().Str("order_id", created.ID).Str("user_id", input.UserID).Float64("total", created.TotalPrice).Msg("order created")
	metrics.OrdersCreatedTotal.WithLabelValues(created.PaymentMethod).Inc()

	s.publisher.OrderCreated(created)
	s.publisher.NotifyAdmin(
		fmt.Sprintf("New order received from %s", customerLabel(input)),
		"success",
		map[string]any{"order_id": created.ID},
	)
	s.publisher.NotifyCustomer(
		input.UserID,
		"Your order has been received! Waiting for confirmation.",
		"success",
		map[string]any{"order_id": created.ID},
	)

	return created, nil
}

// GetOrder retrieves a single order, enforcing that customers only see their
// own.
func (s *OrderService) GetOrder(ctx context.Context, input ports.GetOrderInput) (*domain.Order, error) {
	order, err := s.repo.FindByID(ctx, input.OrderID)
	if err != nil {
		return nil, err
	}
	if input.Role != domain.RoleAdmin && order.UserID != input.UserID {
		return nil, domain.ErrForbidden
	}
	return order, nil
}

// ListOrders returns a page of orders. Customer callers are always scoped to
// their own orders regardless of the filter they pass.
func (s *OrderService) ListOrders(ctx context.Context, input ports.ListOrdersInput) (*ports.ListOrdersResult, error) {
	page := input.Page
	if page < 1 {
		page = 1
	}
	limit := input.Limit
	if limit <= 0 {
		limit = 20
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	filter := ports.ListOrdersFilter{
		Status:   input.Status,
		DateFrom: input.DateFrom,
		DateTo:   input.DateTo,
		Page:     page,
		Limit:    limit,
	}
	if input.Role != domain.RoleAdmin {
		filter.UserID = input.UserID
	}

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list orders")
		return nil, err
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &ports.ListOrdersResult{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

// UpdateStatus applies a staff status transition after validating it against
// the order state machine, then notifies staff and the owning customer.
func (s *OrderService) UpdateStatus(ctx context.Context, input ports.UpdateOrderStatusInput) (*domain.Order, error) {
	next := domain.OrderStatus(input.Status)
	if !next.IsValid() {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidTransition, input.Status)
	}

	order, err := s.repo.FindByID(ctx, input.OrderID)
	if err != nil {
		return nil, err
	}

	if !order.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w (from %s to %s)", domain.ErrInvalidTransition, order.Status, next)
	}

	updated, err := s.repo.UpdateStatus(ctx, input.OrderID, next, time.Now().UTC())
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", input.OrderID).Msg("failed to update order status")
		return nil, err
	}

	s.logger.Info().Str("order_id", updated.ID).Str("status", string(next)).Msg("order status updated")
	metrics.OrderStatusUpdatesTotal.WithLabelValues(string(next)).Inc()

	s.publisher.OrderStatusUpdated(updated)
	s.publisher.NotifyCustomer(
		updated.UserID,
		fmt.Sprintf("Order status updated to: %s", next),
		"info",
		map[string]any{"order_id": updated.ID, "status": string(next)},
	)

	return updated, nil
}

func toOrderItems(in []ports.OrderItemInput) []domain.OrderItem {
	out := make([]domain.OrderItem, len(in))
	for i, it := range in {
		subtotal := it.Subtotal
		if subtotal == 0 {
			subtotal = float64(it.Quantity) * it.Price
		}
		out[i] = domain.OrderItem{
			ProductID: it.ProductID,
			Name:      it.Name,
			Quantity:  it.Quantity,
			Price:     it.Price,
			Flavor:    it.Flavor,
			Size:      it.Size,
			EggOption: it.EggOption,
			Subtotal:  subtotal,
		}
	}
	return out
}

func customerLabel(input ports.CreateOrderInput) string {
	if input.UserName != "" {
		return input.UserName
	}
	return input.UserID
}
