// Package metrics defines and registers all custom Prometheus metrics for the
// storefront API. It is the single source of truth for metric names, labels,
// and help strings. Metrics are registered with the default registry via
// promauto and exposed through the /metrics endpoint.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "storefront"

// ── Realtime metrics ──────────────────────────────────────────────────────────

// RealtimeConnectionsActive tracks the number of live websocket connections.
var RealtimeConnectionsActive = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "realtime_connections_active",
		Help:      "Current number of live realtime connections.",
	},
)

// RealtimeEventsPublishedTotal counts events handed to the hub for fan-out.
// Label:
//   - kind: the event kind (e.g. "product_created", "order_status_updated")
var RealtimeEventsPublishedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "realtime_events_published_total",
		Help:      "Total number of domain events published to the hub, by kind.",
	},
	[]string{"kind"},
)

// RealtimeDeliveriesTotal counts per-connection deliveries.
// Label:
//   - kind: the event kind
var RealtimeDeliveriesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "realtime_deliveries_total",
		Help:      "Total number of events delivered to individual connections, by kind.",
	},
	[]string{"kind"},
)

// RealtimeDeliveryErrorsTotal counts deliveries dropped because a connection
// was dead or too slow to drain its send buffer.
var RealtimeDeliveryErrorsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "realtime_delivery_errors_total",
		Help:      "Total number of deliveries dropped due to dead or slow connections.",
	},
)

// ── Order metrics ─────────────────────────────────────────────────────────────

// OrdersCreatedTotal counts newly placed orders.
// Label:
//   - payment_method: e.g. "cash_on_delivery"
var OrdersCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_created_total",
		Help:      "Total number of orders placed, by payment method.",
	},
	[]string{"payment_method"},
)

// OrderStatusUpdatesTotal counts staff status transitions.
// Label:
//   - status: the status the order moved to
var OrderStatusUpdatesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "order_status_updates_total",
		Help:      "Total number of order status transitions, by target status.",
	},
	[]string{"status"},
)
