// Package metrics defines the Prometheus metrics of the studio functions.
// All metrics are registered with the default registry on package init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "studio"

// InvocationsTotal counts handled invocations.
// Labels:
//   - function: bookings, contact, orders or messages
//   - method: HTTP method of the event
//   - status_code: response status code
var InvocationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "invocations_total",
		Help:      "Total number of handled function invocations.",
	},
	[]string{"function", "method", "status_code"},
)

// InvocationDuration measures handler latency including database work.
var InvocationDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "invocation_duration_seconds",
		Help:      "Duration of function invocations.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"function"},
)

// OrderStatusTransitionsTotal counts committed order status changes.
// Labels:
//   - from: previous status
//   - to: new status
var OrderStatusTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "order_status_transitions_total",
		Help:      "Total number of order status changes.",
	},
	[]string{"from", "to"},
)

// ContactNotificationFailuresTotal counts contact notifications that could not be delivered.
var ContactNotificationFailuresTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "contact_notification_failures_total",
		Help:      "Total number of contact-form notification e-mails that failed to send.",
	},
)

// RecordOrderTransition counts a status change if from and to differ
func RecordOrderTransition(from, to string) {
	if from == to {
		return
	}
	OrderStatusTransitionsTotal.WithLabelValues(from, to).Inc()
}
