package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	EventsReceivedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "posflow_webhook_events_received_total",
			Help: "Webhook events received on the inbound endpoint, by provider",
		},
		[]string{"provider"},
	)

	EventsRejectedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "posflow_webhook_events_rejected_total",
			Help: "Webhook events rejected before admission (bad signature or payload)",
		},
		[]string{"provider", "reason"},
	)

	EventsProcessedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "posflow_webhook_events_processed_total",
			Help: "Processed units of work by outcome (success, noop, retry)",
		},
		[]string{"provider", "outcome"},
	)

	EventProcessingDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "posflow_event_processing_duration_seconds",
			Help:    "Duration of one webhook unit of work, fetch and persistence included",
			Buckets: prometheus.DefBuckets,
		},
	)

	TicketsOpenedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "posflow_kitchen_tickets_opened_total",
			Help: "Kitchen tickets created for newly open orders",
		},
	)

	TicketsDeadTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "posflow_kitchen_tickets_dead_total",
			Help: "Kitchen tickets terminated for dead orders",
		},
	)

	DeadLetteredTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "posflow_webhook_events_dead_lettered_total",
			Help: "Events dropped to the dead-letter list after exhausting retries",
		},
	)
)

// Register registers all metrics with the default registry.
func Register() {
	prometheus.MustRegister(EventsReceivedTotal)
	prometheus.MustRegister(EventsRejectedTotal)
	prometheus.MustRegister(EventsProcessedTotal)
	prometheus.MustRegister(EventProcessingDuration)
	prometheus.MustRegister(TicketsOpenedTotal)
	prometheus.MustRegister(TicketsDeadTotal)
	prometheus.MustRegister(DeadLetteredTotal)
}
