package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the bot's Prometheus collectors.
	Registry = prometheus.NewRegistry()

	applicationsReceived = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "technohunter",
			Subsystem: "intake",
			Name:      "applications_total",
			Help:      "Applications accepted into the store, by branch.",
		},
		[]string{"type"},
	)

	envelopesRejected = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "technohunter",
			Subsystem: "intake",
			Name:      "envelopes_rejected_total",
			Help:      "Mini-app payloads that failed to parse.",
		},
	)

	adminDeliveries = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "technohunter",
			Subsystem: "notifications",
			Name:      "deliveries_total",
			Help:      "Administrator notification attempts, by result.",
		},
		[]string{"result"},
	)
)

func init() {
	Registry.MustRegister(
		applicationsReceived,
		envelopesRejected,
		adminDeliveries,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler returns an HTTP handler exposing the registered Prometheus metrics.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

func RecordApplication(appType string) {
	applicationsReceived.WithLabelValues(appType).Inc()
}

func RecordRejectedEnvelope() {
	envelopesRejected.Inc()
}

// RecordDelivery counts one notification attempt to one administrator.
func RecordDelivery(err error) {
	result := "sent"
	if err != nil {
		result = "failed"
	}
	adminDeliveries.WithLabelValues(result).Inc()
}
