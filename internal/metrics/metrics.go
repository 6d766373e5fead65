package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shop_service_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "shop_service_http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path", "status"},
	)

	orderOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shop_service_order_operations_total",
			Help: "Total number of order operations",
		},
		[]string{"operation", "status"},
	)

	// Notification and gateway faults are absorbed by the checkout flow, so this
	// counter is the only place they stay visible besides the logs.
	absorbedFaults = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shop_service_absorbed_faults_total",
			Help: "Faults swallowed by design (notification sends, gateway auth)",
		},
		[]string{"channel"},
	)
)

func RecordOrderOperation(operation string, success bool) {
	status := "success"
	if !success {
		status = "error"
	}
	orderOperations.WithLabelValues(operation, status).Inc()
}

func RecordAbsorbedFault(channel string) {
	absorbedFaults.WithLabelValues(channel).Inc()
}
