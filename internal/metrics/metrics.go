package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Contact API metrics
var (
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "nexora",
			Subsystem: "contact_api",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "status"},
	)

	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "nexora",
			Subsystem: "contact_api",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
		[]string{"method"},
	)

	MessagesSubmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "nexora",
			Subsystem: "contact_api",
			Name:      "messages_submitted_total",
			Help:      "Contact form submissions by result",
		},
		[]string{"result"},
	)

	MessagesDeleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "nexora",
			Subsystem: "contact_api",
			Name:      "messages_deleted_total",
			Help:      "Messages deleted by the admin",
		},
	)

	AdminLogins = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "nexora",
			Subsystem: "contact_api",
			Name:      "admin_logins_total",
			Help:      "Admin login attempts by result",
		},
		[]string{"result"},
	)
)

// Result labels shared by the counters above.
const (
	ResultSuccess = "success"
	ResultInvalid = "invalid"
	ResultError   = "error"
)
