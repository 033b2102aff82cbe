package metrics

import "github.com/prometheus/client_golang/prometheus"

// Service holds all the Prometheus metrics for the application.
type Service struct {
	BookingAttempts    prometheus.Counter
	BookingsCreated    prometheus.Counter
	BookingFailures    *prometheus.CounterVec
	BookingDuration    prometheus.Histogram
	SlackNotifSent     prometheus.Counter
	SlackNotifFailed   prometheus.Counter
	OutboxPublished    prometheus.Counter
	OutboxFailed       prometheus.Counter
	StartupTimeSeconds prometheus.Gauge
}
