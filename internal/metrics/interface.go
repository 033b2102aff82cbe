package metrics

// Metrics defines the interface for collecting application metrics.
// This decouples the application from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	IncBookingAttempts()
	IncBookingsCreated()
	IncBookingFailures(reason string)
	ObserveBookingDuration(duration float64)
	IncSlackNotifSent()
	IncSlackNotifFailed()
	IncOutboxPublished()
	IncOutboxFailed()
	SetStartupTime(duration float64)
}
