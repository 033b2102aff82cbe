package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		BookingAttempts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "padel_booking_attempts_total",
			Help: "The total number of trainer booking requests received.",
		}),
		BookingsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "padel_bookings_created_total",
			Help: "The total number of trainer bookings created.",
		}),
		BookingFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "padel_booking_failures_total",
			Help: "The total number of failed trainer booking requests, by reason.",
		}, []string{"reason"}),
		BookingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "padel_booking_duration_seconds",
			Help:    "The duration of trainer booking requests.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
		SlackNotifSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "padel_slack_notifications_sent_total",
			Help: "The total number of Slack notifications successfully sent.",
		}),
		SlackNotifFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "padel_slack_notifications_failed_total",
			Help: "The total number of Slack notifications that failed to send.",
		}),
		OutboxPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "padel_outbox_events_published_total",
			Help: "The total number of outbox events published.",
		}),
		OutboxFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "padel_outbox_events_failed_total",
			Help: "The total number of outbox publish attempts that failed.",
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "padel_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.BookingAttempts,
		s.BookingsCreated,
		s.BookingFailures,
		s.BookingDuration,
		s.SlackNotifSent,
		s.SlackNotifFailed,
		s.OutboxPublished,
		s.OutboxFailed,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncBookingAttempts() {
	s.BookingAttempts.Inc()
}

func (s *Service) IncBookingsCreated() {
	s.BookingsCreated.Inc()
}

func (s *Service) IncBookingFailures(reason string) {
	s.BookingFailures.WithLabelValues(reason).Inc()
}

func (s *Service) ObserveBookingDuration(duration float64) {
	s.BookingDuration.Observe(duration)
}

func (s *Service) IncSlackNotifSent() {
	s.SlackNotifSent.Inc()
}

func (s *Service) IncSlackNotifFailed() {
	s.SlackNotifFailed.Inc()
}

func (s *Service) IncOutboxPublished() {
	s.OutboxPublished.Inc()
}

func (s *Service) IncOutboxFailed() {
	s.OutboxFailed.Inc()
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
