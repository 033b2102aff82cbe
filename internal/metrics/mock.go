package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu               sync.Mutex
	bookingAttempts  int
	bookingsCreated  int
	bookingFailures  map[string]int
	bookingDurations []float64
	slackNotifSent   int
	slackNotifFailed int
	outboxPublished  int
	outboxFailed     int
	startupTime      float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		bookingFailures:  make(map[string]int),
		bookingDurations: make([]float64, 0),
	}
}

func (m *Mock) IncBookingAttempts() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bookingAttempts++
}

func (m *Mock) IncBookingsCreated() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bookingsCreated++
}

func (m *Mock) IncBookingFailures(reason string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bookingFailures[reason]++
}

func (m *Mock) ObserveBookingDuration(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bookingDurations = append(m.bookingDurations, duration)
}

func (m *Mock) IncSlackNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifSent++
}

func (m *Mock) IncSlackNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifFailed++
}

func (m *Mock) IncOutboxPublished() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.outboxPublished++
}

func (m *Mock) IncOutboxFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.outboxFailed++
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// BookingAttempts returns the number of times IncBookingAttempts was called.
func (m *Mock) BookingAttempts() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.bookingAttempts
}

// BookingsCreated returns the number of times IncBookingsCreated was called.
func (m *Mock) BookingsCreated() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.bookingsCreated
}

// BookingFailures returns the number of failures recorded for reason.
func (m *Mock) BookingFailures(reason string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.bookingFailures[reason]
}

// SlackNotifSent returns the number of times IncSlackNotifSent was called.
func (m *Mock) SlackNotifSent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifSent
}

// SlackNotifFailed returns the number of times IncSlackNotifFailed was called.
func (m *Mock) SlackNotifFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifFailed
}

// OutboxPublished returns the number of times IncOutboxPublished was called.
func (m *Mock) OutboxPublished() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.outboxPublished
}

// OutboxFailed returns the number of times IncOutboxFailed was called.
func (m *Mock) OutboxFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.outboxFailed
}
