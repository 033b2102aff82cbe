package notifier

import (
	"context"
	"sync"

	"github.com/mauv0809/courtside/internal/booking"
)

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	SendBookingNotificationFunc func(ctx context.Context, evt booking.BookingCreated, dryRun bool) error

	// Call records
	SendBookingNotificationCalls []SendBookingNotificationCall
}

// SendBookingNotificationCall holds the arguments for a call to SendBookingNotification.
type SendBookingNotificationCall struct {
	Event  booking.BookingCreated
	DryRun bool
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendBookingNotificationCalls = nil
}

func (m *Mock) SendBookingNotification(ctx context.Context, evt booking.BookingCreated, dryRun bool) error {
	m.mu.Lock()
	m.SendBookingNotificationCalls = append(m.SendBookingNotificationCalls, SendBookingNotificationCall{Event: evt, DryRun: dryRun})
	fn := m.SendBookingNotificationFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, evt, dryRun)
	}
	return nil
}
