package notifier

import (
	"context"

	"github.com/mauv0809/courtside/internal/booking"
)

// Notifier tells the club about booking events.
// This decouples the rest of the application from the specific notification provider (e.g., Slack).
type Notifier interface {
	SendBookingNotification(ctx context.Context, evt booking.BookingCreated, dryRun bool) error
}
