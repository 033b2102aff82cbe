package trainer

import (
	"fmt"
	"strings"
	"time"

	"github.com/mauv0809/courtside/internal/apperr"
)

// DateLayout is the calendar-date format used for availability and bookings.
const DateLayout = "2006-01-02"

// ParseDate accepts YYYY-MM-DD or an RFC 3339 timestamp and returns midnight
// UTC of the corresponding UTC calendar date.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if d, err := time.Parse(DateLayout, value); err == nil {
		return d, nil
	}
	ts, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q must be YYYY-MM-DD", apperr.ErrValidation, value)
	}
	return Day(ts), nil
}

// Day truncates t to midnight UTC of its UTC calendar date.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// FormatDate renders the UTC calendar date of t as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}
