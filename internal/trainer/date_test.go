package trainer

import (
	"testing"
	"time"

	"github.com/mauv0809/courtside/internal/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	june1 := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	cases := map[string]time.Time{
		"2024-06-01":                june1,
		" 2024-06-01 ":              june1,
		"2024-06-01T23:59:00Z":      june1,
		"2024-06-02T01:00:00+02:00": june1,
	}
	for input, expected := range cases {
		got, err := ParseDate(input)
		require.NoError(t, err, input)
		assert.Equal(t, expected, got, input)
	}

	for _, input := range []string{"", "01/06/2024", "2024-13-01", "tomorrow"} {
		_, err := ParseDate(input)
		assert.ErrorIs(t, err, apperr.ErrValidation, input)
	}
}

func TestFormatDate(t *testing.T) {
	local := time.FixedZone("UTC+2", 2*60*60)
	assert.Equal(t, "2024-05-31", FormatDate(time.Date(2024, 6, 1, 1, 0, 0, 0, local)))
	assert.Equal(t, "2024-06-01", FormatDate(Day(time.Date(2024, 6, 1, 15, 30, 0, 0, time.UTC))))
}
