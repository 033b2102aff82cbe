package booking_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/mauv0809/courtside/internal/apperr"
	"github.com/mauv0809/courtside/internal/booking"
	"github.com/mauv0809/courtside/internal/database"
	"github.com/mauv0809/courtside/internal/metrics"
	"github.com/mauv0809/courtside/internal/outbox"
	"github.com/mauv0809/courtside/internal/trainer"
	"github.com/mauv0809/courtside/internal/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

type testEnv struct {
	db          *sql.DB
	coordinator *booking.Coordinator
	trainers    trainer.TrainerStore
	metrics     *metrics.Mock
}

// setupTestEnv creates trainer "t1" with slots 10:00 and 11:00 on 2024-06-01.
func setupTestEnv(t *testing.T) (*testEnv, func()) {
	t.Helper()

	db, teardown, err := database.InitDB(":memory:", "", "")
	require.NoError(t, err)
	ctx := context.Background()

	users := user.New(db)
	trainers := trainer.New(db, users)
	_, err = users.CreateUser(ctx, "t1", user.RoleTrainer)
	require.NoError(t, err)
	_, err = trainers.CreateTrainer(ctx, trainer.NewTrainer{
		Username:  "t1",
		Name:      "Tina Trainer",
		Specialty: "Volleys",
		Availability: []trainer.SlotsForDate{
			{Date: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), TimeSlots: []string{"10:00", "11:00"}},
		},
	})
	require.NoError(t, err)

	metricsMock := metrics.NewMock()
	return &testEnv{
		db:          db,
		coordinator: booking.NewCoordinator(db, metricsMock),
		trainers:    trainers,
		metrics:     metricsMock,
	}, teardown
}

func (e *testEnv) count(t *testing.T, table string) int {
	t.Helper()
	var n int
	require.NoError(t, e.db.QueryRow("SELECT COUNT(*) FROM "+table).Scan(&n))
	return n
}

func TestBookTrainer_SecondBookingOfSlotFails(t *testing.T) {
	env, teardown := setupTestEnv(t)
	defer teardown()
	ctx := context.Background()

	b, err := env.coordinator.BookTrainer(ctx, "u1", "t1", "2024-06-01", "10:00")
	require.NoError(t, err)
	assert.Equal(t, booking.StatusPending, b.Status)
	assert.Equal(t, "10:00", b.TimeSlot)
	assert.Equal(t, "u1", b.Username)
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), b.Date)
	assert.NotEmpty(t, b.ID)

	tr, err := env.trainers.GetTrainerByUsername(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, tr.ID, b.TrainerID)
	slot, ok := tr.Slot("2024-06-01", "10:00")
	require.True(t, ok)
	assert.True(t, slot.IsBooked)
	assert.Equal(t, "u1", *slot.BookedBy)

	_, err = env.coordinator.BookTrainer(ctx, "u2", "t1", "2024-06-01", "10:00")
	assert.ErrorIs(t, err, apperr.ErrSlotUnavailable)

	assert.Equal(t, 1, env.count(t, "bookings"))
	assert.Equal(t, 2, env.metrics.BookingAttempts())
	assert.Equal(t, 1, env.metrics.BookingsCreated())
	assert.Equal(t, 1, env.metrics.BookingFailures("slot_unavailable"))
}

func TestBookTrainer_NoAvailabilityOnDate(t *testing.T) {
	env, teardown := setupTestEnv(t)
	defer teardown()

	_, err := env.coordinator.BookTrainer(context.Background(), "u1", "t1", "2024-06-02", "10:00")
	assert.ErrorIs(t, err, apperr.ErrNoAvailability)
	assert.NotErrorIs(t, err, apperr.ErrSlotUnavailable)
}

func TestBookTrainer_UnknownTrainer(t *testing.T) {
	env, teardown := setupTestEnv(t)
	defer teardown()

	_, err := env.coordinator.BookTrainer(context.Background(), "u1", "unknown", "2024-06-01", "10:00")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	assert.Equal(t, 1, env.metrics.BookingFailures("not_found"))
}

func TestBookTrainer_TrimsInput(t *testing.T) {
	env, teardown := setupTestEnv(t)
	defer teardown()

	b, err := env.coordinator.BookTrainer(context.Background(), " u1 ", " t1", "2024-06-01", " 10:00 ")
	require.NoError(t, err)
	assert.Equal(t, "u1", b.Username)
	assert.Equal(t, "10:00", b.TimeSlot)

	_, err = env.coordinator.BookTrainer(context.Background(), "u2", "t1", "2024-06-01", "   ")
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestBookTrainer_FailuresWriteNothing(t *testing.T) {
	env, teardown := setupTestEnv(t)
	defer teardown()
	ctx := context.Background()

	cases := []struct {
		name     string
		trainer  string
		date     string
		slot     string
		expected error
	}{
		{"unknown trainer", "ghost", "2024-06-01", "10:00", apperr.ErrNotFound},
		{"no availability", "t1", "2024-06-05", "10:00", apperr.ErrNoAvailability},
		{"unpublished slot", "t1", "2024-06-01", "18:00", apperr.ErrSlotUnavailable},
		{"invalid date", "t1", "June 1st", "10:00", apperr.ErrValidation},
		{"missing slot", "t1", "2024-06-01", "", apperr.ErrValidation},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := env.coordinator.BookTrainer(ctx, "u1", tc.trainer, tc.date, tc.slot)
			assert.ErrorIs(t, err, tc.expected)
			assert.Equal(t, 0, env.count(t, "bookings"))
			assert.Equal(t, 0, env.count(t, "outbox_events"))
		})
	}
}

func TestBookTrainer_WritesOutboxEvent(t *testing.T) {
	env, teardown := setupTestEnv(t)
	defer teardown()
	ctx := context.Background()

	b, err := env.coordinator.BookTrainer(ctx, "u1", "t1", "2024-06-01T18:30:00Z", "11:00")
	require.NoError(t, err)

	pending, err := outbox.NewStore(env.db).FetchPending(ctx, 10)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, outbox.EventBookingCreated, pending[0].Type)

	var evt booking.BookingCreated
	require.NoError(t, msgpack.Unmarshal(pending[0].Payload, &evt))
	assert.Equal(t, b.ID, evt.BookingID)
	assert.Equal(t, "u1", evt.Username)
	assert.Equal(t, "t1", evt.TrainerUsername)
	assert.Equal(t, "Tina Trainer", evt.TrainerName)
	assert.Equal(t, "2024-06-01", evt.Date)
	assert.Equal(t, "11:00", evt.TimeSlot)
}

func TestListBookingsForUser(t *testing.T) {
	env, teardown := setupTestEnv(t)
	defer teardown()
	ctx := context.Background()

	_, err := env.coordinator.BookTrainer(ctx, "u1", "t1", "2024-06-01", "11:00")
	require.NoError(t, err)
	_, err = env.coordinator.BookTrainer(ctx, "u1", "t1", "2024-06-01", "10:00")
	require.NoError(t, err)

	bookings, err := env.coordinator.ListBookingsForUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, bookings, 2)
	assert.Equal(t, "10:00", bookings[0].TimeSlot)
	assert.Equal(t, "11:00", bookings[1].TimeSlot)
	assert.Equal(t, "Tina Trainer", bookings[0].Trainer.Name)
	assert.Equal(t, "Volleys", bookings[0].Trainer.Specialty)
	assert.Equal(t, bookings[0].TrainerID, bookings[0].Trainer.ID)

	none, err := env.coordinator.ListBookingsForUser(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, none)
}
