package outbox_test

import (
	"context"
	"errors"
	"testing"

	"github.com/mauv0809/courtside/internal/metrics"
	"github.com/mauv0809/courtside/internal/outbox"
	"github.com/mauv0809/courtside/internal/pubsub"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRelay_Run(t *testing.T) {
	ctx := context.Background()

	t.Run("publishes pending events once", func(t *testing.T) {
		store, teardown := setupTestStore(t)
		defer teardown()
		publisher := pubsub.NewMock()
		metricsMock := metrics.NewMock()
		relay := outbox.NewRelay(store, publisher, metricsMock)

		evt, err := store.Insert(ctx, outbox.EventBookingCreated, testPayload{BookingID: "b1"})
		require.NoError(t, err)

		published, err := relay.Run(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, published)
		require.Len(t, publisher.PublishCalls, 1)
		assert.Equal(t, "booking-created", publisher.PublishCalls[0].Topic)
		assert.Equal(t, evt.Payload, publisher.PublishCalls[0].Payload)
		assert.Equal(t, 1, metricsMock.OutboxPublished())

		published, err = relay.Run(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, published)
		assert.Len(t, publisher.PublishCalls, 1, "published events must not be sent again")
	})

	t.Run("failed events stay pending", func(t *testing.T) {
		store, teardown := setupTestStore(t)
		defer teardown()
		publisher := pubsub.NewMock()
		publisher.PublishFunc = func(ctx context.Context, topic string, payload []byte) error {
			return errors.New("broker down")
		}
		metricsMock := metrics.NewMock()
		relay := outbox.NewRelay(store, publisher, metricsMock)

		_, err := store.Insert(ctx, outbox.EventBookingCreated, testPayload{BookingID: "b1"})
		require.NoError(t, err)

		published, err := relay.Run(ctx)
		assert.Error(t, err)
		assert.Equal(t, 0, published)
		assert.Equal(t, 1, metricsMock.OutboxFailed())

		pending, err := store.FetchPending(ctx, 10)
		require.NoError(t, err)
		require.Len(t, pending, 1)
		assert.Equal(t, 1, pending[0].Attempts)

		publisher.PublishFunc = nil
		published, err = relay.Run(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, published)
	})
}

func TestSchedule_InvalidExpression(t *testing.T) {
	store, teardown := setupTestStore(t)
	defer teardown()

	_, err := outbox.Schedule("not a schedule", outbox.NewRelay(store, pubsub.NewMock(), metrics.NewMock()))
	assert.Error(t, err)
}
