package eventbus

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/tutor-booking-service/internal/domain"
	"github.com/m04kA/tutor-booking-service/pkg/logger"
)

type fakeWriter struct {
	messages []kafka.Message
	err      error
	closed   bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func TestPublishWritesKeyedEvent(t *testing.T) {
	w := &fakeWriter{}
	p := NewPublisher(w, "booking-notifications", logger.NewNop())

	bookingID := uuid.New()
	n := &domain.Notification{
		UserID:    "tourist-1",
		BookingID: &bookingID,
		Type:      domain.NotificationBookingConfirmed,
		Title:     "Booking confirmed",
		Message:   "Your booking has been confirmed",
	}
	require.NoError(t, p.Publish(context.Background(), n))
	require.Len(t, w.messages, 1)

	msg := w.messages[0]
	assert.Equal(t, "tourist-1", string(msg.Key))
	assert.Equal(t, headerEventType, msg.Headers[1].Key)
	assert.Equal(t, "BOOKING_CONFIRMED", string(msg.Headers[1].Value))

	var event NotificationEvent
	require.NoError(t, json.Unmarshal(msg.Value, &event))
	assert.Equal(t, n.ID.String(), event.ID)
	require.NotNil(t, event.BookingID)
	assert.Equal(t, bookingID.String(), *event.BookingID)

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestPublishWrapsWriterError(t *testing.T) {
	w := &fakeWriter{err: errors.New("broker unavailable")}
	p := NewPublisher(w, "booking-notifications", logger.NewNop())

	err := p.Publish(context.Background(), &domain.Notification{UserID: "u"})
	assert.ErrorIs(t, err, ErrPublish)
}
