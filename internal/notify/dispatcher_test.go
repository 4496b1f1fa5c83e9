package notify

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/tutor-booking-service/internal/domain"
	"github.com/m04kA/tutor-booking-service/pkg/logger"
	"github.com/m04kA/tutor-booking-service/pkg/ptr"
)

type counter struct{ sinks []string }

func (c *counter) IncNotificationError(sink string) { c.sinks = append(c.sinks, sink) }

func TestDispatcherSwallowsSinkErrors(t *testing.T) {
	var delivered []domain.Notification
	ok := SenderFunc(func(_ context.Context, n *domain.Notification) error {
		delivered = append(delivered, *n)
		return nil
	})
	failing := SenderFunc(func(context.Context, *domain.Notification) error {
		return errors.New("sink down")
	})

	c := &counter{}
	d := NewDispatcher(logger.NewNop(), c,
		Target{Name: "kafka", Sender: failing},
		Target{Name: "store", Sender: ok},
	)

	d.Notify(context.Background(), domain.Notification{UserID: "tutor-1", Type: domain.NotificationBookingPending})

	require.Len(t, delivered, 1)
	assert.Equal(t, "tutor-1", delivered[0].UserID)
	assert.Equal(t, []string{"kafka"}, c.sinks)
}

func TestDispatcherGivesEachSinkOwnCopy(t *testing.T) {
	var seen []uuid.UUID
	mutate := SenderFunc(func(_ context.Context, n *domain.Notification) error {
		seen = append(seen, n.ID)
		n.ID = uuid.New()
		return nil
	})

	d := NewDispatcher(logger.NewNop(), nil, Target{Name: "a", Sender: mutate}, Target{Name: "b", Sender: mutate})
	d.Notify(context.Background(), domain.Notification{})

	require.Len(t, seen, 2)
	assert.Equal(t, uuid.Nil, seen[1])
}

func testBooking() *domain.Booking {
	return &domain.Booking{
		ID:          uuid.New(),
		TouristID:   "tourist-1",
		TutorID:     "tutor-1",
		CourseTitle: "Tea ceremony",
		Options: []domain.BookingOption{
			{ID: uuid.New(), Date: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), StartTime: "09:00", EndTime: "10:00"},
		},
	}
}

func TestTemplates(t *testing.T) {
	b := testBooking()

	created := BookingCreated(b)
	assert.Equal(t, "tutor-1", created.UserID)
	assert.Equal(t, domain.NotificationBookingPending, created.Type)
	assert.Equal(t, b.ID, *created.BookingID)

	confirmed := TutorResponded(b, &domain.TutorResponse{Status: domain.StatusConfirmed, SelectedOptionID: &b.Options[0].ID})
	assert.Equal(t, "tourist-1", confirmed.UserID)
	assert.Equal(t, domain.NotificationBookingConfirmed, confirmed.Type)
	assert.Contains(t, confirmed.Message, "2025-06-01, 09:00 - 10:00")

	declined := TutorResponded(b, &domain.TutorResponse{Status: domain.StatusDeclined, Message: ptr.Ptr("fully booked")})
	assert.Equal(t, domain.NotificationBookingDeclined, declined.Type)
	assert.Contains(t, declined.Message, "fully booked")

	requested := TutorResponded(b, &domain.TutorResponse{Status: domain.StatusRescheduled})
	assert.Equal(t, domain.NotificationBookingRescheduled, requested.Type)
	assert.Equal(t, "Reschedule requested", requested.Title)

	rescheduled := BookingRescheduled(b)
	assert.Equal(t, "tutor-1", rescheduled.UserID)
	assert.Equal(t, domain.NotificationBookingRescheduled, rescheduled.Type)
}
