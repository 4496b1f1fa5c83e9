package reschedule_booking

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/tutor-booking-service/internal/domain"
	"github.com/m04kA/tutor-booking-service/internal/infra/storage/booking/bookingtest"
	"github.com/m04kA/tutor-booking-service/internal/usecase/usecasetest"
	"github.com/m04kA/tutor-booking-service/internal/usecase/validation"
	"github.com/m04kA/tutor-booking-service/pkg/logger"
	"github.com/m04kA/tutor-booking-service/pkg/ptr"
)

var (
	owner   = domain.Caller{ID: "tourist-1", Role: domain.RoleTourist}
	another = domain.Caller{ID: "tourist-2", Role: domain.RoleTourist}
	tutor   = domain.Caller{ID: "tutor-1", Role: domain.RoleTutor}
)

type fixture struct {
	uc      *UseCase
	store   *bookingtest.Store
	sent    *usecasetest.Notifications
	counter *usecasetest.Counter
	booking *domain.Booking
}

// newFixture бронирование с двумя вариантами и подтверждением тьютора
func newFixture(t *testing.T, policy domain.ReschedulePolicy) *fixture {
	t.Helper()
	ctx := context.Background()

	store := bookingtest.NewStore()
	sent := &usecasetest.Notifications{}
	counter := &usecasetest.Counter{}

	booking := seedBooking(t, store, "course-1")
	require.NoError(t, store.SaveTutorResponse(ctx, &domain.TutorResponse{
		BookingID:        booking.ID,
		Status:           domain.StatusConfirmed,
		SelectedOptionID: ptr.Ptr(booking.Options[0].ID),
	}))

	return &fixture{
		uc:      NewUseCase(store, sent, store, validation.New(10), policy, counter, logger.NewNop()),
		store:   store,
		sent:    sent,
		counter: counter,
		booking: booking,
	}
}

func seedBooking(t *testing.T, store *bookingtest.Store, courseID string) *domain.Booking {
	t.Helper()

	id := uuid.New()
	booking := &domain.Booking{
		ID:          id,
		CourseID:    courseID,
		TouristID:   owner.ID,
		TutorID:     tutor.ID,
		CourseTitle: "Pottery",
		Message:     ptr.Ptr("first message"),
		Status:      domain.StatusPending,
		Options: []domain.BookingOption{
			{ID: uuid.New(), BookingID: id, Position: 0, Date: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), StartTime: "09:00", EndTime: "10:00"},
			{ID: uuid.New(), BookingID: id, Position: 1, Date: time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC), StartTime: "09:00", EndTime: "10:00"},
		},
	}
	require.NoError(t, store.Create(context.Background(), booking))
	return booking
}

func (f *fixture) stored(t *testing.T) *domain.Booking {
	t.Helper()
	b, err := f.store.GetByID(context.Background(), f.booking.ID)
	require.NoError(t, err)
	return b
}

func threeOptions() []validation.OptionInput {
	return []validation.OptionInput{
		{Date: "2025-06-05", StartTime: "14:00", EndTime: "15:00"},
		{Date: "2025-06-06", StartTime: "14:00", EndTime: "15:00"},
		{Date: "2025-06-07", StartTime: "16:00", EndTime: "17:00"},
	}
}

func optionIDs(b *domain.Booking) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(b.Options))
	for _, o := range b.Options {
		ids = append(ids, o.ID)
	}
	return ids
}

func TestExecuteReplacesOptionsAndResetsState(t *testing.T) {
	f := newFixture(t, domain.PermissiveReschedulePolicy)
	before := f.stored(t)
	require.Equal(t, domain.StatusConfirmed, before.Status)

	resp, err := f.uc.Execute(context.Background(), &Request{
		Caller:    owner,
		BookingID: f.booking.ID.String(),
		Message:   ptr.Ptr("new dates"),
		Options:   threeOptions(),
	})
	require.NoError(t, err)

	after := f.stored(t)
	assert.Equal(t, domain.StatusPending, after.Status)
	assert.Nil(t, after.Response)
	require.Len(t, after.Options, 3)
	for _, old := range optionIDs(before) {
		assert.NotContains(t, optionIDs(after), old)
	}
	assert.Equal(t, "2025-06-07", after.Options[2].Date.Format(domain.DateFormat))
	assert.Equal(t, "16:00", after.Options[2].StartTime)
	require.NotNil(t, after.Message)
	assert.Equal(t, "new dates", *after.Message)
	assert.True(t, after.IsConsistent())

	assert.Equal(t, after.Options, resp.Booking.Options)

	n := f.sent.Last()
	assert.Equal(t, tutor.ID, n.UserID)
	assert.Equal(t, domain.NotificationBookingRescheduled, n.Type)
	assert.Equal(t, 1, f.counter.Get(operation, "success"))
}

func TestExecuteKeepsMessageWhenOmitted(t *testing.T) {
	f := newFixture(t, domain.PermissiveReschedulePolicy)

	_, err := f.uc.Execute(context.Background(), &Request{
		Caller: owner, BookingID: f.booking.ID.String(), Options: threeOptions(),
	})
	require.NoError(t, err)

	require.NotNil(t, f.stored(t).Message)
	assert.Equal(t, "first message", *f.stored(t).Message)
}

func TestExecuteLeavesNoPartialStateOnFailure(t *testing.T) {
	points := []string{
		bookingtest.FailDeleteOptions,
		bookingtest.FailInsertOptions,
		bookingtest.FailResetStatus,
	}

	for _, point := range points {
		t.Run(point, func(t *testing.T) {
			f := newFixture(t, domain.PermissiveReschedulePolicy)
			before := f.stored(t)
			f.store.FailOn(point, nil)

			_, err := f.uc.Execute(context.Background(), &Request{
				Caller: owner, BookingID: f.booking.ID.String(), Options: threeOptions(),
			})
			require.ErrorIs(t, err, ErrInternal)

			f.store.ClearFailures()
			after := f.stored(t)
			assert.Equal(t, before.Status, after.Status)
			assert.Equal(t, optionIDs(before), optionIDs(after))
			require.NotNil(t, after.Response)
			assert.Equal(t, domain.StatusConfirmed, after.Response.Status)
			assert.Empty(t, f.sent.Sent())
			assert.Equal(t, 1, f.counter.Get(operation, "error"))
		})
	}
}

func TestExecuteForbidden(t *testing.T) {
	tests := []struct {
		name   string
		caller domain.Caller
	}{
		{name: "another tourist", caller: another},
		{name: "tutor", caller: tutor},
		{name: "anonymous", caller: domain.Caller{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, domain.PermissiveReschedulePolicy)
			before := f.stored(t)

			_, err := f.uc.Execute(context.Background(), &Request{
				Caller: tt.caller, BookingID: f.booking.ID.String(), Options: threeOptions(),
			})
			require.ErrorIs(t, err, ErrForbidden)

			after := f.stored(t)
			assert.Equal(t, optionIDs(before), optionIDs(after))
			assert.Equal(t, domain.StatusConfirmed, after.Status)
		})
	}
}

func TestExecuteInvalidInput(t *testing.T) {
	tests := []struct {
		name    string
		options []validation.OptionInput
	}{
		{name: "no options", options: nil},
		{name: "bad date", options: []validation.OptionInput{{Date: "5 June", StartTime: "14:00", EndTime: "15:00"}}},
		{name: "blank end time", options: []validation.OptionInput{{Date: "2025-06-05", StartTime: "14:00", EndTime: " "}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, domain.PermissiveReschedulePolicy)
			commits := f.store.Commits()

			_, err := f.uc.Execute(context.Background(), &Request{
				Caller: owner, BookingID: f.booking.ID.String(), Options: tt.options,
			})
			require.ErrorIs(t, err, ErrInvalidInput)
			assert.Equal(t, commits, f.store.Commits())
			assert.Len(t, f.stored(t).Options, 2)
		})
	}
}

func TestExecuteBookingNotFound(t *testing.T) {
	f := newFixture(t, domain.PermissiveReschedulePolicy)

	_, err := f.uc.Execute(context.Background(), &Request{
		Caller: owner, BookingID: uuid.NewString(), Options: threeOptions(),
	})
	require.ErrorIs(t, err, ErrBookingNotFound)
}

func TestExecuteHonoursStrictPolicy(t *testing.T) {
	f := newFixture(t, domain.ReschedulePolicy{AllowConfirmed: false, AllowDeclined: true})

	_, err := f.uc.Execute(context.Background(), &Request{
		Caller: owner, BookingID: f.booking.ID.String(), Options: threeOptions(),
	})
	require.ErrorIs(t, err, ErrRescheduleNotAllowed)
	assert.Equal(t, domain.StatusConfirmed, f.stored(t).Status)
	assert.Empty(t, f.sent.Sent())
}

func TestExecuteRejectsSecondPendingForCourse(t *testing.T) {
	f := newFixture(t, domain.PermissiveReschedulePolicy)
	seedBooking(t, f.store, "course-1")

	_, err := f.uc.Execute(context.Background(), &Request{
		Caller: owner, BookingID: f.booking.ID.String(), Options: threeOptions(),
	})
	require.ErrorIs(t, err, ErrDuplicatePendingBooking)
	assert.Equal(t, domain.StatusConfirmed, f.stored(t).Status)
}
