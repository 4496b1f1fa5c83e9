package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestSplitTimeRange(t *testing.T) {
	tests := []struct {
		in         string
		start, end string
	}{
		{"09:00 - 10:00", "09:00", "10:00"},
		{"14:00", "14:00", ""},
		{" 8am - noon ", "8am", "noon"},
	}
	for _, tt := range tests {
		start, end := SplitTimeRange(tt.in)
		assert.Equal(t, tt.start, start, tt.in)
		assert.Equal(t, tt.end, end, tt.in)
	}

	opt := BookingOption{StartTime: "09:00", EndTime: "10:00"}
	start, end := SplitTimeRange(opt.TimeRange())
	assert.Equal(t, "09:00", start)
	assert.Equal(t, "10:00", end)
}

func TestBookingIsConsistent(t *testing.T) {
	optID := uuid.New()
	b := &Booking{Status: StatusPending, Options: []BookingOption{{ID: optID}}}
	assert.True(t, b.IsConsistent())

	b.Status = StatusConfirmed
	assert.False(t, b.IsConsistent(), "status without response")

	b.Response = &TutorResponse{Status: StatusConfirmed, SelectedOptionID: &optID}
	assert.True(t, b.IsConsistent())

	foreign := uuid.New()
	b.Response.SelectedOptionID = &foreign
	assert.False(t, b.IsConsistent(), "foreign selected option")

	b.Response = &TutorResponse{Status: StatusDeclined}
	assert.False(t, b.IsConsistent(), "status mismatch")
}

func TestReschedulePolicy(t *testing.T) {
	assert.True(t, PermissiveReschedulePolicy.Allows(StatusDeclined))
	assert.True(t, PermissiveReschedulePolicy.Allows(StatusConfirmed))

	strict := ReschedulePolicy{AllowConfirmed: true}
	assert.False(t, strict.Allows(StatusDeclined))
	assert.True(t, strict.Allows(StatusRescheduled))
	assert.True(t, strict.Allows(StatusPending))
}

func TestParseRole(t *testing.T) {
	r, ok := ParseRole("tutor")
	assert.True(t, ok)
	assert.Equal(t, RoleTutor, r)

	_, ok = ParseRole("ADMIN")
	assert.False(t, ok)
}

func TestStatusSets(t *testing.T) {
	assert.True(t, StatusPending.IsValid())
	assert.False(t, StatusPending.IsResponseStatus())
	for _, s := range ResponseStatuses {
		assert.True(t, s.IsResponseStatus())
	}
	assert.False(t, BookingStatus("CANCELLED").IsValid())
}
