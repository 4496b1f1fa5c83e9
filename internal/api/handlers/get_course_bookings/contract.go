package get_course_bookings

import (
	"context"

	"github.com/m04kA/tutor-booking-service/internal/domain"
	"github.com/m04kA/tutor-booking-service/internal/service/bookings/models"
)

type BookingService interface {
	GetCourseBookings(ctx context.Context, caller domain.Caller, courseID string) (*models.BookingList, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
