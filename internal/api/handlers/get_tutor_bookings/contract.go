package get_tutor_bookings

import (
	"context"

	"github.com/m04kA/tutor-booking-service/internal/domain"
	"github.com/m04kA/tutor-booking-service/internal/service/bookings/models"
)

type BookingService interface {
	GetTutorBookings(ctx context.Context, caller domain.Caller) (*models.BookingList, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
