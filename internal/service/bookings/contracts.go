package bookings

import (
	"context"

	"github.com/m04kA/tutor-booking-service/internal/domain"
	"github.com/m04kA/tutor-booking-service/internal/integrations/courseservice"
	"github.com/m04kA/tutor-booking-service/internal/integrations/userservice"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	ListByTourist(ctx context.Context, touristID string) ([]*domain.Booking, error)
	ListByTutor(ctx context.Context, tutorID string) ([]*domain.Booking, error)
	ListByCourse(ctx context.Context, courseID string) ([]*domain.Booking, error)
}

// CourseClient интерфейс клиента каталога курсов
type CourseClient interface {
	GetCourse(ctx context.Context, courseID string) (*courseservice.Course, error)
}

// UserClient интерфейс клиента UserService
type UserClient interface {
	GetUserWithGracefulDegradation(ctx context.Context, userID string) (*userservice.User, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
