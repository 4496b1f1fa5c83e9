package respond_booking

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/tutor-booking-service/internal/domain"
	"github.com/m04kA/tutor-booking-service/internal/integrations/courseservice"
	"github.com/m04kA/tutor-booking-service/internal/integrations/userservice"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	SaveTutorResponse(ctx context.Context, resp *domain.TutorResponse) error
}

// CourseClient интерфейс клиента каталога курсов
type CourseClient interface {
	GetCourse(ctx context.Context, courseID string) (*courseservice.Course, error)
}

// UserClient интерфейс клиента UserService
type UserClient interface {
	GetUserWithGracefulDegradation(ctx context.Context, userID string) (*userservice.User, error)
}

// Notifier интерфейс рассылки уведомлений (best-effort)
type Notifier interface {
	Notify(ctx context.Context, n domain.Notification)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// OperationCounter счетчик бизнес-операций
type OperationCounter interface {
	IncBookingOperation(operation, result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
