package create_booking

import (
	"context"

	"github.com/m04kA/tutor-booking-service/internal/domain"
	"github.com/m04kA/tutor-booking-service/internal/integrations/courseservice"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	ExistsPending(ctx context.Context, touristID, courseID string) (bool, error)
}

// CourseClient интерфейс клиента каталога курсов
type CourseClient interface {
	GetCourse(ctx context.Context, courseID string) (*courseservice.Course, error)
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
