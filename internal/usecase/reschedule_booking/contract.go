package reschedule_booking

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/tutor-booking-service/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	ReplaceOptions(ctx context.Context, bookingID uuid.UUID, options []domain.BookingOption, message *string) error
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
