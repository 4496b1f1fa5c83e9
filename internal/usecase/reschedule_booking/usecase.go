package reschedule_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/tutor-booking-service/internal/access"
	"github.com/m04kA/tutor-booking-service/internal/domain"
	bookingRepo "github.com/m04kA/tutor-booking-service/internal/infra/storage/booking"
	"github.com/m04kA/tutor-booking-service/internal/notify"
	"github.com/m04kA/tutor-booking-service/internal/usecase/validation"
)

const operation = "reschedule"

// UseCase use case переноса бронирования туристом
type UseCase struct {
	bookingRepo BookingRepository
	notifier    Notifier
	txManager   TransactionManager
	validator   *validation.Validator
	policy      domain.ReschedulePolicy
	counter     OperationCounter
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	notifier Notifier,
	txManager TransactionManager,
	validator *validation.Validator,
	policy domain.ReschedulePolicy,
	counter OperationCounter,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		notifier:    notifier,
		txManager:   txManager,
		validator:   validator,
		policy:      policy,
		counter:     counter,
		logger:      logger,
	}
}

// Execute выполняет use case переноса
// Замена вариантов, удаление ответа и сброс статуса выполняются в одной транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RescheduleBooking: tourist=%s, booking=%s, options=%d", req.Caller.ID, req.BookingID, len(req.Options))

	// 1. Переносить может только турист
	if d := access.RequireRole(req.Caller, domain.RoleTourist); !d.Allowed {
		uc.logger.Warn("RescheduleBooking: forbidden for caller=%s role=%s: %s", req.Caller.ID, req.Caller.Role, d.Reason)
		uc.count("forbidden")
		return nil, fmt.Errorf("%w: %s", ErrForbidden, d.Reason)
	}

	// 2. Валидация до любых изменений
	bookingID, options, err := uc.validateRequest(req)
	if err != nil {
		uc.logger.Warn("RescheduleBooking: validation failed: %v", err)
		uc.count("invalid")
		return nil, err
	}

	// 3. Владение бронированием
	booking, err := uc.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, uc.repoError("get booking", bookingID.String(), err)
	}

	if d := access.CanReschedule(req.Caller, booking); !d.Allowed {
		uc.logger.Warn("RescheduleBooking: tourist=%s does not own booking=%s", req.Caller.ID, booking.ID)
		uc.count("forbidden")
		return nil, fmt.Errorf("%w: %s", ErrForbidden, d.Reason)
	}

	if !uc.policy.Allows(booking.Status) {
		return nil, uc.notAllowed(booking)
	}

	// 4. Замена набора вариантов под блокировкой строки
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		locked, err := uc.bookingRepo.GetByID(txCtx, bookingID)
		if err != nil {
			return err
		}
		if !uc.policy.Allows(locked.Status) {
			booking = locked
			return ErrRescheduleNotAllowed
		}

		if err := uc.bookingRepo.ReplaceOptions(txCtx, bookingID, options, req.Message); err != nil {
			return err
		}

		updated, err := uc.bookingRepo.GetByID(txCtx, bookingID)
		if err != nil {
			return err
		}
		booking = updated
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrRescheduleNotAllowed):
			return nil, uc.notAllowed(booking)
		case errors.Is(err, bookingRepo.ErrDuplicatePending):
			uc.logger.Warn("RescheduleBooking: tourist=%s already has a pending booking for course=%s", req.Caller.ID, booking.CourseID)
			uc.count("conflict")
			return nil, ErrDuplicatePendingBooking
		default:
			return nil, uc.repoError("replace options", bookingID.String(), err)
		}
	}

	uc.logger.Info("RescheduleBooking: booking id=%s reopened with %d options", booking.ID, len(booking.Options))
	uc.count("success")

	uc.notifier.Notify(ctx, notify.BookingRescheduled(booking))

	return &Response{Booking: booking}, nil
}

func (uc *UseCase) notAllowed(booking *domain.Booking) error {
	uc.logger.Warn("RescheduleBooking: booking id=%s in status %s cannot be rescheduled", booking.ID, booking.Status)
	uc.count("conflict")
	return fmt.Errorf("%w: status %s", ErrRescheduleNotAllowed, booking.Status)
}

func (uc *UseCase) repoError(step, bookingID string, err error) error {
	if errors.Is(err, bookingRepo.ErrBookingNotFound) {
		uc.logger.Warn("RescheduleBooking: booking id=%s not found", bookingID)
		uc.count("not_found")
		return ErrBookingNotFound
	}
	uc.logger.Error("RescheduleBooking: failed to %s id=%s: %v", step, bookingID, err)
	uc.count("error")
	return fmt.Errorf("%w: failed to %s: %w", ErrInternal, step, err)
}

func (uc *UseCase) count(result string) {
	if uc.counter != nil {
		uc.counter.IncBookingOperation(operation, result)
	}
}
