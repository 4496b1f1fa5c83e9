package create_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/m04kA/tutor-booking-service/internal/access"
	"github.com/m04kA/tutor-booking-service/internal/domain"
	bookingRepo "github.com/m04kA/tutor-booking-service/internal/infra/storage/booking"
	courseClient "github.com/m04kA/tutor-booking-service/internal/integrations/courseservice"
	"github.com/m04kA/tutor-booking-service/internal/notify"
	"github.com/m04kA/tutor-booking-service/internal/usecase/validation"
)

const operation = "create"

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	courseClient CourseClient
	notifier     Notifier
	txManager    TransactionManager
	validator    *validation.Validator
	counter      OperationCounter
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	courseClient CourseClient,
	notifier Notifier,
	txManager TransactionManager,
	validator *validation.Validator,
	counter OperationCounter,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		courseClient: courseClient,
		notifier:     notifier,
		txManager:    txManager,
		validator:    validator,
		counter:      counter,
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования
// Проверка дубликата и запись выполняются в одной сериализуемой транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: tourist=%s, course=%s, options=%d", req.Caller.ID, req.CourseID, len(req.Options))

	// 1. Проверяем роль
	if d := access.CanCreateBooking(req.Caller); !d.Allowed {
		uc.logger.Warn("CreateBooking: forbidden for caller=%s role=%s: %s", req.Caller.ID, req.Caller.Role, d.Reason)
		uc.count("forbidden")
		return nil, fmt.Errorf("%w: %s", ErrForbidden, d.Reason)
	}

	// 2. Валидация до любых обращений к хранилищу
	options, err := uc.validateRequest(req)
	if err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		uc.count("invalid")
		return nil, err
	}
	courseID := strings.TrimSpace(req.CourseID)

	// 3. Курс должен существовать в каталоге
	course, err := uc.courseClient.GetCourse(ctx, courseID)
	if err != nil {
		if errors.Is(err, courseClient.ErrCourseNotFound) {
			uc.logger.Warn("CreateBooking: course id=%s not found", courseID)
			uc.count("not_found")
			return nil, ErrCourseNotFound
		}
		uc.logger.Error("CreateBooking: failed to get course id=%s: %v", courseID, err)
		uc.count("error")
		return nil, fmt.Errorf("%w: failed to get course: %w", ErrInternal, err)
	}

	var created *domain.Booking

	// 4. Проверка дубликата и запись в одной транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		exists, err := uc.bookingRepo.ExistsPending(txCtx, req.Caller.ID, courseID)
		if err != nil {
			return fmt.Errorf("%w: failed to check pending bookings: %w", ErrInternal, err)
		}
		if exists {
			return ErrDuplicatePendingBooking
		}

		booking := &domain.Booking{
			ID:          uuid.New(),
			CourseID:    course.ID,
			TouristID:   req.Caller.ID,
			TutorID:     course.TutorID,
			CourseTitle: course.Title,
			Message:     req.Message,
			Status:      domain.StatusPending,
			Options:     cloneOptions(options),
		}

		if err := uc.bookingRepo.Create(txCtx, booking); err != nil {
			if errors.Is(err, bookingRepo.ErrDuplicatePending) {
				return ErrDuplicatePendingBooking
			}
			return fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
		}

		created = booking
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrDuplicatePendingBooking):
			uc.logger.Warn("CreateBooking: tourist=%s already has a pending booking for course=%s", req.Caller.ID, courseID)
			uc.count("conflict")
		default:
			uc.logger.Error("CreateBooking: transaction failed for tourist=%s course=%s: %v", req.Caller.ID, courseID, err)
			uc.count("error")
			if !errors.Is(err, ErrInternal) {
				err = fmt.Errorf("%w: %w", ErrInternal, err)
			}
		}
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%s", created.ID)
	uc.count("success")

	// 5. Уведомление после фиксации, ошибки доставки не влияют на результат
	uc.notifier.Notify(ctx, notify.BookingCreated(created))

	return &Response{
		Booking: created,
		Course:  course.ToDomain(),
	}, nil
}

func (uc *UseCase) count(result string) {
	if uc.counter != nil {
		uc.counter.IncBookingOperation(operation, result)
	}
}

// cloneOptions копия набора, чтобы повтор транзакции начинался с исходных данных
func cloneOptions(options []domain.BookingOption) []domain.BookingOption {
	return append([]domain.BookingOption(nil), options...)
}
