package respond_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/tutor-booking-service/internal/access"
	"github.com/m04kA/tutor-booking-service/internal/domain"
	bookingRepo "github.com/m04kA/tutor-booking-service/internal/infra/storage/booking"
	courseClient "github.com/m04kA/tutor-booking-service/internal/integrations/courseservice"
	"github.com/m04kA/tutor-booking-service/internal/notify"
	"github.com/m04kA/tutor-booking-service/internal/usecase/validation"
)

const operation = "respond"

// UseCase use case ответа тьютора на бронирование
type UseCase struct {
	bookingRepo  BookingRepository
	courseClient CourseClient
	userClient   UserClient
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
	userClient UserClient,
	notifier Notifier,
	txManager TransactionManager,
	validator *validation.Validator,
	counter OperationCounter,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		courseClient: courseClient,
		userClient:   userClient,
		notifier:     notifier,
		txManager:    txManager,
		validator:    validator,
		counter:      counter,
		logger:       logger,
	}
}

// Execute выполняет use case ответа тьютора
// Ответ и статус бронирования сохраняются атомарно под блокировкой строки бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RespondBooking: tutor=%s, booking=%s, status=%s", req.Caller.ID, req.BookingID, req.Status)

	// 1. Отвечать может только тьютор
	if d := access.RequireRole(req.Caller, domain.RoleTutor); !d.Allowed {
		uc.logger.Warn("RespondBooking: forbidden for caller=%s role=%s: %s", req.Caller.ID, req.Caller.Role, d.Reason)
		uc.count("forbidden")
		return nil, fmt.Errorf("%w: %s", ErrForbidden, d.Reason)
	}

	// 2. Валидация
	parsed, err := uc.validateRequest(req)
	if err != nil {
		uc.logger.Warn("RespondBooking: validation failed: %v", err)
		uc.count("invalid")
		return nil, err
	}

	// 3. Бронирование и владение курсом (курс бронирования не меняется, проверка до транзакции)
	booking, err := uc.bookingRepo.GetByID(ctx, parsed.bookingID)
	if err != nil {
		return nil, uc.repoError("get booking", parsed.bookingID.String(), err)
	}

	course, err := uc.courseClient.GetCourse(ctx, booking.CourseID)
	if err != nil {
		if errors.Is(err, courseClient.ErrCourseNotFound) {
			uc.logger.Warn("RespondBooking: course id=%s of booking id=%s not found", booking.CourseID, booking.ID)
			uc.count("not_found")
			return nil, ErrCourseNotFound
		}
		uc.logger.Error("RespondBooking: failed to get course id=%s: %v", booking.CourseID, err)
		uc.count("error")
		return nil, fmt.Errorf("%w: failed to get course: %w", ErrInternal, err)
	}

	if d := access.CanRespond(req.Caller, course.ToDomain()); !d.Allowed {
		uc.logger.Warn("RespondBooking: tutor=%s does not own course=%s of booking=%s", req.Caller.ID, course.ID, booking.ID)
		uc.count("forbidden")
		return nil, fmt.Errorf("%w: %s", ErrForbidden, d.Reason)
	}

	response := &domain.TutorResponse{
		BookingID:        parsed.bookingID,
		Status:           parsed.status,
		SelectedOptionID: parsed.selectedID,
		Message:          req.Message,
	}

	// 4. Проверка варианта и запись под блокировкой строки
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		locked, err := uc.bookingRepo.GetByID(txCtx, parsed.bookingID)
		if err != nil {
			return err
		}

		if response.SelectedOptionID != nil && !locked.HasOption(*response.SelectedOptionID) {
			return ErrOptionNotInBooking
		}

		if err := uc.bookingRepo.SaveTutorResponse(txCtx, response); err != nil {
			return err
		}

		updated, err := uc.bookingRepo.GetByID(txCtx, parsed.bookingID)
		if err != nil {
			return err
		}
		booking = updated
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrOptionNotInBooking) {
			uc.logger.Warn("RespondBooking: option id=%s does not belong to booking id=%s", response.SelectedOptionID, parsed.bookingID)
			uc.count("conflict")
			return nil, err
		}
		return nil, uc.repoError("save response", parsed.bookingID.String(), err)
	}

	uc.logger.Info("RespondBooking: booking id=%s is now %s", booking.ID, booking.Status)
	uc.count("success")

	uc.notifier.Notify(ctx, notify.TutorResponded(booking, booking.Response))

	return &Response{
		Booking:  booking,
		Course:   course.ToDomain(),
		Tourist:  uc.touristProfile(ctx, booking.TouristID),
		Response: booking.Response,
	}, nil
}

func (uc *UseCase) repoError(step, bookingID string, err error) error {
	if errors.Is(err, bookingRepo.ErrBookingNotFound) {
		uc.logger.Warn("RespondBooking: booking id=%s not found", bookingID)
		uc.count("not_found")
		return ErrBookingNotFound
	}
	uc.logger.Error("RespondBooking: failed to %s id=%s: %v", step, bookingID, err)
	uc.count("error")
	return fmt.Errorf("%w: failed to %s: %w", ErrInternal, step, err)
}

// touristProfile профиль туриста; при недоступности UserService профиль опускается
func (uc *UseCase) touristProfile(ctx context.Context, touristID string) *domain.TouristProfile {
	if uc.userClient == nil {
		return nil
	}
	user, err := uc.userClient.GetUserWithGracefulDegradation(ctx, touristID)
	if err != nil {
		return nil
	}
	profile := user.ToProfile()
	profile.Phone = nil
	return profile
}

func (uc *UseCase) count(result string) {
	if uc.counter != nil {
		uc.counter.IncBookingOperation(operation, result)
	}
}
