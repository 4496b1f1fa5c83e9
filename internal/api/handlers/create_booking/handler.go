package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/tutor-booking-service/internal/api/handlers"
	"github.com/m04kA/tutor-booking-service/internal/api/middleware"
	createBooking "github.com/m04kA/tutor-booking-service/internal/usecase/create_booking"
)

const (
	msgUnauthorized       = "authentication required"
	msgInvalidRequestBody = "invalid request body"
	msgValidationFailed   = "validation failed"
	msgForbidden          = "only tourists can create bookings"
	msgCourseNotFound     = "course not found"
	msgDuplicatePending   = "you already have a pending booking for this course"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.GetCaller(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(caller))
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrForbidden):
			h.logger.Warn("POST /bookings - Forbidden: user_id=%s, role=%s", caller.ID, caller.Role)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Validation failed: user_id=%s, error=%v", caller.ID, err)
			handlers.RespondValidationError(w, msgValidationFailed, err)

		case errors.Is(err, createBooking.ErrCourseNotFound):
			h.logger.Warn("POST /bookings - Course not found: course_id=%s", req.CourseID)
			handlers.RespondNotFound(w, msgCourseNotFound)

		case errors.Is(err, createBooking.ErrDuplicatePendingBooking):
			h.logger.Warn("POST /bookings - Duplicate pending booking: user_id=%s, course_id=%s", caller.ID, req.CourseID)
			handlers.RespondBadRequest(w, msgDuplicatePending)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%s, course_id=%s, error=%v",
				caller.ID, req.CourseID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%s, user_id=%s, course_id=%s",
		result.Booking.ID, caller.ID, req.CourseID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
