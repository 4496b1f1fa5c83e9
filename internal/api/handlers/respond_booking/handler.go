package respond_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/tutor-booking-service/internal/api/handlers"
	"github.com/m04kA/tutor-booking-service/internal/api/middleware"
	respondBooking "github.com/m04kA/tutor-booking-service/internal/usecase/respond_booking"
)

const (
	msgUnauthorized       = "authentication required"
	msgInvalidRequestBody = "invalid request body"
	msgValidationFailed   = "validation failed"
	msgForbidden          = "only the tutor of this course can respond to the booking"
	msgBookingNotFound    = "booking not found"
	msgCourseNotFound     = "course not found"
	msgOptionNotInBooking = "selected option must belong to this booking"
)

type Handler struct {
	useCase RespondBookingUseCase
	logger  Logger
}

func NewHandler(useCase RespondBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/v1/bookings/{id}/respond
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.GetCaller(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	bookingID := mux.Vars(r)["id"]

	var req RespondBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /bookings/{id}/respond - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(caller, bookingID))
	if err != nil {
		switch {
		case errors.Is(err, respondBooking.ErrForbidden):
			h.logger.Warn("PUT /bookings/{id}/respond - Forbidden: booking_id=%s, user_id=%s", bookingID, caller.ID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, respondBooking.ErrInvalidInput):
			h.logger.Warn("PUT /bookings/{id}/respond - Validation failed: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondValidationError(w, msgValidationFailed, err)

		case errors.Is(err, respondBooking.ErrBookingNotFound):
			h.logger.Warn("PUT /bookings/{id}/respond - Booking not found: booking_id=%s", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, respondBooking.ErrCourseNotFound):
			h.logger.Warn("PUT /bookings/{id}/respond - Course not found: booking_id=%s", bookingID)
			handlers.RespondNotFound(w, msgCourseNotFound)

		case errors.Is(err, respondBooking.ErrOptionNotInBooking):
			h.logger.Warn("PUT /bookings/{id}/respond - Option not in booking: booking_id=%s", bookingID)
			handlers.RespondBadRequest(w, msgOptionNotInBooking)

		default:
			h.logger.Error("PUT /bookings/{id}/respond - Failed to respond: booking_id=%s, user_id=%s, error=%v",
				bookingID, caller.ID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /bookings/{id}/respond - Response saved: booking_id=%s, status=%s", bookingID, result.Booking.Status)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
