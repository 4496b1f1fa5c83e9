package reschedule_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/tutor-booking-service/internal/api/handlers"
	"github.com/m04kA/tutor-booking-service/internal/api/middleware"
	rescheduleBooking "github.com/m04kA/tutor-booking-service/internal/usecase/reschedule_booking"
)

const (
	msgUnauthorized       = "authentication required"
	msgInvalidRequestBody = "invalid request body"
	msgValidationFailed   = "validation failed"
	msgForbidden          = "only the tourist who made the booking can reschedule it"
	msgBookingNotFound    = "booking not found"
	msgNotAllowed         = "booking cannot be rescheduled in its current status"
	msgDuplicatePending   = "you already have a pending booking for this course"
)

type Handler struct {
	useCase RescheduleBookingUseCase
	logger  Logger
}

func NewHandler(useCase RescheduleBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/v1/bookings/{id}/reschedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.GetCaller(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	bookingID := mux.Vars(r)["id"]

	var req RescheduleBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /bookings/{id}/reschedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(caller, bookingID))
	if err != nil {
		switch {
		case errors.Is(err, rescheduleBooking.ErrForbidden):
			h.logger.Warn("PUT /bookings/{id}/reschedule - Forbidden: booking_id=%s, user_id=%s", bookingID, caller.ID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, rescheduleBooking.ErrInvalidInput):
			h.logger.Warn("PUT /bookings/{id}/reschedule - Validation failed: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondValidationError(w, msgValidationFailed, err)

		case errors.Is(err, rescheduleBooking.ErrBookingNotFound):
			h.logger.Warn("PUT /bookings/{id}/reschedule - Booking not found: booking_id=%s", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, rescheduleBooking.ErrRescheduleNotAllowed):
			h.logger.Warn("PUT /bookings/{id}/reschedule - Not allowed: booking_id=%s", bookingID)
			handlers.RespondBadRequest(w, msgNotAllowed)

		case errors.Is(err, rescheduleBooking.ErrDuplicatePendingBooking):
			h.logger.Warn("PUT /bookings/{id}/reschedule - Duplicate pending booking: booking_id=%s", bookingID)
			handlers.RespondBadRequest(w, msgDuplicatePending)

		default:
			h.logger.Error("PUT /bookings/{id}/reschedule - Failed to reschedule: booking_id=%s, user_id=%s, error=%v",
				bookingID, caller.ID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /bookings/{id}/reschedule - Booking rescheduled: booking_id=%s, options=%d",
		bookingID, len(result.Booking.Options))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
