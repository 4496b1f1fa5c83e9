package get_tutor_bookings

import (
	"errors"
	"net/http"

	"github.com/m04kA/tutor-booking-service/internal/api/handlers"
	"github.com/m04kA/tutor-booking-service/internal/api/middleware"
	"github.com/m04kA/tutor-booking-service/internal/service/bookings"
)

const (
	msgUnauthorized = "authentication required"
	msgForbidden    = "only tutors can list bookings of their courses"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings/tutor
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.GetCaller(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	result, err := h.service.GetTutorBookings(r.Context(), caller)
	if err != nil {
		if errors.Is(err, bookings.ErrForbidden) {
			h.logger.Warn("GET /bookings/tutor - Forbidden: user_id=%s, role=%s", caller.ID, caller.Role)
			handlers.RespondForbidden(w, msgForbidden)
			return
		}
		h.logger.Error("GET /bookings/tutor - Failed to get bookings: user_id=%s, error=%v", caller.ID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /bookings/tutor - Bookings retrieved successfully: user_id=%s, count=%d", caller.ID, result.Count)
	handlers.RespondJSON(w, http.StatusOK, result)
}
