package get_course_bookings

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/tutor-booking-service/internal/api/handlers"
	"github.com/m04kA/tutor-booking-service/internal/api/middleware"
	"github.com/m04kA/tutor-booking-service/internal/service/bookings"
)

const (
	msgUnauthorized   = "authentication required"
	msgForbidden      = "only the tutor of this course can view its bookings"
	msgCourseNotFound = "course not found"
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

// Handle GET /api/v1/bookings/course/{courseId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.GetCaller(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	courseID := mux.Vars(r)["courseId"]

	result, err := h.service.GetCourseBookings(r.Context(), caller, courseID)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrCourseNotFound):
			h.logger.Warn("GET /bookings/course/{courseId} - Course not found: course_id=%s", courseID)
			handlers.RespondNotFound(w, msgCourseNotFound)

		case errors.Is(err, bookings.ErrForbidden):
			h.logger.Warn("GET /bookings/course/{courseId} - Forbidden: course_id=%s, user_id=%s", courseID, caller.ID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /bookings/course/{courseId} - Failed to get bookings: course_id=%s, error=%v", courseID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bookings/course/{courseId} - Bookings retrieved successfully: course_id=%s, count=%d",
		courseID, result.Count)
	handlers.RespondJSON(w, http.StatusOK, result)
}
