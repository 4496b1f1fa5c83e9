// Package api собирает HTTP маршруты сервиса.
package api

import (
	"net/http"

	"github.com/gorilla/mux"

	createBookingHandler "github.com/m04kA/tutor-booking-service/internal/api/handlers/create_booking"
	getCourseBookingsHandler "github.com/m04kA/tutor-booking-service/internal/api/handlers/get_course_bookings"
	getTouristBookingsHandler "github.com/m04kA/tutor-booking-service/internal/api/handlers/get_tourist_bookings"
	getTutorBookingsHandler "github.com/m04kA/tutor-booking-service/internal/api/handlers/get_tutor_bookings"
	"github.com/m04kA/tutor-booking-service/internal/api/handlers/healthz"
	rescheduleBookingHandler "github.com/m04kA/tutor-booking-service/internal/api/handlers/reschedule_booking"
	respondBookingHandler "github.com/m04kA/tutor-booking-service/internal/api/handlers/respond_booking"
	"github.com/m04kA/tutor-booking-service/internal/api/middleware"
)

// BookingService чтение списков бронирований
type BookingService interface {
	getTouristBookingsHandler.BookingService
	getTutorBookingsHandler.BookingService
	getCourseBookingsHandler.BookingService
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Deps зависимости роутера
// Metrics, MetricsHandler и RateLimiter необязательны
type Deps struct {
	CreateBooking     createBookingHandler.CreateBookingUseCase
	RespondBooking    respondBookingHandler.RespondBookingUseCase
	RescheduleBooking rescheduleBookingHandler.RescheduleBookingUseCase
	Bookings          BookingService
	DB                healthz.Pinger

	Metrics        middleware.HTTPObserver
	MetricsPath    string
	MetricsHandler http.Handler
	RateLimiter    *middleware.RateLimiter

	Logger Logger
}

// NewRouter регистрирует все маршруты сервиса
func NewRouter(deps Deps) *mux.Router {
	createBooking := createBookingHandler.NewHandler(deps.CreateBooking, deps.Logger)
	respondBooking := respondBookingHandler.NewHandler(deps.RespondBooking, deps.Logger)
	rescheduleBooking := rescheduleBookingHandler.NewHandler(deps.RescheduleBooking, deps.Logger)
	getTouristBookings := getTouristBookingsHandler.NewHandler(deps.Bookings, deps.Logger)
	getTutorBookings := getTutorBookingsHandler.NewHandler(deps.Bookings, deps.Logger)
	getCourseBookings := getCourseBookingsHandler.NewHandler(deps.Bookings, deps.Logger)

	r := mux.NewRouter()

	if deps.Metrics != nil {
		r.Use(middleware.Metrics(deps.Metrics))
	}
	if deps.MetricsHandler != nil {
		r.Handle(deps.MetricsPath, deps.MetricsHandler).Methods(http.MethodGet)
	}
	if deps.DB != nil {
		r.HandleFunc("/healthz", healthz.NewHandler(deps.DB, deps.Logger).Handle).Methods(http.MethodGet)
	}

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID и X-User-Role)
	// ============================================================

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Identity(deps.Logger))

	// Изменяющие запросы проходят через лимит частоты
	limited := func(h http.HandlerFunc) http.Handler {
		if deps.RateLimiter == nil {
			return h
		}
		return deps.RateLimiter.Middleware()(h)
	}

	// --- Турист ---
	api.Handle("/bookings", limited(createBooking.Handle)).Methods(http.MethodPost)
	api.HandleFunc("/bookings/tourist", getTouristBookings.Handle).Methods(http.MethodGet)
	api.Handle("/bookings/{id}/reschedule", limited(rescheduleBooking.Handle)).Methods(http.MethodPut)

	// --- Тьютор ---
	api.HandleFunc("/bookings/tutor", getTutorBookings.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/course/{courseId}", getCourseBookings.Handle).Methods(http.MethodGet)
	api.Handle("/bookings/{id}/respond", limited(respondBooking.Handle)).Methods(http.MethodPut)

	return r
}
