package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/tutor-booking-service/internal/api/middleware"
	"github.com/m04kA/tutor-booking-service/internal/domain"
	"github.com/m04kA/tutor-booking-service/internal/infra/storage/booking/bookingtest"
	"github.com/m04kA/tutor-booking-service/internal/integrations/courseservice"
	"github.com/m04kA/tutor-booking-service/internal/integrations/userservice"
	"github.com/m04kA/tutor-booking-service/internal/service/bookings"
	"github.com/m04kA/tutor-booking-service/internal/service/bookings/models"
	createBookingUC "github.com/m04kA/tutor-booking-service/internal/usecase/create_booking"
	rescheduleBookingUC "github.com/m04kA/tutor-booking-service/internal/usecase/reschedule_booking"
	respondBookingUC "github.com/m04kA/tutor-booking-service/internal/usecase/respond_booking"
	"github.com/m04kA/tutor-booking-service/internal/usecase/usecasetest"
	"github.com/m04kA/tutor-booking-service/internal/usecase/validation"
	"github.com/m04kA/tutor-booking-service/pkg/logger"
)

var (
	tourist = domain.Caller{ID: "tourist-1", Role: domain.RoleTourist}
	tutor   = domain.Caller{ID: "tutor-1", Role: domain.RoleTutor}
)

type env struct {
	router http.Handler
	store  *bookingtest.Store
	sent   *usecasetest.Notifications
}

func newEnv() *env {
	log := logger.NewNop()
	store := bookingtest.NewStore()
	courses := usecasetest.NewCourses(&courseservice.Course{ID: "course-x", TutorID: tutor.ID, Title: "Course X"})
	users := usecasetest.NewUsers(&userservice.User{ID: tourist.ID, Name: "Ann", Email: "ann@example.com"})
	sent := &usecasetest.Notifications{}
	counter := &usecasetest.Counter{}
	validator := validation.New(10)

	router := NewRouter(Deps{
		CreateBooking:     createBookingUC.NewUseCase(store, courses, sent, store, validator, counter, log),
		RespondBooking:    respondBookingUC.NewUseCase(store, courses, users, sent, store, validator, counter, log),
		RescheduleBooking: rescheduleBookingUC.NewUseCase(store, sent, store, validator, domain.PermissiveReschedulePolicy, counter, log),
		Bookings:          bookings.NewService(store, courses, users, store, log),
		Logger:            log,
	})

	return &env{router: router, store: store, sent: sent}
}

type envelope struct {
	Message       string                `json:"message"`
	Booking       *models.Booking       `json:"booking"`
	TutorResponse *models.TutorResponse `json:"tutorResponse"`
	Error         string                `json:"error"`
}

func (e *env) do(t *testing.T, caller domain.Caller, method, path string, body interface{}) (int, envelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(middleware.HeaderUserID, caller.ID)
	req.Header.Set(middleware.HeaderUserRole, string(caller.Role))

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)

	var out envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return rec.Code, out
}

func option(date, start, end string) map[string]string {
	return map[string]string{"date": date, "startTime": start, "endTime": end}
}

func TestBookingNegotiationScenario(t *testing.T) {
	e := newEnv()

	// Турист создает заявку с одним вариантом
	code, created := e.do(t, tourist, http.MethodPost, "/api/v1/bookings", map[string]interface{}{
		"courseId": "course-x",
		"options":  []map[string]string{option("2025-06-01", "09:00", "10:00")},
	})
	require.Equal(t, http.StatusCreated, code, created.Error)
	assert.Equal(t, "Booking created", created.Message)
	assert.Equal(t, "PENDING", created.Booking.Status)
	require.Len(t, created.Booking.Options, 1)
	bookingID := created.Booking.ID
	optionID := created.Booking.Options[0].ID

	// Тьютор подтверждает этот вариант
	code, confirmed := e.do(t, tutor, http.MethodPut, "/api/v1/bookings/"+bookingID+"/respond", map[string]interface{}{
		"status":           "CONFIRMED",
		"selectedOptionId": optionID,
	})
	require.Equal(t, http.StatusOK, code, confirmed.Error)
	assert.Equal(t, "CONFIRMED", confirmed.Booking.Status)
	require.NotNil(t, confirmed.TutorResponse)
	assert.Equal(t, "CONFIRMED", confirmed.TutorResponse.Status)
	require.NotNil(t, confirmed.TutorResponse.SelectedOptionID)
	assert.Equal(t, optionID, *confirmed.TutorResponse.SelectedOptionID)

	// Турист переносит на две новые даты
	code, rescheduled := e.do(t, tourist, http.MethodPut, "/api/v1/bookings/"+bookingID+"/reschedule", map[string]interface{}{
		"options": []map[string]string{
			option("2025-06-05", "14:00", "15:00"),
			option("2025-06-06", "14:00", "15:00"),
		},
	})
	require.Equal(t, http.StatusOK, code, rescheduled.Error)
	assert.Equal(t, "Booking rescheduled", rescheduled.Message)
	assert.Equal(t, "PENDING", rescheduled.Booking.Status)
	require.Len(t, rescheduled.Booking.Options, 2)
	assert.NotEqual(t, optionID, rescheduled.Booking.Options[0].ID)
	assert.Nil(t, rescheduled.Booking.TutorResponse)

	// Тьютор отклоняет
	code, declined := e.do(t, tutor, http.MethodPut, "/api/v1/bookings/"+bookingID+"/respond", map[string]interface{}{
		"status": "DECLINED",
	})
	require.Equal(t, http.StatusOK, code, declined.Error)
	assert.Equal(t, "DECLINED", declined.Booking.Status)
	require.NotNil(t, declined.TutorResponse)
	assert.Equal(t, "DECLINED", declined.TutorResponse.Status)
	assert.Nil(t, declined.TutorResponse.SelectedOptionID)

	types := make([]domain.NotificationType, 0)
	for _, n := range e.sent.Sent() {
		types = append(types, n.Type)
	}
	assert.Equal(t, []domain.NotificationType{
		domain.NotificationBookingPending,
		domain.NotificationBookingConfirmed,
		domain.NotificationBookingRescheduled,
		domain.NotificationBookingDeclined,
	}, types)
}

func TestListEndpoints(t *testing.T) {
	e := newEnv()

	code, created := e.do(t, tourist, http.MethodPost, "/api/v1/bookings", map[string]interface{}{
		"courseId": "course-x",
		"options":  []map[string]string{option("2025-06-01", "09:00", "10:00")},
	})
	require.Equal(t, http.StatusCreated, code)

	list := func(caller domain.Caller, path string) (int, models.BookingList) {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set(middleware.HeaderUserID, caller.ID)
		req.Header.Set(middleware.HeaderUserRole, string(caller.Role))
		rec := httptest.NewRecorder()
		e.router.ServeHTTP(rec, req)

		var out models.BookingList
		if rec.Code == http.StatusOK {
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
		}
		return rec.Code, out
	}

	code, mine := list(tourist, "/api/v1/bookings/tourist")
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, 1, mine.Count)
	assert.Equal(t, created.Booking.ID, mine.Bookings[0].ID)

	code, tutorList := list(tutor, "/api/v1/bookings/tutor")
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, 1, tutorList.Count)
	require.NotNil(t, tutorList.Bookings[0].Tourist)
	assert.Equal(t, "Ann", tutorList.Bookings[0].Tourist.Name)

	code, _ = list(tutor, "/api/v1/bookings/course/course-x")
	assert.Equal(t, http.StatusOK, code)

	code, _ = list(tutor, "/api/v1/bookings/course/unknown")
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = list(tourist, "/api/v1/bookings/tutor")
	assert.Equal(t, http.StatusForbidden, code)
}

func TestRoutesRequireIdentity(t *testing.T) {
	e := newEnv()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings/tourist", nil)
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestDuplicatePendingOverHTTP(t *testing.T) {
	e := newEnv()
	body := map[string]interface{}{
		"courseId": "course-x",
		"options":  []map[string]string{option("2025-06-01", "09:00", "10:00")},
	}

	code, _ := e.do(t, tourist, http.MethodPost, "/api/v1/bookings", body)
	require.Equal(t, http.StatusCreated, code)

	code, dup := e.do(t, tourist, http.MethodPost, "/api/v1/bookings", body)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.NotEmpty(t, dup.Error)
}
