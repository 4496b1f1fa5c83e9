package get_tutor_bookings

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/tutor-booking-service/internal/api/middleware"
	"github.com/m04kA/tutor-booking-service/internal/domain"
	"github.com/m04kA/tutor-booking-service/internal/service/bookings"
	"github.com/m04kA/tutor-booking-service/internal/service/bookings/models"
	"github.com/m04kA/tutor-booking-service/pkg/logger"
)

type fakeService struct {
	caller domain.Caller
	list   *models.BookingList
	err    error
}

func (f *fakeService) GetTutorBookings(_ context.Context, caller domain.Caller) (*models.BookingList, error) {
	f.caller = caller
	return f.list, f.err
}

func serve(svc *fakeService, withCaller bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if withCaller {
		req = req.WithContext(middleware.WithCaller(req.Context(), domain.Caller{ID: "u1", Role: domain.RoleTutor}))
	}
	rec := httptest.NewRecorder()
	NewHandler(svc, logger.NewNop()).Handle(rec, req)
	return rec
}

func TestHandle(t *testing.T) {
	svc := &fakeService{list: &models.BookingList{Count: 1, Bookings: []models.Booking{{ID: "b1", Status: "PENDING", Options: []models.Option{}}}}}

	rec := serve(svc, true)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "u1", svc.caller.ID)
	assert.Contains(t, rec.Body.String(), `"count":1`)
	assert.Contains(t, rec.Body.String(), `"id":"b1"`)
}

func TestHandleForbidden(t *testing.T) {
	rec := serve(&fakeService{err: fmt.Errorf("%w: wrong role", bookings.ErrForbidden)}, true)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestHandleInternal(t *testing.T) {
	rec := serve(&fakeService{err: bookings.ErrInternal}, true)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestHandleWithoutCaller(t *testing.T) {
	rec := serve(&fakeService{}, false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
