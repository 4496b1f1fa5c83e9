package respond_booking

import (
	"github.com/m04kA/tutor-booking-service/internal/domain"
	"github.com/m04kA/tutor-booking-service/internal/service/bookings/models"
	respondBooking "github.com/m04kA/tutor-booking-service/internal/usecase/respond_booking"
)

const msgResponseSaved = "Booking response saved"

// RespondBookingRequest HTTP request model
type RespondBookingRequest struct {
	Status           string  `json:"status"` // CONFIRMED | DECLINED | RESCHEDULED
	SelectedOptionID *string `json:"selectedOptionId,omitempty"`
	Message          *string `json:"message,omitempty"`
}

// RespondBookingResponse HTTP response model
type RespondBookingResponse struct {
	Message       string                `json:"message"`
	Booking       *models.Booking       `json:"booking"`
	TutorResponse *models.TutorResponse `json:"tutorResponse"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RespondBookingRequest) ToUseCaseRequest(caller domain.Caller, bookingID string) *respondBooking.Request {
	return &respondBooking.Request{
		Caller:           caller,
		BookingID:        bookingID,
		Status:           r.Status,
		SelectedOptionID: r.SelectedOptionID,
		Message:          r.Message,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *respondBooking.Response) *RespondBookingResponse {
	booking := models.FromDomainBooking(resp.Booking, models.SafeTourist(resp.Tourist))
	if resp.Course != nil {
		booking.Course = models.FromCourse(resp.Course)
	}
	return &RespondBookingResponse{
		Message:       msgResponseSaved,
		Booking:       booking,
		TutorResponse: models.FromDomainResponse(resp.Booking, resp.Response),
	}
}
