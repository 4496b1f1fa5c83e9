package reschedule_booking

import (
	createHandler "github.com/m04kA/tutor-booking-service/internal/api/handlers/create_booking"
	"github.com/m04kA/tutor-booking-service/internal/domain"
	"github.com/m04kA/tutor-booking-service/internal/service/bookings/models"
	rescheduleBooking "github.com/m04kA/tutor-booking-service/internal/usecase/reschedule_booking"
)

const msgBookingRescheduled = "Booking rescheduled"

// RescheduleBookingRequest HTTP request model
type RescheduleBookingRequest struct {
	Message *string                       `json:"message,omitempty"`
	Options []createHandler.OptionRequest `json:"options"`
}

// RescheduleBookingResponse HTTP response model
type RescheduleBookingResponse struct {
	Message string          `json:"message"`
	Booking *models.Booking `json:"booking"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RescheduleBookingRequest) ToUseCaseRequest(caller domain.Caller, bookingID string) *rescheduleBooking.Request {
	return &rescheduleBooking.Request{
		Caller:    caller,
		BookingID: bookingID,
		Message:   r.Message,
		Options:   createHandler.ToOptionInputs(r.Options),
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *rescheduleBooking.Response) *RescheduleBookingResponse {
	return &RescheduleBookingResponse{
		Message: msgBookingRescheduled,
		Booking: models.FromDomainBooking(resp.Booking, nil),
	}
}
