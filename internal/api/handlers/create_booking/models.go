package create_booking

import (
	"github.com/m04kA/tutor-booking-service/internal/domain"
	"github.com/m04kA/tutor-booking-service/internal/service/bookings/models"
	createBooking "github.com/m04kA/tutor-booking-service/internal/usecase/create_booking"
	"github.com/m04kA/tutor-booking-service/internal/usecase/validation"
)

const msgBookingCreated = "Booking created"

// OptionRequest предлагаемый вариант времени
type OptionRequest struct {
	Date      string `json:"date"`      // "2025-06-01"
	StartTime string `json:"startTime"` // "09:00"
	EndTime   string `json:"endTime"`   // "10:00"
}

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	CourseID string          `json:"courseId"`
	Message  *string         `json:"message,omitempty"`
	Options  []OptionRequest `json:"options"`
}

// CreateBookingResponse HTTP response model
type CreateBookingResponse struct {
	Message string          `json:"message"`
	Booking *models.Booking `json:"booking"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(caller domain.Caller) *createBooking.Request {
	return &createBooking.Request{
		Caller:   caller,
		CourseID: r.CourseID,
		Message:  r.Message,
		Options:  ToOptionInputs(r.Options),
	}
}

// ToOptionInputs конвертирует варианты в модель валидации
func ToOptionInputs(options []OptionRequest) []validation.OptionInput {
	if options == nil {
		return nil
	}
	inputs := make([]validation.OptionInput, 0, len(options))
	for _, o := range options {
		inputs = append(inputs, validation.OptionInput{Date: o.Date, StartTime: o.StartTime, EndTime: o.EndTime})
	}
	return inputs
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *CreateBookingResponse {
	booking := models.FromDomainBooking(resp.Booking, nil)
	if resp.Course != nil {
		booking.Course = models.FromCourse(resp.Course)
	}
	return &CreateBookingResponse{Message: msgBookingCreated, Booking: booking}
}
