package respond_booking

import "github.com/m04kA/tutor-booking-service/internal/domain"

// Request модель ответа тьютора на бронирование
type Request struct {
	Caller           domain.Caller
	BookingID        string  `validate:"required,uuid"`
	Status           string  `validate:"required,oneof=CONFIRMED DECLINED RESCHEDULED"`
	SelectedOptionID *string `validate:"omitempty,uuid"`
	Message          *string `validate:"omitempty,max=2000"`
}

// Response обновленное бронирование и сохраненный ответ
type Response struct {
	Booking  *domain.Booking
	Course   *domain.Course
	Tourist  *domain.TouristProfile
	Response *domain.TutorResponse
}
