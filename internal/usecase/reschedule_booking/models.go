package reschedule_booking

import (
	"github.com/m04kA/tutor-booking-service/internal/domain"
	"github.com/m04kA/tutor-booking-service/internal/usecase/validation"
)

// Request модель переноса бронирования туристом
type Request struct {
	Caller    domain.Caller
	BookingID string                   `validate:"required,uuid"`
	Message   *string                  `validate:"omitempty,max=2000"`
	Options   []validation.OptionInput `validate:"required,min=1,dive"`
}

// Response бронирование с новым набором вариантов и без ответа тьютора
type Response struct {
	Booking *domain.Booking
}
