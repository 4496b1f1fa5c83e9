package create_booking

import (
	"github.com/m04kA/tutor-booking-service/internal/domain"
	"github.com/m04kA/tutor-booking-service/internal/usecase/validation"
)

// Request модель запроса на создание бронирования
type Request struct {
	Caller   domain.Caller
	CourseID string                   `validate:"nonblank,max=128"`
	Message  *string                  `validate:"omitempty,max=2000"`
	Options  []validation.OptionInput `validate:"required,min=1,dive"`
}

// Response созданное бронирование с вариантами и курсом
type Response struct {
	Booking *domain.Booking
	Course  *domain.Course
}
