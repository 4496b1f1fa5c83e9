package reschedule_booking

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/tutor-booking-service/internal/domain"
)

// validateRequest валидирует запрос и собирает новый набор вариантов
func (uc *UseCase) validateRequest(req *Request) (uuid.UUID, []domain.BookingOption, error) {
	if err := uc.validator.Struct(req); err != nil {
		return uuid.Nil, nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	bookingID, err := uuid.Parse(req.BookingID)
	if err != nil {
		return uuid.Nil, nil, fmt.Errorf("%w: bookingId: %w", ErrInvalidInput, err)
	}

	options, err := uc.validator.Options(req.Options)
	if err != nil {
		return uuid.Nil, nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	return bookingID, options, nil
}
