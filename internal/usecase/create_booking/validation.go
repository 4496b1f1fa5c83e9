package create_booking

import (
	"fmt"

	"github.com/m04kA/tutor-booking-service/internal/domain"
)

// validateRequest валидирует запрос и строит набор вариантов
func (uc *UseCase) validateRequest(req *Request) ([]domain.BookingOption, error) {
	if err := uc.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	options, err := uc.validator.Options(req.Options)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	return options, nil
}
