package respond_booking

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/tutor-booking-service/internal/domain"
)

type parsedRequest struct {
	bookingID  uuid.UUID
	status     domain.BookingStatus
	selectedID *uuid.UUID
}

// validateRequest валидирует запрос и разбирает идентификаторы
// selectedOptionId учитывается только для CONFIRMED
func (uc *UseCase) validateRequest(req *Request) (*parsedRequest, error) {
	if err := uc.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	bookingID, err := uuid.Parse(req.BookingID)
	if err != nil {
		return nil, fmt.Errorf("%w: bookingId: %w", ErrInvalidInput, err)
	}

	parsed := &parsedRequest{
		bookingID: bookingID,
		status:    domain.BookingStatus(req.Status),
	}

	if parsed.status == domain.StatusConfirmed && req.SelectedOptionID != nil {
		id, err := uuid.Parse(*req.SelectedOptionID)
		if err != nil {
			return nil, fmt.Errorf("%w: selectedOptionId: %w", ErrInvalidInput, err)
		}
		parsed.selectedID = &id
	}

	return parsed, nil
}
