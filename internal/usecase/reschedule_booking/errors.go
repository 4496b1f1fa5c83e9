package reschedule_booking

import "errors"

var (
	// ErrForbidden возвращается, когда переносит не турист-владелец бронирования
	ErrForbidden = errors.New("reschedule_booking: forbidden")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reschedule_booking: invalid input data")

	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("reschedule_booking: booking not found")

	// ErrRescheduleNotAllowed возвращается, когда перенос из текущего статуса запрещен настройками
	ErrRescheduleNotAllowed = errors.New("reschedule_booking: reschedule is not allowed for the current booking status")

	// ErrDuplicatePendingBooking возвращается, когда у туриста уже есть другая ожидающая заявка на этот курс
	ErrDuplicatePendingBooking = errors.New("reschedule_booking: a pending booking for this course already exists")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reschedule_booking: internal error")
)
