package respond_booking

import "errors"

var (
	// ErrForbidden возвращается, когда отвечает не тьютор-владелец курса
	ErrForbidden = errors.New("respond_booking: forbidden")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("respond_booking: invalid input data")

	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("respond_booking: booking not found")

	// ErrCourseNotFound возвращается, когда курс бронирования отсутствует в каталоге
	ErrCourseNotFound = errors.New("respond_booking: course not found")

	// ErrOptionNotInBooking возвращается, когда выбранный вариант не принадлежит бронированию
	ErrOptionNotInBooking = errors.New("respond_booking: selected option must belong to this booking")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("respond_booking: internal error")
)
