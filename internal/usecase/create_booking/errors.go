package create_booking

import "errors"

var (
	// ErrForbidden возвращается, когда бронирование создает не турист
	ErrForbidden = errors.New("create_booking: forbidden")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrCourseNotFound возвращается, когда курс не найден в каталоге
	ErrCourseNotFound = errors.New("create_booking: course not found")

	// ErrDuplicatePendingBooking возвращается, когда у туриста уже есть PENDING бронирование на курс
	ErrDuplicatePendingBooking = errors.New("create_booking: duplicate pending booking")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
