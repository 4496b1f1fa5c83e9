package bookings

import "errors"

var (
	// ErrForbidden возвращается, когда роль или владение не позволяют читать список
	ErrForbidden = errors.New("bookings: forbidden")

	// ErrCourseNotFound возвращается, когда курс отсутствует в каталоге
	ErrCourseNotFound = errors.New("bookings: course not found")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("bookings: internal error")
)
