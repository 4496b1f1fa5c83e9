// Package access содержит политики авторизации операций с бронированиями.
// Каждая политика принимает вызывающего и ресурс и возвращает Decision.
package access

import "github.com/m04kA/tutor-booking-service/internal/domain"

// Decision результат проверки доступа
type Decision struct {
	Allowed bool
	Reason  string
}

// Allow разрешающее решение
func Allow() Decision {
	return Decision{Allowed: true}
}

// Deny запрещающее решение с причиной
func Deny(reason string) Decision {
	return Decision{Reason: reason}
}

const (
	ReasonNotTourist      = "only tourists can perform this action"
	ReasonNotTutor        = "only tutors can perform this action"
	ReasonNotCourseOwner  = "caller does not own the course"
	ReasonNotBookingOwner = "caller does not own the booking"
	ReasonMissingIdentity = "caller identity is missing"
)

// RequireRole проверяет наличие идентичности и роль вызывающего
func RequireRole(caller domain.Caller, role domain.Role) Decision {
	if caller.ID == "" {
		return Deny(ReasonMissingIdentity)
	}
	if caller.Role != role {
		if role == domain.RoleTourist {
			return Deny(ReasonNotTourist)
		}
		return Deny(ReasonNotTutor)
	}
	return Allow()
}

// CanCreateBooking создавать бронирования может только турист
func CanCreateBooking(caller domain.Caller) Decision {
	return RequireRole(caller, domain.RoleTourist)
}

// CanRespond отвечать может только тьютор, владеющий курсом бронирования
func CanRespond(caller domain.Caller, course *domain.Course) Decision {
	if d := RequireRole(caller, domain.RoleTutor); !d.Allowed {
		return d
	}
	if course == nil || course.TutorID != caller.ID {
		return Deny(ReasonNotCourseOwner)
	}
	return Allow()
}

// CanReschedule переносить может только турист-владелец бронирования
func CanReschedule(caller domain.Caller, booking *domain.Booking) Decision {
	if d := RequireRole(caller, domain.RoleTourist); !d.Allowed {
		return d
	}
	if booking == nil || booking.TouristID != caller.ID {
		return Deny(ReasonNotBookingOwner)
	}
	return Allow()
}

// CanListTouristBookings .
func CanListTouristBookings(caller domain.Caller) Decision {
	return RequireRole(caller, domain.RoleTourist)
}

// CanListTutorBookings .
func CanListTutorBookings(caller domain.Caller) Decision {
	return RequireRole(caller, domain.RoleTutor)
}

// CanListCourseBookings бронирования курса видит только его тьютор
func CanListCourseBookings(caller domain.Caller, course *domain.Course) Decision {
	return CanRespond(caller, course)
}
