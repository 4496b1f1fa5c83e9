package notify

import (
	"fmt"

	"github.com/m04kA/tutor-booking-service/internal/domain"
	"github.com/m04kA/tutor-booking-service/pkg/ptr"
)

// BookingCreated уведомление тьютору о новой заявке
func BookingCreated(b *domain.Booking) domain.Notification {
	return domain.Notification{
		UserID:    b.TutorID,
		BookingID: ptr.Ptr(b.ID),
		Type:      domain.NotificationBookingPending,
		Title:     "New booking request",
		Message: withNote(
			fmt.Sprintf("You have a new booking request for %q with %d proposed time(s)", b.CourseTitle, len(b.Options)),
			b.Message,
		),
	}
}

// TutorResponded уведомление туристу о решении тьютора
func TutorResponded(b *domain.Booking, resp *domain.TutorResponse) domain.Notification {
	n := domain.Notification{
		UserID:    b.TouristID,
		BookingID: ptr.Ptr(b.ID),
	}

	switch resp.Status {
	case domain.StatusConfirmed:
		n.Type = domain.NotificationBookingConfirmed
		n.Title = "Booking confirmed"
		n.Message = fmt.Sprintf("Your booking for %q has been confirmed", b.CourseTitle)
		if resp.SelectedOptionID != nil {
			if opt := b.Option(*resp.SelectedOptionID); opt != nil {
				n.Message = fmt.Sprintf("Your booking for %q has been confirmed for %s, %s",
					b.CourseTitle, opt.Date.Format(domain.DateFormat), opt.TimeRange())
			}
		}
	case domain.StatusDeclined:
		n.Type = domain.NotificationBookingDeclined
		n.Title = "Booking declined"
		n.Message = fmt.Sprintf("Your booking for %q has been declined", b.CourseTitle)
	default:
		n.Type = domain.NotificationBookingRescheduled
		n.Title = "Reschedule requested"
		n.Message = fmt.Sprintf("The tutor asked you to propose different times for %q", b.CourseTitle)
	}

	n.Message = withNote(n.Message, resp.Message)
	return n
}

// BookingRescheduled уведомление тьютору о новых вариантах от туриста
func BookingRescheduled(b *domain.Booking) domain.Notification {
	return domain.Notification{
		UserID:    b.TutorID,
		BookingID: ptr.Ptr(b.ID),
		Type:      domain.NotificationBookingRescheduled,
		Title:     "Booking rescheduled",
		Message: withNote(
			fmt.Sprintf("The tourist proposed %d new time(s) for %q", len(b.Options), b.CourseTitle),
			b.Message,
		),
	}
}

func withNote(text string, note *string) string {
	if note == nil || *note == "" {
		return text
	}
	return text + ": " + *note
}
