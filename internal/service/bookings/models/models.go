package models

import (
	"time"

	"github.com/m04kA/tutor-booking-service/internal/domain"
)

// Option вариант времени в ответе API
type Option struct {
	ID        string `json:"id"`
	Date      string `json:"date"`      // "2025-06-01"
	Time      string `json:"time"`      // "09:00 - 10:00"
	StartTime string `json:"startTime"` // "09:00"
	EndTime   string `json:"endTime"`   // "10:00"
}

// Course краткие данные курса
type Course struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	TutorID string `json:"tutorId"`
}

// Tourist проекция туриста; телефон только в списке бронирований курса
type Tourist struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Email string  `json:"email"`
	Phone *string `json:"phone,omitempty"`
}

// TutorResponse ответ тьютора с развернутым выбранным вариантом
type TutorResponse struct {
	BookingID        string    `json:"bookingId"`
	Status           string    `json:"status"`
	SelectedOptionID *string   `json:"selectedOptionId"`
	SelectedOption   *Option   `json:"selectedOption"`
	Message          *string   `json:"message,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// Booking бронирование в ответе API
type Booking struct {
	ID            string         `json:"id"`
	CourseID      string         `json:"courseId"`
	TouristID     string         `json:"touristId"`
	Message       *string        `json:"message,omitempty"`
	Status        string         `json:"status"`
	Options       []Option       `json:"options"`
	Course        Course         `json:"course"`
	Tourist       *Tourist       `json:"tourist,omitempty"`
	TutorResponse *TutorResponse `json:"tutorResponse"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
}

// BookingList ответ со списком бронирований
type BookingList struct {
	Count    int       `json:"count"`
	Bookings []Booking `json:"bookings"`
}

// FromDomainOption конвертирует вариант
func FromDomainOption(o domain.BookingOption) Option {
	return Option{
		ID:        o.ID.String(),
		Date:      o.Date.Format(domain.DateFormat),
		Time:      o.TimeRange(),
		StartTime: o.StartTime,
		EndTime:   o.EndTime,
	}
}

// FromDomainResponse конвертирует ответ тьютора, разворачивая выбранный вариант
func FromDomainResponse(b *domain.Booking, r *domain.TutorResponse) *TutorResponse {
	if r == nil {
		return nil
	}

	resp := &TutorResponse{
		BookingID: r.BookingID.String(),
		Status:    string(r.Status),
		Message:   r.Message,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
	if r.SelectedOptionID != nil {
		id := r.SelectedOptionID.String()
		resp.SelectedOptionID = &id
		if opt := b.Option(*r.SelectedOptionID); opt != nil {
			converted := FromDomainOption(*opt)
			resp.SelectedOption = &converted
		}
	}
	return resp
}

// FromCourse конвертирует курс
func FromCourse(c *domain.Course) Course {
	return Course{ID: c.ID, Title: c.Title, TutorID: c.TutorID}
}

// SafeTourist проекция без контактного телефона
func SafeTourist(p *domain.TouristProfile) *Tourist {
	if p == nil {
		return nil
	}
	return &Tourist{ID: p.ID, Name: p.Name, Email: p.Email}
}

// ContactTourist проекция с телефоном для связи
func ContactTourist(p *domain.TouristProfile) *Tourist {
	t := SafeTourist(p)
	if t != nil {
		t.Phone = p.Phone
	}
	return t
}

// FromDomainBooking конвертирует domain модель в DTO
// Данные курса берутся из денормализованных полей бронирования
func FromDomainBooking(b *domain.Booking, tourist *Tourist) *Booking {
	if b == nil {
		return nil
	}

	options := make([]Option, 0, len(b.Options))
	for _, o := range b.Options {
		options = append(options, FromDomainOption(o))
	}

	return &Booking{
		ID:            b.ID.String(),
		CourseID:      b.CourseID,
		TouristID:     b.TouristID,
		Message:       b.Message,
		Status:        string(b.Status),
		Options:       options,
		Course:        Course{ID: b.CourseID, Title: b.CourseTitle, TutorID: b.TutorID},
		Tourist:       tourist,
		TutorResponse: FromDomainResponse(b, b.Response),
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

// FromDomainBookingList конвертирует список; пустой список сериализуется как []
func FromDomainBookingList(bookings []*domain.Booking, tourist func(b *domain.Booking) *Tourist) *BookingList {
	result := &BookingList{Bookings: make([]Booking, 0, len(bookings))}
	for _, b := range bookings {
		var t *Tourist
		if tourist != nil {
			t = tourist(b)
		}
		result.Bookings = append(result.Bookings, *FromDomainBooking(b, t))
	}
	result.Count = len(result.Bookings)
	return result
}
