package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// BookingStatus статус переговоров по бронированию
type BookingStatus string

const (
	StatusPending     BookingStatus = "PENDING"
	StatusConfirmed   BookingStatus = "CONFIRMED"
	StatusDeclined    BookingStatus = "DECLINED"
	StatusRescheduled BookingStatus = "RESCHEDULED"
)

// ResponseStatuses статусы, которые может выставить тьютор
var ResponseStatuses = []BookingStatus{StatusConfirmed, StatusDeclined, StatusRescheduled}

// IsValid проверяет, что статус из закрытого набора
func (s BookingStatus) IsValid() bool {
	return s == StatusPending || s.IsResponseStatus()
}

// IsResponseStatus проверяет, что статус допустим для ответа тьютора
func (s BookingStatus) IsResponseStatus() bool {
	return s == StatusConfirmed || s == StatusDeclined || s == StatusRescheduled
}

// Booking заявка туриста на курс вместе с состоянием переговоров
type Booking struct {
	ID        uuid.UUID
	CourseID  string
	TouristID string
	Message   *string
	Status    BookingStatus

	// Денормализованные данные курса на момент создания
	TutorID     string
	CourseTitle string

	Options  []BookingOption
	Response *TutorResponse

	CreatedAt time.Time
	UpdatedAt time.Time
}

// BookingOption один предложенный вариант даты и времени
type BookingOption struct {
	ID        uuid.UUID
	BookingID uuid.UUID
	Position  int
	Date      time.Time
	StartTime string
	EndTime   string
}

// TimeRange время варианта в формате хранения "09:00 - 10:00"
func (o BookingOption) TimeRange() string {
	return o.StartTime + TimeRangeSeparator + o.EndTime
}

// SplitTimeRange разбирает сохраненный диапазон обратно на начало и конец
// Строка без разделителя целиком считается началом
func SplitTimeRange(s string) (start, end string) {
	start, end, found := strings.Cut(s, TimeRangeSeparator)
	if !found {
		return strings.TrimSpace(s), ""
	}
	return strings.TrimSpace(start), strings.TrimSpace(end)
}

// TutorResponse решение тьютора по бронированию (не более одного на бронирование)
type TutorResponse struct {
	BookingID        uuid.UUID
	Status           BookingStatus
	SelectedOptionID *uuid.UUID
	Message          *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Option возвращает вариант бронирования по ID или nil
func (b *Booking) Option(id uuid.UUID) *BookingOption {
	for i := range b.Options {
		if b.Options[i].ID == id {
			return &b.Options[i]
		}
	}
	return nil
}

// HasOption проверяет принадлежность варианта бронированию
func (b *Booking) HasOption(id uuid.UUID) bool {
	return b.Option(id) != nil
}

// IsConsistent проверяет согласованность статуса с ответом тьютора и выбранным вариантом
func (b *Booking) IsConsistent() bool {
	if b.Response == nil {
		return b.Status == StatusPending
	}
	if b.Response.Status != b.Status {
		return false
	}
	if b.Response.SelectedOptionID != nil {
		return b.HasOption(*b.Response.SelectedOptionID)
	}
	return true
}

// ReschedulePolicy какие статусы допускают перенос туристом
type ReschedulePolicy struct {
	AllowConfirmed bool
	AllowDeclined  bool
}

// PermissiveReschedulePolicy перенос разрешен из любого статуса
var PermissiveReschedulePolicy = ReschedulePolicy{AllowConfirmed: true, AllowDeclined: true}

// Allows проверяет, можно ли переносить бронирование в данном статусе
func (p ReschedulePolicy) Allows(status BookingStatus) bool {
	switch status {
	case StatusConfirmed:
		return p.AllowConfirmed
	case StatusDeclined:
		return p.AllowDeclined
	default:
		return true
	}
}
