package domain

import (
	"time"

	"github.com/google/uuid"
)

// NotificationType тип уведомления о смене состояния бронирования
type NotificationType string

const (
	NotificationBookingPending     NotificationType = "BOOKING_PENDING"
	NotificationBookingConfirmed   NotificationType = "BOOKING_CONFIRMED"
	NotificationBookingDeclined    NotificationType = "BOOKING_DECLINED"
	NotificationBookingRescheduled NotificationType = "BOOKING_RESCHEDULED"
)

// Notification событие для адресата
type Notification struct {
	ID        uuid.UUID
	UserID    string
	BookingID *uuid.UUID
	Type      NotificationType
	Title     string
	Message   string
	CreatedAt time.Time
}
