package eventbus

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/m04kA/tutor-booking-service/internal/domain"
)

const (
	headerEventID   = "event-id"
	headerEventType = "event-type"
)

// Writer минимальный интерфейс kafka.Writer
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// NotificationEvent событие уведомления в топике
type NotificationEvent struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	UserID    string    `json:"userId"`
	BookingID *string   `json:"bookingId,omitempty"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// Publisher публикует уведомления о бронированиях в Kafka
type Publisher struct {
	writer Writer
	topic  string
	logger Logger
}

// NewKafkaWriter создает writer для топика
// Ключ сообщения - ID пользователя, поэтому события одного адресата идут в одну партицию
func NewKafkaWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		MaxAttempts:  3,
		BatchTimeout: 10 * time.Millisecond,
	}
}

// NewPublisher создает новый экземпляр publisher
func NewPublisher(writer Writer, topic string, logger Logger) *Publisher {
	return &Publisher{
		writer: writer,
		topic:  topic,
		logger: logger,
	}
}

// Publish отправляет уведомление в топик
func (p *Publisher) Publish(ctx context.Context, n *domain.Notification) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}

	event := NotificationEvent{
		ID:        n.ID.String(),
		Type:      string(n.Type),
		UserID:    n.UserID,
		Title:     n.Title,
		Message:   n.Message,
		CreatedAt: n.CreatedAt,
	}
	if n.BookingID != nil {
		id := n.BookingID.String()
		event.BookingID = &id
	}

	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrMarshal, err)
	}

	msg := kafka.Message{
		Key:   []byte(n.UserID),
		Value: value,
		Headers: []kafka.Header{
			{Key: headerEventID, Value: []byte(event.ID)},
			{Key: headerEventType, Value: []byte(event.Type)},
		},
		Time: n.CreatedAt,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("%w: topic=%s event=%s: %w", ErrPublish, p.topic, event.ID, err)
	}

	p.logger.Info("Published %s event id=%s for user=%s", event.Type, event.ID, event.UserID)
	return nil
}

// Close закрывает writer
func (p *Publisher) Close() error {
	return p.writer.Close()
}
