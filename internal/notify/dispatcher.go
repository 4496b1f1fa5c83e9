// Package notify формирует уведомления о переходах бронирования и доставляет их
// во все настроенные каналы по принципу best-effort.
package notify

import (
	"context"

	"github.com/m04kA/tutor-booking-service/internal/domain"
)

// Sender канал доставки уведомлений
type Sender interface {
	Send(ctx context.Context, n *domain.Notification) error
}

// SenderFunc адаптер функции к Sender
type SenderFunc func(ctx context.Context, n *domain.Notification) error

// Send .
func (f SenderFunc) Send(ctx context.Context, n *domain.Notification) error {
	return f(ctx, n)
}

// Target именованный канал доставки
type Target struct {
	Name   string
	Sender Sender
}

// ErrorCounter счетчик ошибок доставки (*metrics.Metrics)
type ErrorCounter interface {
	IncNotificationError(sink string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Dispatcher рассылает уведомление во все каналы
// Ошибки каналов логируются и не возвращаются вызывающему
type Dispatcher struct {
	targets []Target
	errors  ErrorCounter
	logger  Logger
}

// NewDispatcher создает новый экземпляр рассыльщика
func NewDispatcher(logger Logger, errors ErrorCounter, targets ...Target) *Dispatcher {
	return &Dispatcher{
		targets: targets,
		errors:  errors,
		logger:  logger,
	}
}

// Notify доставляет уведомление во все каналы
func (d *Dispatcher) Notify(ctx context.Context, n domain.Notification) {
	for _, target := range d.targets {
		msg := n
		if err := target.Sender.Send(ctx, &msg); err != nil {
			d.logger.Error("Notify: sink=%s type=%s user=%s failed: %v", target.Name, n.Type, n.UserID, err)
			if d.errors != nil {
				d.errors.IncNotificationError(target.Name)
			}
		}
	}
}
