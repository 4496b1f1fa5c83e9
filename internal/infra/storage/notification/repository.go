package notification

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/tutor-booking-service/internal/domain"
	"github.com/m04kA/tutor-booking-service/pkg/dbmetrics"
	"github.com/m04kA/tutor-booking-service/pkg/psqlbuilder"
)

// Repository хранилище уведомлений пользователей (таблица notifications)
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория уведомлений
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет уведомление, ID генерируется при отсутствии
func (r *Repository) Create(ctx context.Context, n *domain.Notification) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}

	var bookingID interface{}
	if n.BookingID != nil {
		bookingID = n.BookingID.String()
	}

	query, args, err := psqlbuilder.Insert("notifications").
		Columns("id", "user_id", "booking_id", "type", "title", "message").
		Values(n.ID.String(), n.UserID, bookingID, string(n.Type), n.Title, n.Message).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&n.CreatedAt); err != nil {
		return fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return nil
}
