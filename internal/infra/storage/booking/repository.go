package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/m04kA/tutor-booking-service/internal/domain"
	"github.com/m04kA/tutor-booking-service/pkg/dbmetrics"
	"github.com/m04kA/tutor-booking-service/pkg/psqlbuilder"
)

const uniqueViolation = "23505"

var bookingColumns = []string{
	"id",
	"course_id",
	"tourist_id",
	"tutor_id",
	"course_title",
	"message",
	"status",
	"created_at",
	"updated_at",
}

// Repository репозиторий бронирований
// Единственное место, где записывается bookings.status
type Repository struct {
	db DB
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DB) *Repository {
	return &Repository{db: db}
}

// Create сохраняет бронирование вместе с вариантами
// ID бронирования и вариантов должны быть заполнены вызывающим
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) error {
	return r.withTx(ctx, "Create", func(txCtx context.Context) error {
		executor := dbmetrics.GetExecutor(txCtx, r.db)

		query, args, err := psqlbuilder.Insert("bookings").
			Columns("id", "course_id", "tourist_id", "tutor_id", "course_title", "message", "status").
			Values(
				booking.ID.String(),
				booking.CourseID,
				booking.TouristID,
				booking.TutorID,
				booking.CourseTitle,
				booking.Message,
				string(booking.Status),
			).
			Suffix("RETURNING created_at, updated_at").
			ToSql()
		if err != nil {
			return fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
		}

		err = executor.QueryRowContext(txCtx, query, args...).Scan(&booking.CreatedAt, &booking.UpdatedAt)
		if err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("%w: Create - tourist=%s course=%s", ErrDuplicatePending, booking.TouristID, booking.CourseID)
			}
			return fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
		}

		return r.insertOptions(txCtx, booking.ID, booking.Options)
	})
}

// ExistsPending проверяет наличие PENDING бронирования туриста на курс
func (r *Repository) ExistsPending(ctx context.Context, touristID, courseID string) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("bookings").
		Where(squirrel.Eq{
			"tourist_id": touristID,
			"course_id":  courseID,
			"status":     string(domain.StatusPending),
		}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: ExistsPending - build select query: %w", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: ExistsPending - execute query: %w", ErrExecQuery, err)
	}

	return true, nil
}

// GetByID получает бронирование с вариантами и ответом тьютора
// Внутри транзакции строка бронирования блокируется (FOR UPDATE)
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id.String()})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %w", ErrScanRow, err)
	}

	if err := r.loadChildren(ctx, []*domain.Booking{booking}); err != nil {
		return nil, err
	}

	return booking, nil
}

// ListByTourist бронирования туриста, новые первыми
func (r *Repository) ListByTourist(ctx context.Context, touristID string) ([]*domain.Booking, error) {
	return r.list(ctx, "ListByTourist", squirrel.Eq{"tourist_id": touristID})
}

// ListByTutor бронирования по всем курсам тьютора, новые первыми
func (r *Repository) ListByTutor(ctx context.Context, tutorID string) ([]*domain.Booking, error) {
	return r.list(ctx, "ListByTutor", squirrel.Eq{"tutor_id": tutorID})
}

// ListByCourse бронирования курса, новые первыми
func (r *Repository) ListByCourse(ctx context.Context, courseID string) ([]*domain.Booking, error) {
	return r.list(ctx, "ListByCourse", squirrel.Eq{"course_id": courseID})
}

// SaveTutorResponse сохраняет ответ тьютора (upsert по booking_id) и выставляет бронированию тот же статус
// Обе записи выполняются в одной транзакции
func (r *Repository) SaveTutorResponse(ctx context.Context, resp *domain.TutorResponse) error {
	if !resp.Status.IsResponseStatus() {
		return fmt.Errorf("%w: SaveTutorResponse - invalid response status %q", ErrExecQuery, resp.Status)
	}

	return r.withTx(ctx, "SaveTutorResponse", func(txCtx context.Context) error {
		executor := dbmetrics.GetExecutor(txCtx, r.db)

		var selected interface{}
		if resp.SelectedOptionID != nil {
			selected = resp.SelectedOptionID.String()
		}

		query, args, err := psqlbuilder.Insert("tutor_responses").
			Columns("booking_id", "status", "selected_option_id", "message").
			Values(resp.BookingID.String(), string(resp.Status), selected, resp.Message).
			Suffix("ON CONFLICT (booking_id) DO UPDATE SET " +
				"status = EXCLUDED.status, " +
				"selected_option_id = EXCLUDED.selected_option_id, " +
				"message = EXCLUDED.message, " +
				"updated_at = NOW() " +
				"RETURNING created_at, updated_at").
			ToSql()
		if err != nil {
			return fmt.Errorf("%w: SaveTutorResponse - build upsert query: %w", ErrBuildQuery, err)
		}

		if err := executor.QueryRowContext(txCtx, query, args...).Scan(&resp.CreatedAt, &resp.UpdatedAt); err != nil {
			return fmt.Errorf("%w: SaveTutorResponse - execute upsert: %w", ErrExecQuery, err)
		}

		return r.setStatus(txCtx, "SaveTutorResponse", resp.BookingID, resp.Status, nil)
	})
}

// ReplaceOptions заменяет набор вариантов бронирования и сбрасывает переговоры
// Удаляет старые варианты и ответ тьютора, вставляет новые варианты, переводит бронирование в PENDING
// и обновляет сообщение, если оно передано. Все шаги выполняются в одной транзакции.
func (r *Repository) ReplaceOptions(ctx context.Context, bookingID uuid.UUID, options []domain.BookingOption, message *string) error {
	return r.withTx(ctx, "ReplaceOptions", func(txCtx context.Context) error {
		executor := dbmetrics.GetExecutor(txCtx, r.db)

		query, args, err := psqlbuilder.Delete("tutor_responses").
			Where(squirrel.Eq{"booking_id": bookingID.String()}).
			ToSql()
		if err != nil {
			return fmt.Errorf("%w: ReplaceOptions - build delete response query: %w", ErrBuildQuery, err)
		}
		if _, err := executor.ExecContext(txCtx, query, args...); err != nil {
			return fmt.Errorf("%w: ReplaceOptions - delete response: %w", ErrExecQuery, err)
		}

		query, args, err = psqlbuilder.Delete("booking_options").
			Where(squirrel.Eq{"booking_id": bookingID.String()}).
			ToSql()
		if err != nil {
			return fmt.Errorf("%w: ReplaceOptions - build delete options query: %w", ErrBuildQuery, err)
		}
		if _, err := executor.ExecContext(txCtx, query, args...); err != nil {
			return fmt.Errorf("%w: ReplaceOptions - delete options: %w", ErrExecQuery, err)
		}

		if err := r.insertOptions(txCtx, bookingID, options); err != nil {
			return err
		}

		return r.setStatus(txCtx, "ReplaceOptions", bookingID, domain.StatusPending, message)
	})
}

// setStatus обновляет статус (и при необходимости сообщение) бронирования
func (r *Repository) setStatus(ctx context.Context, op string, id uuid.UUID, status domain.BookingStatus, message *string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("bookings").
		Set("status", string(status)).
		Set("updated_at", squirrel.Expr("NOW()"))
	if message != nil {
		updateBuilder = updateBuilder.Set("message", *message)
	}

	query, args, err := updateBuilder.Where(squirrel.Eq{"id": id.String()}).ToSql()
	if err != nil {
		return fmt.Errorf("%w: %s - build update query: %w", ErrBuildQuery, op, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s - booking=%s", ErrDuplicatePending, op, id)
		}
		return fmt.Errorf("%w: %s - execute update: %w", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %w", ErrExecQuery, op, err)
	}
	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

func (r *Repository) insertOptions(ctx context.Context, bookingID uuid.UUID, options []domain.BookingOption) error {
	if len(options) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	insertBuilder := psqlbuilder.Insert("booking_options").
		Columns("id", "booking_id", "position", "option_date", "time_range")
	for i, opt := range options {
		insertBuilder = insertBuilder.Values(
			opt.ID.String(),
			bookingID.String(),
			i,
			opt.Date.Format(domain.DateFormat),
			opt.TimeRange(),
		)
	}

	query, args, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: insertOptions - build insert query: %w", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: insertOptions - execute insert: %w", ErrExecQuery, err)
	}

	for i := range options {
		options[i].BookingID = bookingID
		options[i].Position = i
	}

	return nil
}

func (r *Repository) list(ctx context.Context, op string, where squirrel.Eq) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(where).
		OrderBy("created_at DESC", "id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %w", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %w", ErrExecQuery, op, err)
	}
	defer rows.Close()

	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %w", ErrScanRow, op, err)
		}
		bookings = append(bookings, booking)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %w", ErrScanRow, op, err)
	}

	if err := r.loadChildren(ctx, bookings); err != nil {
		return nil, err
	}

	return bookings, nil
}

// loadChildren подгружает варианты и ответы тьютора двумя запросами на весь список
func (r *Repository) loadChildren(ctx context.Context, bookings []*domain.Booking) error {
	if len(bookings) == 0 {
		return nil
	}

	ids := make([]string, len(bookings))
	byID := make(map[uuid.UUID]*domain.Booking, len(bookings))
	for i, b := range bookings {
		ids[i] = b.ID.String()
		byID[b.ID] = b
		b.Options = make([]domain.BookingOption, 0)
		b.Response = nil
	}

	if err := r.loadOptions(ctx, ids, byID); err != nil {
		return err
	}
	return r.loadResponses(ctx, ids, byID)
}

func (r *Repository) loadOptions(ctx context.Context, ids []string, byID map[uuid.UUID]*domain.Booking) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "booking_id", "position", "option_date", "time_range").
		From("booking_options").
		Where(squirrel.Eq{"booking_id": ids}).
		OrderBy("booking_id", "position").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: loadOptions - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: loadOptions - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var opt domain.BookingOption
		var timeRange string
		if err := rows.Scan(&opt.ID, &opt.BookingID, &opt.Position, &opt.Date, &timeRange); err != nil {
			return fmt.Errorf("%w: loadOptions - scan option: %w", ErrScanRow, err)
		}
		opt.StartTime, opt.EndTime = domain.SplitTimeRange(timeRange)
		if b, ok := byID[opt.BookingID]; ok {
			b.Options = append(b.Options, opt)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: loadOptions - rows error: %w", ErrScanRow, err)
	}

	return nil
}

func (r *Repository) loadResponses(ctx context.Context, ids []string, byID map[uuid.UUID]*domain.Booking) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("booking_id", "status", "selected_option_id", "message", "created_at", "updated_at").
		From("tutor_responses").
		Where(squirrel.Eq{"booking_id": ids}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: loadResponses - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: loadResponses - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var resp domain.TutorResponse
		var status string
		var selected uuid.NullUUID
		if err := rows.Scan(&resp.BookingID, &status, &selected, &resp.Message, &resp.CreatedAt, &resp.UpdatedAt); err != nil {
			return fmt.Errorf("%w: loadResponses - scan response: %w", ErrScanRow, err)
		}
		resp.Status = domain.BookingStatus(status)
		if selected.Valid {
			id := selected.UUID
			resp.SelectedOptionID = &id
		}
		if b, ok := byID[resp.BookingID]; ok {
			b.Response = &resp
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: loadResponses - rows error: %w", ErrScanRow, err)
	}

	return nil
}

// withTx выполняет fn в транзакции из контекста или открывает собственную
func (r *Repository) withTx(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	if dbmetrics.IsInTransaction(ctx) {
		return fn(ctx)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %s - begin: %w", ErrTransaction, op, err)
	}

	if err := fn(dbmetrics.WithTx(ctx, tx)); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %s - commit: %w", ErrTransaction, op, err)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var b domain.Booking
	var status string

	err := row.Scan(
		&b.ID,
		&b.CourseID,
		&b.TouristID,
		&b.TutorID,
		&b.CourseTitle,
		&b.Message,
		&status,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	b.Status = domain.BookingStatus(status)
	return &b, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
