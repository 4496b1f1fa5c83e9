// Package bookingtest содержит транзакционное in-memory хранилище бронирований для тестов.
// Store повторяет контракт booking.Repository и одновременно служит менеджером транзакций:
// при ошибке внутри транзакции состояние откатывается к снимку.
package bookingtest

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/tutor-booking-service/internal/domain"
	bookingRepo "github.com/m04kA/tutor-booking-service/internal/infra/storage/booking"
)

// Точки внедрения отказов
const (
	FailCreate        = "Create"
	FailGetByID       = "GetByID"
	FailList          = "List"
	FailSaveResponse  = "SaveTutorResponse.upsert"
	FailMirrorStatus  = "SaveTutorResponse.status"
	FailDeleteOptions = "ReplaceOptions.delete"
	FailInsertOptions = "ReplaceOptions.insert"
	FailResetStatus   = "ReplaceOptions.status"
)

type txKey struct{}

type state struct {
	bookings  map[uuid.UUID]domain.Booking
	options   map[uuid.UUID][]domain.BookingOption
	responses map[uuid.UUID]domain.TutorResponse
}

// Store in-memory хранилище
type Store struct {
	txMu sync.Mutex
	mu   sync.Mutex

	data     state
	failures map[string]error
	clock    time.Time
	commits  int
}

// NewStore создает пустое хранилище
func NewStore() *Store {
	return &Store{
		data: state{
			bookings:  make(map[uuid.UUID]domain.Booking),
			options:   make(map[uuid.UUID][]domain.BookingOption),
			responses: make(map[uuid.UUID]domain.TutorResponse),
		},
		failures: make(map[string]error),
		clock:    time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// FailOn заставляет точку point возвращать err, пока не вызван ClearFailures
func (s *Store) FailOn(point string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[point] = err
}

// ClearFailures снимает все внедренные отказы
func (s *Store) ClearFailures() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures = make(map[string]error)
}

// Commits число успешно зафиксированных транзакций
func (s *Store) Commits() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commits
}

// Do .
func (s *Store) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return s.run(ctx, fn)
}

// DoSerializable транзакции хранилища выполняются строго последовательно
func (s *Store) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return s.run(ctx, fn)
}

// DoReadOnly .
func (s *Store) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return s.run(ctx, fn)
}

func (s *Store) run(ctx context.Context, fn func(ctx context.Context) error) error {
	if inTx(ctx) {
		return fn(ctx)
	}

	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	snapshot := s.data.clone()
	s.mu.Unlock()

	if err := fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		s.mu.Lock()
		s.data = snapshot
		s.mu.Unlock()
		return err
	}

	s.mu.Lock()
	s.commits++
	s.mu.Unlock()
	return nil
}

func inTx(ctx context.Context) bool {
	v, _ := ctx.Value(txKey{}).(bool)
	return v
}

// Create сохраняет бронирование с вариантами
func (s *Store) Create(ctx context.Context, booking *domain.Booking) error {
	return s.run(ctx, func(ctx context.Context) error {
		s.mu.Lock()
		defer s.mu.Unlock()

		if err := s.failure(FailCreate); err != nil {
			return err
		}
		if booking.Status == domain.StatusPending && s.pendingExistsLocked(booking.TouristID, booking.CourseID, booking.ID) {
			return fmt.Errorf("%w: Create - tourist=%s course=%s", bookingRepo.ErrDuplicatePending, booking.TouristID, booking.CourseID)
		}

		now := s.tick()
		booking.CreatedAt = now
		booking.UpdatedAt = now

		stored := *booking
		stored.Options = nil
		stored.Response = nil
		s.data.bookings[booking.ID] = stored
		s.data.options[booking.ID] = s.normalizeOptions(booking.ID, booking.Options)
		return nil
	})
}

// ExistsPending .
func (s *Store) ExistsPending(ctx context.Context, touristID, courseID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pendingExistsLocked(touristID, courseID, uuid.Nil), nil
}

// GetByID .
func (s *Store) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.failure(FailGetByID); err != nil {
		return nil, err
	}
	if _, ok := s.data.bookings[id]; !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return s.assembleLocked(id), nil
}

// ListByTourist .
func (s *Store) ListByTourist(ctx context.Context, touristID string) ([]*domain.Booking, error) {
	return s.list(func(b domain.Booking) bool { return b.TouristID == touristID })
}

// ListByTutor .
func (s *Store) ListByTutor(ctx context.Context, tutorID string) ([]*domain.Booking, error) {
	return s.list(func(b domain.Booking) bool { return b.TutorID == tutorID })
}

// ListByCourse .
func (s *Store) ListByCourse(ctx context.Context, courseID string) ([]*domain.Booking, error) {
	return s.list(func(b domain.Booking) bool { return b.CourseID == courseID })
}

// SaveTutorResponse upsert ответа и зеркалирование статуса
func (s *Store) SaveTutorResponse(ctx context.Context, resp *domain.TutorResponse) error {
	if !resp.Status.IsResponseStatus() {
		return fmt.Errorf("%w: SaveTutorResponse - invalid response status %q", bookingRepo.ErrExecQuery, resp.Status)
	}

	return s.run(ctx, func(ctx context.Context) error {
		s.mu.Lock()
		defer s.mu.Unlock()

		if err := s.failure(FailSaveResponse); err != nil {
			return err
		}

		now := s.tick()
		stored := *resp
		if existing, ok := s.data.responses[resp.BookingID]; ok {
			stored.CreatedAt = existing.CreatedAt
		} else {
			stored.CreatedAt = now
		}
		stored.UpdatedAt = now
		if resp.SelectedOptionID != nil {
			id := *resp.SelectedOptionID
			stored.SelectedOptionID = &id
		}
		s.data.responses[resp.BookingID] = stored
		resp.CreatedAt, resp.UpdatedAt = stored.CreatedAt, stored.UpdatedAt

		if err := s.failure(FailMirrorStatus); err != nil {
			return err
		}
		return s.setStatusLocked(resp.BookingID, resp.Status, nil, now)
	})
}

// ReplaceOptions удаляет варианты и ответ, вставляет новые варианты и сбрасывает статус в PENDING
func (s *Store) ReplaceOptions(ctx context.Context, bookingID uuid.UUID, options []domain.BookingOption, message *string) error {
	return s.run(ctx, func(ctx context.Context) error {
		s.mu.Lock()
		defer s.mu.Unlock()

		if err := s.failure(FailDeleteOptions); err != nil {
			return err
		}
		delete(s.data.responses, bookingID)
		delete(s.data.options, bookingID)

		if err := s.failure(FailInsertOptions); err != nil {
			return err
		}
		s.data.options[bookingID] = s.normalizeOptions(bookingID, options)

		if err := s.failure(FailResetStatus); err != nil {
			return err
		}
		b, ok := s.data.bookings[bookingID]
		if !ok {
			return bookingRepo.ErrBookingNotFound
		}
		if s.pendingExistsLocked(b.TouristID, b.CourseID, bookingID) {
			return fmt.Errorf("%w: ReplaceOptions - booking=%s", bookingRepo.ErrDuplicatePending, bookingID)
		}
		return s.setStatusLocked(bookingID, domain.StatusPending, message, s.tick())
	})
}

func (s *Store) setStatusLocked(id uuid.UUID, status domain.BookingStatus, message *string, now time.Time) error {
	b, ok := s.data.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	b.Status = status
	if message != nil {
		m := *message
		b.Message = &m
	}
	b.UpdatedAt = now
	s.data.bookings[id] = b
	return nil
}

func (s *Store) list(match func(domain.Booking) bool) ([]*domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.failure(FailList); err != nil {
		return nil, err
	}

	result := make([]*domain.Booking, 0)
	for id, b := range s.data.bookings {
		if match(b) {
			result = append(result, s.assembleLocked(id))
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (s *Store) assembleLocked(id uuid.UUID) *domain.Booking {
	b := s.data.bookings[id]
	b.Options = append([]domain.BookingOption{}, s.data.options[id]...)
	if resp, ok := s.data.responses[id]; ok {
		r := resp
		if resp.SelectedOptionID != nil {
			sel := *resp.SelectedOptionID
			// выбранный вариант, удаленный вместе с набором, обнуляется (ON DELETE SET NULL)
			r.SelectedOptionID = nil
			for _, o := range b.Options {
				if o.ID == sel {
					r.SelectedOptionID = &sel
				}
			}
		}
		b.Response = &r
	}
	if b.Message != nil {
		m := *b.Message
		b.Message = &m
	}
	return &b
}

func (s *Store) normalizeOptions(bookingID uuid.UUID, options []domain.BookingOption) []domain.BookingOption {
	stored := make([]domain.BookingOption, len(options))
	for i := range options {
		options[i].BookingID = bookingID
		options[i].Position = i
		stored[i] = options[i]
	}
	return stored
}

func (s *Store) pendingExistsLocked(touristID, courseID string, except uuid.UUID) bool {
	for id, b := range s.data.bookings {
		if id != except && b.TouristID == touristID && b.CourseID == courseID && b.Status == domain.StatusPending {
			return true
		}
	}
	return false
}

func (s *Store) failure(point string) error {
	if err, ok := s.failures[point]; ok {
		if err == nil {
			return errors.New("bookingtest: injected failure at " + point)
		}
		return err
	}
	return nil
}

func (s *Store) tick() time.Time {
	s.clock = s.clock.Add(time.Second)
	return s.clock
}

func (st state) clone() state {
	c := state{
		bookings:  make(map[uuid.UUID]domain.Booking, len(st.bookings)),
		options:   make(map[uuid.UUID][]domain.BookingOption, len(st.options)),
		responses: make(map[uuid.UUID]domain.TutorResponse, len(st.responses)),
	}
	for k, v := range st.bookings {
		c.bookings[k] = v
	}
	for k, v := range st.options {
		c.options[k] = append([]domain.BookingOption(nil), v...)
	}
	for k, v := range st.responses {
		c.responses[k] = v
	}
	return c
}
