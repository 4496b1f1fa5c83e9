package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/tutor-booking-service/internal/access"
	"github.com/m04kA/tutor-booking-service/internal/domain"
	courseClient "github.com/m04kA/tutor-booking-service/internal/integrations/courseservice"
	"github.com/m04kA/tutor-booking-service/internal/service/bookings/models"
)

// Service сервис чтения бронирований
type Service struct {
	bookingRepo  BookingRepository
	courseClient CourseClient
	userClient   UserClient
	txManager    TransactionManager
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	courseClient CourseClient,
	userClient UserClient,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		courseClient: courseClient,
		userClient:   userClient,
		txManager:    txManager,
		logger:       logger,
	}
}

// GetTouristBookings бронирования туриста, новые первыми
func (s *Service) GetTouristBookings(ctx context.Context, caller domain.Caller) (*models.BookingList, error) {
	s.logger.Info("GetTouristBookings: fetching bookings for tourist=%s", caller.ID)

	if d := access.CanListTouristBookings(caller); !d.Allowed {
		s.logger.Warn("GetTouristBookings: forbidden for caller=%s role=%s", caller.ID, caller.Role)
		return nil, fmt.Errorf("%w: %s", ErrForbidden, d.Reason)
	}

	bookings, err := s.list(ctx, "GetTouristBookings", func(ctx context.Context) ([]*domain.Booking, error) {
		return s.bookingRepo.ListByTourist(ctx, caller.ID)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("GetTouristBookings: successfully fetched %d bookings for tourist=%s", len(bookings), caller.ID)
	return models.FromDomainBookingList(bookings, nil), nil
}

// GetTutorBookings бронирования по всем курсам тьютора с безопасной проекцией туриста
func (s *Service) GetTutorBookings(ctx context.Context, caller domain.Caller) (*models.BookingList, error) {
	s.logger.Info("GetTutorBookings: fetching bookings for tutor=%s", caller.ID)

	if d := access.CanListTutorBookings(caller); !d.Allowed {
		s.logger.Warn("GetTutorBookings: forbidden for caller=%s role=%s", caller.ID, caller.Role)
		return nil, fmt.Errorf("%w: %s", ErrForbidden, d.Reason)
	}

	bookings, err := s.list(ctx, "GetTutorBookings", func(ctx context.Context) ([]*domain.Booking, error) {
		return s.bookingRepo.ListByTutor(ctx, caller.ID)
	})
	if err != nil {
		return nil, err
	}

	profiles := s.touristProfiles(ctx, bookings)

	s.logger.Info("GetTutorBookings: successfully fetched %d bookings for tutor=%s", len(bookings), caller.ID)
	return models.FromDomainBookingList(bookings, func(b *domain.Booking) *models.Tourist {
		return models.SafeTourist(profiles[b.TouristID])
	}), nil
}

// GetCourseBookings бронирования одного курса; доступно только тьютору-владельцу
func (s *Service) GetCourseBookings(ctx context.Context, caller domain.Caller, courseID string) (*models.BookingList, error) {
	s.logger.Info("GetCourseBookings: fetching bookings for course=%s, tutor=%s", courseID, caller.ID)

	if d := access.RequireRole(caller, domain.RoleTutor); !d.Allowed {
		s.logger.Warn("GetCourseBookings: forbidden for caller=%s role=%s", caller.ID, caller.Role)
		return nil, fmt.Errorf("%w: %s", ErrForbidden, d.Reason)
	}

	course, err := s.courseClient.GetCourse(ctx, courseID)
	if err != nil {
		if errors.Is(err, courseClient.ErrCourseNotFound) {
			s.logger.Warn("GetCourseBookings: course id=%s not found", courseID)
			return nil, ErrCourseNotFound
		}
		s.logger.Error("GetCourseBookings: failed to get course id=%s: %v", courseID, err)
		return nil, fmt.Errorf("%w: GetCourseBookings - course service error: %w", ErrInternal, err)
	}

	if d := access.CanListCourseBookings(caller, course.ToDomain()); !d.Allowed {
		s.logger.Warn("GetCourseBookings: tutor=%s does not own course=%s", caller.ID, courseID)
		return nil, fmt.Errorf("%w: %s", ErrForbidden, d.Reason)
	}

	bookings, err := s.list(ctx, "GetCourseBookings", func(ctx context.Context) ([]*domain.Booking, error) {
		return s.bookingRepo.ListByCourse(ctx, course.ID)
	})
	if err != nil {
		return nil, err
	}

	profiles := s.touristProfiles(ctx, bookings)

	s.logger.Info("GetCourseBookings: successfully fetched %d bookings for course=%s", len(bookings), courseID)
	return models.FromDomainBookingList(bookings, func(b *domain.Booking) *models.Tourist {
		return models.ContactTourist(profiles[b.TouristID])
	}), nil
}

// list читает список в одном снимке данных
func (s *Service) list(ctx context.Context, op string, fn func(ctx context.Context) ([]*domain.Booking, error)) ([]*domain.Booking, error) {
	var bookings []*domain.Booking
	err := s.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		var err error
		bookings, err = fn(txCtx)
		return err
	})
	if err != nil {
		s.logger.Error("%s: repository error: %v", op, err)
		return nil, fmt.Errorf("%w: %s - repository error: %w", ErrInternal, op, err)
	}
	return bookings, nil
}

// touristProfiles загружает профили туристов по одному разу на каждого
// Недоступность UserService не ломает список: проекция просто опускается
func (s *Service) touristProfiles(ctx context.Context, bookings []*domain.Booking) map[string]*domain.TouristProfile {
	profiles := make(map[string]*domain.TouristProfile)
	if s.userClient == nil {
		return profiles
	}

	seen := make(map[string]struct{})
	for _, b := range bookings {
		if _, ok := seen[b.TouristID]; ok {
			continue
		}
		seen[b.TouristID] = struct{}{}

		user, err := s.userClient.GetUserWithGracefulDegradation(ctx, b.TouristID)
		if err != nil {
			s.logger.Warn("touristProfiles: profile of tourist=%s omitted: %v", b.TouristID, err)
			continue
		}
		profiles[b.TouristID] = user.ToProfile()
	}
	return profiles
}
