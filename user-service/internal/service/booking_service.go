package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/enrollhub/enrollment-microservice/user-service/internal/models"
	"github.com/enrollhub/enrollment-microservice/user-service/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrBookingNotFound   = errors.New("booking not found")
	ErrAlreadyEnrolled   = errors.New("user is already enrolled in this course")
	ErrBookingRefMissing = errors.New("referenced user or course not found")
)

type BookingService interface {
	CreateBooking(ctx context.Context, userID, courseID uint) (*models.Booking, error)
	GetBookingWithCourse(ctx context.Context, id uint) (*models.Booking, error)
	ListBookings(ctx context.Context) ([]models.Booking, error)
	ListUserBookings(ctx context.Context, userID uint) ([]models.Booking, error)
}

type bookingService struct {
	bookingRepo repository.BookingRepository
	userRepo    repository.UserRepository
	courseRepo  repository.CourseRepository
}

func NewBookingService(bookingRepo repository.BookingRepository, userRepo repository.UserRepository, courseRepo repository.CourseRepository) BookingService {
	return &bookingService{
		bookingRepo: bookingRepo,
		userRepo:    userRepo,
		courseRepo:  courseRepo,
	}
}

// CreateBooking verifies both referenced rows exist before inserting. The
// foreign keys and the (user_id, course_id) unique index stay authoritative:
// a row deleted between check and insert, or a concurrent duplicate insert,
// is still translated rather than surfacing as a raw database error.
func (s *bookingService) CreateBooking(ctx context.Context, userID, courseID uint) (*models.Booking, error) {
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if _, err := s.courseRepo.FindByID(ctx, courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}

	booking := &models.Booking{
		UserID:   userID,
		CourseID: courseID,
	}

	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		switch {
		case errors.Is(err, gorm.ErrDuplicatedKey):
			return nil, ErrAlreadyEnrolled
		case errors.Is(err, gorm.ErrForeignKeyViolated):
			return nil, ErrBookingRefMissing
		}
		return nil, fmt.Errorf("create booking: %w", err)
	}

	return booking, nil
}

func (s *bookingService) GetBookingWithCourse(ctx context.Context, id uint) (*models.Booking, error) {
	booking, err := s.bookingRepo.FindByIDWithCourse(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return booking, nil
}

func (s *bookingService) ListBookings(ctx context.Context) ([]models.Booking, error) {
	return s.bookingRepo.FindAll(ctx)
}

// ListUserBookings returns an empty slice for an unknown user id; only the
// nested create verifies existence, since it writes.
func (s *bookingService) ListUserBookings(ctx context.Context, userID uint) ([]models.Booking, error) {
	return s.bookingRepo.FindByUserID(ctx, userID)
}
