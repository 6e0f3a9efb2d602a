package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/enrollhub/enrollment-microservice/course-service/internal/models"
	"github.com/enrollhub/enrollment-microservice/course-service/internal/repository"
	"github.com/enrollhub/enrollment-microservice/course-service/pkg/rabbitmq"
	"gorm.io/gorm"
)

var (
	ErrCourseNotFound  = errors.New("course not found")
	ErrCourseCodeTaken = errors.New("course code already exists")
)

type CourseService interface {
	CreateCourse(ctx context.Context, course *models.Course) error
	GetCourse(ctx context.Context, id uint) (*models.Course, error)
	ListCourses(ctx context.Context, limit, offset int) ([]models.Course, error)
}

type courseService struct {
	repo      repository.CourseRepository
	publisher *rabbitmq.Publisher
}

func NewCourseService(repo repository.CourseRepository, publisher *rabbitmq.Publisher) CourseService {
	return &courseService{repo: repo, publisher: publisher}
}

// CreateCourse rejects a duplicate code up front for a friendly error, but
// the unique index remains the authoritative guard: a lost race between the
// check and the insert still surfaces as ErrCourseCodeTaken.
func (s *courseService) CreateCourse(ctx context.Context, course *models.Course) error {
	_, err := s.repo.FindByCode(ctx, course.Code)
	if err == nil {
		return ErrCourseCodeTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("check course code: %w", err)
	}

	if err := s.repo.Create(ctx, course); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrCourseCodeTaken
		}
		return fmt.Errorf("create course: %w", err)
	}

	// Announce course.created so user-service can sync its local copy
	if s.publisher != nil {
		_ = s.publisher.Publish("course.created", course)
	}

	return nil
}

func (s *courseService) GetCourse(ctx context.Context, id uint) (*models.Course, error) {
	course, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}
	return course, nil
}

func (s *courseService) ListCourses(ctx context.Context, limit, offset int) ([]models.Course, error) {
	return s.repo.FindAll(ctx, limit, offset)
}
