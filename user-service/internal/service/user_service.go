package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/enrollhub/enrollment-microservice/user-service/internal/models"
	"github.com/enrollhub/enrollment-microservice/user-service/internal/repository"
	"github.com/enrollhub/enrollment-microservice/user-service/pkg/hash"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrEmailTaken    = errors.New("email already registered")
	ErrUsernameTaken = errors.New("username already taken")
)

type UserService interface {
	CreateUser(ctx context.Context, user *models.User, password string) error
	GetUser(ctx context.Context, id uint) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	DeleteUser(ctx context.Context, id uint) error
}

type userService struct {
	repo repository.UserRepository
}

func NewUserService(repo repository.UserRepository) UserService {
	return &userService{repo: repo}
}

// CreateUser hashes the plain password, pre-checks the unique fields for a
// friendly conflict message, and still translates a constraint violation
// from the insert itself: the indexes are authoritative, the pre-checks are
// not.
func (s *userService) CreateUser(ctx context.Context, user *models.User, password string) error {
	if _, err := s.repo.FindByEmail(ctx, user.Email); err == nil {
		return ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("check email: %w", err)
	}

	if _, err := s.repo.FindByUsername(ctx, user.Username); err == nil {
		return ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("check username: %w", err)
	}

	hashed, err := hash.Password(password)
	if err != nil {
		return err
	}
	user.PasswordHash = hashed

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrEmailTaken
		}
		return fmt.Errorf("create user: %w", err)
	}

	return nil
}

func (s *userService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.repo.FindAll(ctx)
}

// DeleteUser removes the user; the database cascades the delete to every
// booking owned by that user.
func (s *userService) DeleteUser(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}
