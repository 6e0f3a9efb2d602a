package dto

import (
	"time"

	"github.com/enrollhub/enrollment-microservice/user-service/internal/models"
)

// UserResponse deliberately has no credential field: the password hash
// never leaves the service.
type UserResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Age       int       `json:"age"`
	CreatedAt time.Time `json:"created_at"`
}

type CourseResponse struct {
	ID        uint      `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type BookingResponse struct {
	ID        uint            `json:"id"`
	UserID    uint            `json:"user_id"`
	CourseID  uint            `json:"course_id"`
	CreatedAt time.Time       `json:"created_at"`
	Course    *CourseResponse `json:"course,omitempty"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}

func ToUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Username:  u.Username,
		Email:     u.Email,
		Age:       u.Age,
		CreatedAt: u.CreatedAt,
	}
}

func ToCourseResponse(c *models.Course) CourseResponse {
	return CourseResponse{
		ID:        c.ID,
		Code:      c.Code,
		Name:      c.Name,
		CreatedAt: c.CreatedAt,
	}
}

func ToBookingResponse(b *models.Booking) BookingResponse {
	resp := BookingResponse{
		ID:        b.ID,
		UserID:    b.UserID,
		CourseID:  b.CourseID,
		CreatedAt: b.CreatedAt,
	}
	if b.Course != nil {
		course := ToCourseResponse(b.Course)
		resp.Course = &course
	}
	return resp
}
