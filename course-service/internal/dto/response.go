package dto

import (
	"time"

	"github.com/enrollhub/enrollment-microservice/course-service/internal/models"
)

type CourseResponse struct {
	ID        uint      `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}

func ToCourseResponse(c *models.Course) CourseResponse {
	return CourseResponse{
		ID:        c.ID,
		Code:      c.Code,
		Name:      c.Name,
		CreatedAt: c.CreatedAt,
	}
}
