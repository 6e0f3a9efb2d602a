package dto

type CreateCourseRequest struct {
	Code string `json:"code" validate:"required,min=1,max=32"`
	Name string `json:"name" validate:"required,min=1,max=255"`
}
