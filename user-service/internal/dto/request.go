package dto

type CreateUserRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=100"`
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email,max=100"`
	Age      int    `json:"age" validate:"required,gte=18,lte=120"`
	Password string `json:"password" validate:"required,min=6,max=255"`
}

type CreateCourseRequest struct {
	Code string `json:"code" validate:"required,min=1,max=32"`
	Name string `json:"name" validate:"required,min=1,max=255"`
}

type CreateBookingRequest struct {
	UserID   uint `json:"user_id" validate:"required"`
	CourseID uint `json:"course_id" validate:"required"`
}

// CreateUserBookingRequest is the nested form: the user id comes from the
// path, only the course id travels in the body.
type CreateUserBookingRequest struct {
	CourseID uint `json:"course_id" validate:"required"`
}
