package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/enrollhub/enrollment-microservice/course-service/internal/dto"
	"github.com/enrollhub/enrollment-microservice/course-service/internal/models"
	"github.com/enrollhub/enrollment-microservice/course-service/internal/service"
	"github.com/enrollhub/enrollment-microservice/course-service/pkg/validation"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

// --- Mock CourseService ---

type mockCourseService struct {
	createFn func(ctx context.Context, course *models.Course) error
	getFn    func(ctx context.Context, id uint) (*models.Course, error)
	listFn   func(ctx context.Context, limit, offset int) ([]models.Course, error)
}

func (m *mockCourseService) CreateCourse(ctx context.Context, course *models.Course) error {
	return m.createFn(ctx, course)
}
func (m *mockCourseService) GetCourse(ctx context.Context, id uint) (*models.Course, error) {
	return m.getFn(ctx, id)
}
func (m *mockCourseService) ListCourses(ctx context.Context, limit, offset int) ([]models.Course, error) {
	return m.listFn(ctx, limit, offset)
}

func newTestContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = validation.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

// --- Tests ---

func TestCreateCourse_Handler_Success(t *testing.T) {
	svc := &mockCourseService{
		createFn: func(ctx context.Context, course *models.Course) error {
			course.ID = 1
			return nil
		},
	}

	c, rec := newTestContext(http.MethodPost, "/api/courses", `{"code":"CS101","name":"Intro"}`)

	h := NewCourseHandler(svc)
	err := h.CreateCourse(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp dto.CourseResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, uint(1), resp.ID)
	assert.Equal(t, "CS101", resp.Code)
	assert.Equal(t, "Intro", resp.Name)
}

func TestCreateCourse_Handler_TrimsCode(t *testing.T) {
	var created *models.Course
	svc := &mockCourseService{
		createFn: func(ctx context.Context, course *models.Course) error {
			created = course
			course.ID = 1
			return nil
		},
	}

	c, rec := newTestContext(http.MethodPost, "/api/courses", `{"code":"  CS101  ","name":"Intro"}`)

	h := NewCourseHandler(svc)
	err := h.CreateCourse(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "CS101", created.Code)
}

func TestCreateCourse_Handler_DuplicateCode(t *testing.T) {
	svc := &mockCourseService{
		createFn: func(ctx context.Context, course *models.Course) error {
			return service.ErrCourseCodeTaken
		},
	}

	c, _ := newTestContext(http.MethodPost, "/api/courses", `{"code":"CS101","name":"Intro"}`)

	h := NewCourseHandler(svc)
	err := h.CreateCourse(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusConflict, he.Code)
}

func TestCreateCourse_Handler_MissingCode(t *testing.T) {
	c, _ := newTestContext(http.MethodPost, "/api/courses", `{"name":"Intro"}`)

	h := NewCourseHandler(nil)
	err := h.CreateCourse(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestCreateCourse_Handler_CodeTooLong(t *testing.T) {
	code := strings.Repeat("X", 33)
	c, _ := newTestContext(http.MethodPost, "/api/courses", `{"code":"`+code+`","name":"Intro"}`)

	h := NewCourseHandler(nil)
	err := h.CreateCourse(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestGetCourse_Handler_Success(t *testing.T) {
	svc := &mockCourseService{
		getFn: func(ctx context.Context, id uint) (*models.Course, error) {
			return &models.Course{ID: id, Code: "CS101", Name: "Intro"}, nil
		},
	}

	c, rec := newTestContext(http.MethodGet, "/api/courses/1", "")
	c.SetParamNames("id")
	c.SetParamValues("1")

	h := NewCourseHandler(svc)
	err := h.GetCourse(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp dto.CourseResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, uint(1), resp.ID)
}

func TestGetCourse_Handler_NotFound(t *testing.T) {
	svc := &mockCourseService{
		getFn: func(ctx context.Context, id uint) (*models.Course, error) {
			return nil, service.ErrCourseNotFound
		},
	}

	c, _ := newTestContext(http.MethodGet, "/api/courses/999", "")
	c.SetParamNames("id")
	c.SetParamValues("999")

	h := NewCourseHandler(svc)
	err := h.GetCourse(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Code)
}

func TestGetCourse_Handler_InvalidID(t *testing.T) {
	c, _ := newTestContext(http.MethodGet, "/api/courses/abc", "")
	c.SetParamNames("id")
	c.SetParamValues("abc")

	h := NewCourseHandler(nil)
	err := h.GetCourse(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestListCourses_Handler_DefaultPagination(t *testing.T) {
	var gotLimit, gotOffset int
	svc := &mockCourseService{
		listFn: func(ctx context.Context, limit, offset int) ([]models.Course, error) {
			gotLimit, gotOffset = limit, offset
			return []models.Course{
				{ID: 1, Code: "CS101", Name: "Intro"},
				{ID: 2, Code: "CS102", Name: "Data Structures"},
			}, nil
		},
	}

	c, rec := newTestContext(http.MethodGet, "/api/courses", "")

	h := NewCourseHandler(svc)
	err := h.ListCourses(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 10, gotLimit)
	assert.Equal(t, 0, gotOffset)

	var resp []dto.CourseResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp, 2)
	assert.LessOrEqual(t, resp[0].ID, resp[1].ID)
}

func TestListCourses_Handler_ExplicitPagination(t *testing.T) {
	var gotLimit, gotOffset int
	svc := &mockCourseService{
		listFn: func(ctx context.Context, limit, offset int) ([]models.Course, error) {
			gotLimit, gotOffset = limit, offset
			return []models.Course{}, nil
		},
	}

	c, rec := newTestContext(http.MethodGet, "/api/courses?limit=25&offset=50", "")

	h := NewCourseHandler(svc)
	err := h.ListCourses(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 25, gotLimit)
	assert.Equal(t, 50, gotOffset)
}

func TestListCourses_Handler_LimitCapped(t *testing.T) {
	var gotLimit int
	svc := &mockCourseService{
		listFn: func(ctx context.Context, limit, offset int) ([]models.Course, error) {
			gotLimit = limit
			return []models.Course{}, nil
		},
	}

	c, _ := newTestContext(http.MethodGet, "/api/courses?limit=5000", "")

	h := NewCourseHandler(svc)
	err := h.ListCourses(c)

	assert.NoError(t, err)
	assert.Equal(t, 100, gotLimit)
}

func TestListCourses_Handler_InvalidLimit(t *testing.T) {
	c, _ := newTestContext(http.MethodGet, "/api/courses?limit=abc", "")

	h := NewCourseHandler(nil)
	err := h.ListCourses(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}
