package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/enrollhub/enrollment-microservice/course-service/internal/dto"
	"github.com/enrollhub/enrollment-microservice/course-service/internal/models"
	"github.com/enrollhub/enrollment-microservice/course-service/internal/service"
	"github.com/labstack/echo/v4"
)

const (
	defaultListLimit = 10
	maxListLimit     = 100
)

type CourseHandler struct {
	svc service.CourseService
}

func NewCourseHandler(svc service.CourseService) *CourseHandler {
	return &CourseHandler{svc: svc}
}

func (h *CourseHandler) RegisterRoutes(g *echo.Group) {
	g.POST("", h.CreateCourse)
	g.GET("", h.ListCourses)
	g.GET("/:id", h.GetCourse)
}

func (h *CourseHandler) CreateCourse(c echo.Context) error {
	var req dto.CreateCourseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	req.Code = strings.TrimSpace(req.Code)
	if err := c.Validate(&req); err != nil {
		return err
	}

	course := &models.Course{
		Code: req.Code,
		Name: req.Name,
	}

	if err := h.svc.CreateCourse(c.Request().Context(), course); err != nil {
		if errors.Is(err, service.ErrCourseCodeTaken) {
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, dto.ToCourseResponse(course))
}

func (h *CourseHandler) GetCourse(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid course id")
	}

	course, err := h.svc.GetCourse(c.Request().Context(), uint(id))
	if err != nil {
		if errors.Is(err, service.ErrCourseNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, dto.ToCourseResponse(course))
}

func (h *CourseHandler) ListCourses(c echo.Context) error {
	limit, offset, err := parsePagination(c)
	if err != nil {
		return err
	}

	courses, err := h.svc.ListCourses(c.Request().Context(), limit, offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	resp := make([]dto.CourseResponse, len(courses))
	for i, course := range courses {
		resp[i] = dto.ToCourseResponse(&course)
	}

	return c.JSON(http.StatusOK, resp)
}

// parsePagination reads optional limit/offset query params. Defaults to
// limit=10 offset=0; limit is capped at 100.
func parsePagination(c echo.Context) (limit, offset int, err error) {
	limit, offset = defaultListLimit, 0

	if v := c.QueryParam("limit"); v != "" {
		n, convErr := strconv.Atoi(v)
		if convErr != nil || n <= 0 {
			return 0, 0, echo.NewHTTPError(http.StatusBadRequest, "limit must be a positive integer")
		}
		if n > maxListLimit {
			n = maxListLimit
		}
		limit = n
	}

	if v := c.QueryParam("offset"); v != "" {
		n, convErr := strconv.Atoi(v)
		if convErr != nil || n < 0 {
			return 0, 0, echo.NewHTTPError(http.StatusBadRequest, "offset must be a non-negative integer")
		}
		offset = n
	}

	return limit, offset, nil
}
