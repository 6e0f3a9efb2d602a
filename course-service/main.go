package main

import (
	"log"

	"github.com/enrollhub/enrollment-microservice/course-service/config"
	"github.com/enrollhub/enrollment-microservice/course-service/internal/handler"
	"github.com/enrollhub/enrollment-microservice/course-service/internal/middleware"
	"github.com/enrollhub/enrollment-microservice/course-service/internal/repository"
	"github.com/enrollhub/enrollment-microservice/course-service/internal/service"
	"github.com/enrollhub/enrollment-microservice/course-service/pkg/database"
	"github.com/enrollhub/enrollment-microservice/course-service/pkg/rabbitmq"
	"github.com/enrollhub/enrollment-microservice/course-service/pkg/validation"
	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
)

func main() {
	cfg := config.Load()

	db := database.NewPostgresDB(cfg.DSN())

	// Course writes are announced to user-service over RabbitMQ; the REST
	// surface works without the broker.
	publisher, err := rabbitmq.NewPublisher(cfg.RabbitURL)
	if err != nil {
		log.Printf("RabbitMQ unavailable, course sync disabled: %v", err)
	} else {
		defer publisher.Close()
	}

	repo := repository.NewCourseRepository(db)
	svc := service.NewCourseService(repo, publisher)

	e := echo.New()
	e.HTTPErrorHandler = middleware.ErrorHandler
	e.Validator = validation.New()
	e.Use(echoMw.RequestLoggerWithConfig(echoMw.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v echoMw.RequestLoggerValues) error {
			log.Printf("%s %s %d", v.Method, v.URI, v.Status)
			return nil
		},
	}))
	e.Use(echoMw.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok", "service": "course-service"})
	})

	api := e.Group("/api/courses")
	handler.NewCourseHandler(svc).RegisterRoutes(api)

	log.Printf("Course Service starting on :%s", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
