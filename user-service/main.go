package main

import (
	"log"

	"github.com/enrollhub/enrollment-microservice/user-service/config"
	"github.com/enrollhub/enrollment-microservice/user-service/internal/consumer"
	"github.com/enrollhub/enrollment-microservice/user-service/internal/handler"
	"github.com/enrollhub/enrollment-microservice/user-service/internal/middleware"
	"github.com/enrollhub/enrollment-microservice/user-service/internal/repository"
	"github.com/enrollhub/enrollment-microservice/user-service/internal/service"
	"github.com/enrollhub/enrollment-microservice/user-service/pkg/database"
	"github.com/enrollhub/enrollment-microservice/user-service/pkg/rabbitmq"
	"github.com/enrollhub/enrollment-microservice/user-service/pkg/validation"
	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
)

func main() {
	cfg := config.Load()

	db := database.NewPostgresDB(cfg.DSN())

	// RabbitMQ consumer: sync courses published by course-service. The
	// REST surface works without the broker.
	mqConsumer, err := rabbitmq.NewConsumer(cfg.RabbitURL)
	if err != nil {
		log.Printf("RabbitMQ unavailable, course sync disabled: %v", err)
	} else {
		defer mqConsumer.Close()

		msgs, err := mqConsumer.Consume()
		if err != nil {
			log.Fatalf("failed to start consuming: %v", err)
		}
		consumer.NewCourseConsumer(db).Start(msgs)
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	bookingRepo := repository.NewBookingRepository(db)

	// Services
	userSvc := service.NewUserService(userRepo)
	courseSvc := service.NewCourseService(courseRepo)
	bookingSvc := service.NewBookingService(bookingRepo, userRepo, courseRepo)

	// Echo
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
		return c.JSON(200, map[string]string{"status": "ok", "service": "user-service"})
	})

	handler.NewUserHandler(userSvc).RegisterRoutes(e.Group("/api/users"))
	handler.NewCourseHandler(courseSvc).RegisterRoutes(e.Group("/api/courses"))
	handler.NewBookingHandler(bookingSvc).RegisterRoutes(e)

	log.Printf("User Service starting on :%s", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
