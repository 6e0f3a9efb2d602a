package consumer

import (
	"encoding/json"
	"log"

	"github.com/enrollhub/enrollment-microservice/user-service/internal/models"
	amqp "github.com/rabbitmq/amqp091-go"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CourseConsumer struct {
	db *gorm.DB
}

func NewCourseConsumer(db *gorm.DB) *CourseConsumer {
	return &CourseConsumer{db: db}
}

// Start listens for messages and upserts courses into the local user DB.
func (cc *CourseConsumer) Start(msgs <-chan amqp.Delivery) {
	go func() {
		for msg := range msgs {
			cc.handleMessage(msg)
		}
		log.Println("[CourseConsumer] channel closed, stopping consumer")
	}()
}

func (cc *CourseConsumer) handleMessage(msg amqp.Delivery) {
	var course models.Course
	if err := json.Unmarshal(msg.Body, &course); err != nil {
		log.Printf("[CourseConsumer] failed to unmarshal: %v", err)
		msg.Nack(false, false)
		return
	}

	// Upsert: insert or update on conflict (same ID from Course Service)
	result := cc.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"code", "name", "updated_at"}),
	}).Create(&course)

	if result.Error != nil {
		log.Printf("[CourseConsumer] failed to upsert course %d: %v", course.ID, result.Error)
		msg.Nack(false, true) // requeue
		return
	}

	log.Printf("[CourseConsumer] synced course %d: %s", course.ID, course.Code)
	msg.Ack(false)
}
