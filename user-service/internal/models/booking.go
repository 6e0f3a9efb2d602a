package models

import "time"

// Booking links a user to a course. The composite unique index rejects a
// second enrollment of the same user in the same course; both foreign keys
// cascade on delete so no orphaned booking can survive its user or course.
type Booking struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_booking_user_course" json:"user_id"`
	CourseID  uint      `gorm:"not null;uniqueIndex:idx_booking_user_course" json:"course_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	User   *User   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Course *Course `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"course,omitempty"`
}
