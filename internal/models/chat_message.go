package models

import "time"

// ChatMessage is one course chat line. Rows are immutable once created;
// SentAt is always server-assigned.
type ChatMessage struct {
	ID       string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CourseID string    `gorm:"not null;index"`
	UserID   string    `gorm:"not null;index"`
	Body     string    `gorm:"type:text;not null"`
	SentAt   time.Time `gorm:"not null;index"`

	Course *Course `gorm:"foreignKey:CourseID"`
	User   *User   `gorm:"foreignKey:UserID"`
}
