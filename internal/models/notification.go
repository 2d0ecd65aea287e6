package models

import (
	"time"

	"gorm.io/datatypes"
)

// Notification is one per-user row produced by course-event fan-out.
// The (user_id, type, related_id) unique index makes fan-out idempotent:
// re-delivering the same event inserts nothing.
type Notification struct {
	BaseModel
	UserID    string `gorm:"not null;index;uniqueIndex:idx_notification_dedup"`
	Type      string `gorm:"not null;uniqueIndex:idx_notification_dedup"` // "material", "assignment", "quiz", "live-class", "submission", "grade"
	Title     string `gorm:"not null"`
	Message   string
	RelatedID string `gorm:"index;uniqueIndex:idx_notification_dedup"`
	ActionURL string
	IconClass string         `gorm:"default:'fas fa-bell'"`
	Data      datatypes.JSON `gorm:"type:jsonb"`
	IsRead    bool           `gorm:"default:false"`
	ReadAt    *time.Time

	User *User `gorm:"foreignKey:UserID"`
}
