package models

// ActivityLog records user actions for the admin activity report.
type ActivityLog struct {
	BaseModel
	UserID string `gorm:"not null;index"`
	Action string `gorm:"not null"` // "login", "course_view", "chat_message", ...
	Detail string

	User *User `gorm:"foreignKey:UserID"`
}
