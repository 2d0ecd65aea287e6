package models

import "time"

type LiveClass struct {
	BaseModel
	CourseID    string `gorm:"not null;index"`
	Title       string `gorm:"not null"`
	Description string
	RoomName    string `gorm:"not null"`
	StartTime   time.Time `gorm:"not null"`
	EndTime     time.Time
	IsLive      bool `gorm:"default:false"`
	IsCompleted bool `gorm:"default:false"`

	Course *Course `gorm:"foreignKey:CourseID"`
}
