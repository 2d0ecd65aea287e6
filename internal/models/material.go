package models

import "time"

// Material is course content metadata. File bytes live in external
// storage; only the path is kept here.
type Material struct {
	BaseModel
	CourseID    string `gorm:"not null;index"`
	Title       string `gorm:"not null"`
	Description string
	FilePath    string
	FileType    string
	UploadedAt  time.Time `gorm:"default:now()"`

	Course *Course `gorm:"foreignKey:CourseID"`
}
