package models

import "time"

type Assignment struct {
	BaseModel
	CourseID    string `gorm:"not null;index"`
	Title       string `gorm:"not null"`
	Description string
	Deadline    time.Time

	Course      *Course                `gorm:"foreignKey:CourseID"`
	Submissions []AssignmentSubmission `gorm:"foreignKey:AssignmentID"`
}

type AssignmentSubmission struct {
	BaseModel
	AssignmentID string `gorm:"not null;index"`
	StudentID    string `gorm:"not null;index"`
	FilePath     string
	AnswerText   string    `gorm:"type:text"`
	SubmittedAt  time.Time `gorm:"default:now()"`
	Grade        *float64

	Assignment *Assignment `gorm:"foreignKey:AssignmentID"`
	Student    *User       `gorm:"foreignKey:StudentID"`
}
