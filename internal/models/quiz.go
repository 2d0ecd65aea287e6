package models

import "time"

type Quiz struct {
	BaseModel
	CourseID         string `gorm:"not null;index"`
	Title            string `gorm:"not null"`
	TimeLimitMinutes int    `gorm:"default:10"`

	Course    *Course        `gorm:"foreignKey:CourseID"`
	Questions []QuizQuestion `gorm:"foreignKey:QuizID"`
}

type QuizQuestion struct {
	BaseModel
	QuizID        string `gorm:"not null;index"`
	Text          string `gorm:"type:text;not null"`
	OptionA       string `gorm:"not null"`
	OptionB       string `gorm:"not null"`
	OptionC       string `gorm:"not null"`
	OptionD       string `gorm:"not null"`
	CorrectOption string `gorm:"type:varchar(1);not null"` // A, B, C or D
}

type QuizSubmission struct {
	BaseModel
	QuizID      string  `gorm:"not null;index"`
	StudentID   string  `gorm:"not null;index"`
	Score       float64 `gorm:"not null"`
	Total       int     `gorm:"not null"`
	SubmittedAt time.Time `gorm:"default:now()"`

	Quiz    *Quiz `gorm:"foreignKey:QuizID"`
	Student *User `gorm:"foreignKey:StudentID"`
}
