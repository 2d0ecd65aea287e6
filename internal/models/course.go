package models

import "time"

type Course struct {
	BaseModel
	FullName     string `gorm:"not null"`
	ShortName    string `gorm:"not null"`
	Category     string
	Summary      string
	IsVisible    bool      `gorm:"default:true"`
	StartDate    time.Time `gorm:"not null"`
	EndDate      *time.Time
	InstructorID string `gorm:"not null;index"`

	Instructor  *User        `gorm:"foreignKey:InstructorID"`
	Enrollments []Enrollment `gorm:"foreignKey:CourseID"`
	Materials   []Material   `gorm:"foreignKey:CourseID"`
	Assignments []Assignment `gorm:"foreignKey:CourseID"`
	Quizzes     []Quiz       `gorm:"foreignKey:CourseID"`
	LiveClasses []LiveClass  `gorm:"foreignKey:CourseID"`
}

// Enrollment links a student to a course. It defines the recipient set
// for course-scoped notification fan-out.
type Enrollment struct {
	BaseModel
	StudentID string `gorm:"not null;index;uniqueIndex:idx_enrollment_student_course"`
	CourseID  string `gorm:"not null;index;uniqueIndex:idx_enrollment_student_course"`

	Student *User   `gorm:"foreignKey:StudentID"`
	Course  *Course `gorm:"foreignKey:CourseID"`
}
