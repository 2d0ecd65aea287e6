package dto

import "time"

type CreateCourseRequest struct {
	FullName     string     `json:"full_name" validate:"required"`
	ShortName    string     `json:"short_name" validate:"required"`
	Category     string     `json:"category"`
	Summary      string     `json:"summary"`
	IsVisible    bool       `json:"is_visible"`
	StartDate    time.Time  `json:"start_date" validate:"required"`
	EndDate      *time.Time `json:"end_date"`
	InstructorID string     `json:"instructor_id" validate:"required"`
}

type EnrollRequest struct {
	StudentID string `json:"student_id" validate:"required"`
}

type CourseResponse struct {
	ID           string     `json:"id"`
	FullName     string     `json:"full_name"`
	ShortName    string     `json:"short_name"`
	Category     string     `json:"category"`
	Summary      string     `json:"summary"`
	IsVisible    bool       `json:"is_visible"`
	StartDate    time.Time  `json:"start_date"`
	EndDate      *time.Time `json:"end_date"`
	InstructorID string     `json:"instructor_id"`
	Instructor   string     `json:"instructor,omitempty"`
}

type CourseDetailResponse struct {
	CourseResponse
	Materials   []MaterialResponse  `json:"materials"`
	Assignments []AssignmentResponse `json:"assignments"`
	Quizzes     []QuizResponse      `json:"quizzes"`
	LiveClasses []LiveClassResponse `json:"live_classes"`
}
