package services

import "fmt"

// CourseEvent is a typed course notification payload. Each variant knows
// its notification type, display text and action URL, so recipient and
// rendering logic is checked at compile time instead of string-matched.
type CourseEvent interface {
	Type() string
	Title() string
	Body() string
	IconClass() string
	RelatedID() string
	ActionURL(courseID string) string
}

type MaterialCreated struct {
	MaterialID    string
	MaterialTitle string
}

func (e MaterialCreated) Type() string      { return "material" }
func (e MaterialCreated) Title() string     { return "New Material Uploaded" }
func (e MaterialCreated) IconClass() string { return "bi bi-file-earmark-text" }
func (e MaterialCreated) RelatedID() string { return e.MaterialID }

func (e MaterialCreated) Body() string {
	return fmt.Sprintf("New material %q has been added to your course.", e.MaterialTitle)
}

func (e MaterialCreated) ActionURL(courseID string) string {
	return fmt.Sprintf("/student/courses/%s?tab=materials", courseID)
}

type AssignmentCreated struct {
	AssignmentID    string
	AssignmentTitle string
}

func (e AssignmentCreated) Type() string      { return "assignment" }
func (e AssignmentCreated) Title() string     { return "New Assignment" }
func (e AssignmentCreated) IconClass() string { return "fas fa-tasks" }
func (e AssignmentCreated) RelatedID() string { return e.AssignmentID }

func (e AssignmentCreated) Body() string {
	return fmt.Sprintf("A new assignment %q has been added.", e.AssignmentTitle)
}

func (e AssignmentCreated) ActionURL(courseID string) string {
	return fmt.Sprintf("/student/courses/%s?tab=assignments", courseID)
}

type QuizCreated struct {
	QuizID    string
	QuizTitle string
}

func (e QuizCreated) Type() string      { return "quiz" }
func (e QuizCreated) Title() string     { return "New Quiz Available" }
func (e QuizCreated) IconClass() string { return "bi bi-patch-question" }
func (e QuizCreated) RelatedID() string { return e.QuizID }

func (e QuizCreated) Body() string {
	return fmt.Sprintf("A new quiz %q has been added to your course.", e.QuizTitle)
}

func (e QuizCreated) ActionURL(courseID string) string {
	return fmt.Sprintf("/student/courses/%s?tab=quizzes", courseID)
}

type LiveClassScheduled struct {
	LiveClassID    string
	LiveClassTitle string
}

func (e LiveClassScheduled) Type() string      { return "live-class" }
func (e LiveClassScheduled) Title() string     { return "New Live Class Scheduled" }
func (e LiveClassScheduled) IconClass() string { return "bi bi-camera-video" }
func (e LiveClassScheduled) RelatedID() string { return e.LiveClassID }

func (e LiveClassScheduled) Body() string {
	return fmt.Sprintf("A new live class %q has been scheduled.", e.LiveClassTitle)
}

func (e LiveClassScheduled) ActionURL(courseID string) string {
	return fmt.Sprintf("/student/courses/%s?tab=live-classes", courseID)
}

// SubmissionReceived goes to the course instructor, not the students.
type SubmissionReceived struct {
	SubmissionID    string
	AssignmentTitle string
	StudentName     string
}

func (e SubmissionReceived) Type() string      { return "submission" }
func (e SubmissionReceived) Title() string     { return "New Submission Received" }
func (e SubmissionReceived) IconClass() string { return "bi bi-inbox" }
func (e SubmissionReceived) RelatedID() string { return e.SubmissionID }

func (e SubmissionReceived) Body() string {
	return fmt.Sprintf("%s submitted %q.", e.StudentName, e.AssignmentTitle)
}

func (e SubmissionReceived) ActionURL(courseID string) string {
	return fmt.Sprintf("/instructor/courses/%s?tab=submissions", courseID)
}

type SubmissionGraded struct {
	SubmissionID    string
	AssignmentTitle string
	Grade           float64
}

func (e SubmissionGraded) Type() string      { return "grade" }
func (e SubmissionGraded) Title() string     { return "Assignment Graded" }
func (e SubmissionGraded) IconClass() string { return "bi bi-check2-circle" }
func (e SubmissionGraded) RelatedID() string { return e.SubmissionID }

func (e SubmissionGraded) Body() string {
	return fmt.Sprintf("Your submission for %q was graded: %.1f.", e.AssignmentTitle, e.Grade)
}

func (e SubmissionGraded) ActionURL(courseID string) string {
	return fmt.Sprintf("/student/courses/%s?tab=assignments", courseID)
}
