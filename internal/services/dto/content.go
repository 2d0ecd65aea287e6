package dto

import "time"

// --- Materials ---

type CreateMaterialRequest struct {
	CourseID    string `json:"course_id" validate:"required"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	FilePath    string `json:"file_path"`
	FileType    string `json:"file_type"`
}

type MaterialResponse struct {
	ID          string    `json:"id"`
	CourseID    string    `json:"course_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	FilePath    string    `json:"file_path"`
	FileType    string    `json:"file_type"`
	UploadedAt  time.Time `json:"uploaded_at"`
}

// --- Assignments ---

type CreateAssignmentRequest struct {
	CourseID    string    `json:"course_id" validate:"required"`
	Title       string    `json:"title" validate:"required"`
	Description string    `json:"description"`
	Deadline    time.Time `json:"deadline" validate:"required"`
}

type AssignmentResponse struct {
	ID          string    `json:"id"`
	CourseID    string    `json:"course_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Deadline    time.Time `json:"deadline"`
}

type SubmitAssignmentRequest struct {
	FilePath   string `json:"file_path"`
	AnswerText string `json:"answer_text"`
}

type GradeSubmissionRequest struct {
	Grade float64 `json:"grade" validate:"min=0,max=100"`
}

type SubmissionResponse struct {
	ID           string    `json:"id"`
	AssignmentID string    `json:"assignment_id"`
	StudentID    string    `json:"student_id"`
	Student      string    `json:"student,omitempty"`
	FilePath     string    `json:"file_path"`
	AnswerText   string    `json:"answer_text"`
	SubmittedAt  time.Time `json:"submitted_at"`
	Grade        *float64  `json:"grade"`
}

// --- Quizzes ---

type CreateQuizRequest struct {
	CourseID         string                      `json:"course_id" validate:"required"`
	Title            string                      `json:"title" validate:"required"`
	TimeLimitMinutes int                         `json:"time_limit_minutes" validate:"min=0"`
	Questions        []CreateQuizQuestionRequest `json:"questions" validate:"required,min=1,dive"`
}

type CreateQuizQuestionRequest struct {
	Text          string `json:"text" validate:"required"`
	OptionA       string `json:"option_a" validate:"required"`
	OptionB       string `json:"option_b" validate:"required"`
	OptionC       string `json:"option_c" validate:"required"`
	OptionD       string `json:"option_d" validate:"required"`
	CorrectOption string `json:"correct_option" validate:"required,oneof=A B C D"`
}

type QuizResponse struct {
	ID               string `json:"id"`
	CourseID         string `json:"course_id"`
	Title            string `json:"title"`
	TimeLimitMinutes int    `json:"time_limit_minutes"`
	QuestionCount    int    `json:"question_count"`
}

// QuizQuestionResponse never exposes the correct option to takers.
type QuizQuestionResponse struct {
	ID      string `json:"id"`
	Text    string `json:"text"`
	OptionA string `json:"option_a"`
	OptionB string `json:"option_b"`
	OptionC string `json:"option_c"`
	OptionD string `json:"option_d"`
}

type TakeQuizResponse struct {
	QuizResponse
	Questions []QuizQuestionResponse `json:"questions"`
}

type SubmitQuizRequest struct {
	// Answers maps question id to the chosen option letter.
	Answers map[string]string `json:"answers" validate:"required"`
}

type QuizResultResponse struct {
	QuizID  string  `json:"quiz_id"`
	Score   float64 `json:"score"`
	Total   int     `json:"total"`
	Correct int     `json:"correct"`
}

// --- Live classes ---

type ScheduleLiveClassRequest struct {
	CourseID    string    `json:"course_id" validate:"required"`
	Title       string    `json:"title" validate:"required"`
	Description string    `json:"description"`
	StartTime   time.Time `json:"start_time" validate:"required"`
	EndTime     time.Time `json:"end_time"`
}

type LiveClassResponse struct {
	ID          string    `json:"id"`
	CourseID    string    `json:"course_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	RoomName    string    `json:"room_name"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	IsLive      bool      `json:"is_live"`
	IsCompleted bool      `json:"is_completed"`
}
