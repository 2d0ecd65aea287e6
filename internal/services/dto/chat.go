package dto

type SendMessageRequest struct {
	CourseID string `json:"course_id" validate:"required"`
	Message  string `json:"message" validate:"required"`
}

// SendMessageResponse echoes the persisted message back to the sender.
// Time is the server-assigned send time formatted as HH:MM.
type SendMessageResponse struct {
	Success bool   `json:"success"`
	User    string `json:"user"`
	Message string `json:"message"`
	Time    string `json:"time"`
}

type ChatMessageResponse struct {
	ID       string `json:"id"`
	CourseID string `json:"course_id"`
	User     string `json:"user"`
	Message  string `json:"message"`
	SentAt   string `json:"sent_at"`
	Time     string `json:"time"`
}
