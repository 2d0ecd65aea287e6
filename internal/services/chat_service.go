package services

import (
	"strings"
	"time"

	"lms_backend/internal/models"
	"lms_backend/internal/repositories"
	"lms_backend/internal/services/dto"
	"lms_backend/pkg/apperrors"
)

// ChatBroadcaster pushes a saved message to every client currently
// watching the course. Implemented by the ws manager; kept as an
// interface here so the service stays transport-agnostic.
type ChatBroadcaster interface {
	BroadcastToCourse(courseID string, event any)
}

// ChatEvent is the frame pushed to websocket clients.
type ChatEvent struct {
	Event   string `json:"event"`
	User    string `json:"user"`
	Message string `json:"message"`
	Time    string `json:"time"`
}

type ChatService interface {
	// SaveMessage persists the message with a server-assigned timestamp
	// and then broadcasts it from the same call, so a misbehaving client
	// cannot skip the push step.
	SaveMessage(userID, courseID, text string) (*dto.SendMessageResponse, error)
	GetMessagesForCourse(courseID string) ([]dto.ChatMessageResponse, error)
}

type chatService struct {
	chatRepo    repositories.ChatRepository
	userRepo    repositories.UserRepository
	courseRepo  repositories.CourseRepository
	broadcaster ChatBroadcaster
}

func NewChatService(
	chatRepo repositories.ChatRepository,
	userRepo repositories.UserRepository,
	courseRepo repositories.CourseRepository,
	broadcaster ChatBroadcaster,
) ChatService {
	return &chatService{
		chatRepo:    chatRepo,
		userRepo:    userRepo,
		courseRepo:  courseRepo,
		broadcaster: broadcaster,
	}
}

func (s *chatService) SaveMessage(userID, courseID, text string) (*dto.SendMessageResponse, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperrors.NewBadRequestError("Message must not be empty")
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.NewUnauthorizedError("Unknown user")
		}
		return nil, err
	}

	if _, err := s.courseRepo.FindByID(courseID); err != nil {
		if apperrors.Is(err, repositories.ErrCourseNotFound) {
			return nil, apperrors.NewNotFoundError("chat", "Course not found")
		}
		return nil, err
	}

	message := &models.ChatMessage{
		CourseID: courseID,
		UserID:   user.ID,
		Body:     text,
		SentAt:   time.Now(), // server clock, never client-supplied
	}

	if err := s.chatRepo.CreateMessage(message); err != nil {
		return nil, err
	}

	timeStr := message.SentAt.Format("15:04")

	// The store write is committed before the push; the hub never holds
	// up the transaction and a dead hub client never fails the save.
	s.broadcaster.BroadcastToCourse(courseID, ChatEvent{
		Event:   "ReceiveMessage",
		User:    user.Username,
		Message: message.Body,
		Time:    timeStr,
	})

	return &dto.SendMessageResponse{
		Success: true,
		User:    user.Username,
		Message: message.Body,
		Time:    timeStr,
	}, nil
}

func (s *chatService) GetMessagesForCourse(courseID string) ([]dto.ChatMessageResponse, error) {
	if _, err := s.courseRepo.FindByID(courseID); err != nil {
		if apperrors.Is(err, repositories.ErrCourseNotFound) {
			return nil, apperrors.NewNotFoundError("chat", "Course not found")
		}
		return nil, err
	}

	messages, err := s.chatRepo.ListByCourse(courseID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.ChatMessageResponse, 0, len(messages))
	for _, m := range messages {
		username := ""
		if m.User != nil {
			username = m.User.Username
		}
		responses = append(responses, dto.ChatMessageResponse{
			ID:       m.ID,
			CourseID: m.CourseID,
			User:     username,
			Message:  m.Body,
			SentAt:   m.SentAt.Format(time.RFC3339),
			Time:     m.SentAt.Format("15:04"),
		})
	}
	return responses, nil
}
