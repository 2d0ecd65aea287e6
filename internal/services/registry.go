package services

import "lms_backend/internal/email"

// ServiceContainer holds every application service.
type ServiceContainer struct {
	AuthService         AuthService
	UserService         UserService
	CourseService       CourseService
	MaterialService     MaterialService
	AssignmentService   AssignmentService
	QuizService         QuizService
	LiveClassService    LiveClassService
	ChatService         ChatService
	NotificationService NotificationService
	ActivityService     ActivityService
	EmailSender         email.Sender
}
