package services

import (
	"encoding/json"

	"gorm.io/datatypes"

	"lms_backend/internal/logger"
	"lms_backend/internal/models"
	"lms_backend/internal/repositories"
	"lms_backend/internal/services/dto"
)

type NotificationService interface {
	// NotifyEnrolledStudents writes one notification row per student
	// enrolled in the course. Best-effort: callers log the error and
	// let the triggering request succeed.
	NotifyEnrolledStudents(courseID string, event CourseEvent) error
	// NotifyUser writes a single notification row, used for
	// instructor-facing and student-facing direct events.
	NotifyUser(userID, courseID string, event CourseEvent) error

	GetUserNotifications(userID string, unreadOnly bool) (*dto.NotificationListResponse, error)
	UnreadCount(userID string) (int64, error)
	MarkAllAsRead(userID string) error
}

type notificationService struct {
	notificationRepo repositories.NotificationRepository
	courseRepo       repositories.CourseRepository
}

func NewNotificationService(
	notificationRepo repositories.NotificationRepository,
	courseRepo repositories.CourseRepository,
) NotificationService {
	return &notificationService{
		notificationRepo: notificationRepo,
		courseRepo:       courseRepo,
	}
}

func (s *notificationService) NotifyEnrolledStudents(courseID string, event CourseEvent) error {
	userIDs, err := s.courseRepo.FindEnrolledUserIDs(courseID)
	if err != nil {
		return err
	}
	if len(userIDs) == 0 {
		return nil
	}

	notifications := make([]*models.Notification, 0, len(userIDs))
	for _, userID := range userIDs {
		notifications = append(notifications, s.buildNotification(userID, courseID, event))
	}

	if err := s.notificationRepo.CreateBatch(notifications); err != nil {
		return err
	}

	logger.Info("notification fan-out",
		"course_id", courseID,
		"type", event.Type(),
		"recipients", len(userIDs),
	)
	return nil
}

func (s *notificationService) NotifyUser(userID, courseID string, event CourseEvent) error {
	return s.notificationRepo.CreateBatch([]*models.Notification{
		s.buildNotification(userID, courseID, event),
	})
}

func (s *notificationService) GetUserNotifications(userID string, unreadOnly bool) (*dto.NotificationListResponse, error) {
	notifications, err := s.notificationRepo.ListByUser(userID, unreadOnly)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		responses = append(responses, &dto.NotificationResponse{
			ID:        n.ID,
			Type:      n.Type,
			Title:     n.Title,
			Message:   n.Message,
			RelatedID: n.RelatedID,
			ActionURL: n.ActionURL,
			IconClass: n.IconClass,
			IsRead:    n.IsRead,
			CreatedAt: n.CreatedAt,
		})
	}

	return &dto.NotificationListResponse{
		Notifications: responses,
		Total:         len(responses),
	}, nil
}

func (s *notificationService) UnreadCount(userID string) (int64, error) {
	return s.notificationRepo.UnreadCount(userID)
}

func (s *notificationService) MarkAllAsRead(userID string) error {
	return s.notificationRepo.MarkAllAsRead(userID)
}

func (s *notificationService) buildNotification(userID, courseID string, event CourseEvent) *models.Notification {
	data, _ := json.Marshal(map[string]string{"course_id": courseID})

	return &models.Notification{
		UserID:    userID,
		Type:      event.Type(),
		Title:     event.Title(),
		Message:   event.Body(),
		RelatedID: event.RelatedID(),
		ActionURL: event.ActionURL(courseID),
		IconClass: event.IconClass(),
		Data:      datatypes.JSON(data),
		IsRead:    false,
	}
}
