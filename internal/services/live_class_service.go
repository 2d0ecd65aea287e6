package services

import (
	"fmt"

	"github.com/google/uuid"

	"lms_backend/internal/logger"
	"lms_backend/internal/models"
	"lms_backend/internal/repositories"
	"lms_backend/internal/services/dto"
	"lms_backend/pkg/apperrors"
)

type LiveClassService interface {
	ScheduleLiveClass(instructorID string, req *dto.ScheduleLiveClassRequest) (*dto.LiveClassResponse, error)
	ListByCourse(courseID string) ([]*dto.LiveClassResponse, error)
	StartLiveClass(liveClassID, instructorID string) error
	EndLiveClass(liveClassID, instructorID string) error
}

type liveClassService struct {
	liveClassRepo       repositories.LiveClassRepository
	courseRepo          repositories.CourseRepository
	notificationService NotificationService
}

func NewLiveClassService(
	liveClassRepo repositories.LiveClassRepository,
	courseRepo repositories.CourseRepository,
	notificationService NotificationService,
) LiveClassService {
	return &liveClassService{
		liveClassRepo:       liveClassRepo,
		courseRepo:          courseRepo,
		notificationService: notificationService,
	}
}

func (s *liveClassService) ScheduleLiveClass(instructorID string, req *dto.ScheduleLiveClassRequest) (*dto.LiveClassResponse, error) {
	course, err := s.courseRepo.FindByID(req.CourseID)
	if err != nil {
		return nil, err
	}
	if course.InstructorID != instructorID {
		return nil, apperrors.NewForbiddenError("You do not teach this course")
	}
	if !req.EndTime.IsZero() && req.EndTime.Before(req.StartTime) {
		return nil, apperrors.NewBadRequestError("End time must be after start time")
	}

	liveClass := &models.LiveClass{
		CourseID:    req.CourseID,
		Title:       req.Title,
		Description: req.Description,
		RoomName:    newRoomName(),
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
	}
	if err := s.liveClassRepo.Create(liveClass); err != nil {
		return nil, err
	}

	event := LiveClassScheduled{LiveClassID: liveClass.ID, LiveClassTitle: liveClass.Title}
	if err := s.notificationService.NotifyEnrolledStudents(course.ID, event); err != nil {
		logger.Error("live class notification fan-out failed", "live_class_id", liveClass.ID, "error", err)
	}

	return liveClassResponse(liveClass), nil
}

func (s *liveClassService) ListByCourse(courseID string) ([]*dto.LiveClassResponse, error) {
	liveClasses, err := s.liveClassRepo.ListByCourse(courseID)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.LiveClassResponse, 0, len(liveClasses))
	for i := range liveClasses {
		responses = append(responses, liveClassResponse(&liveClasses[i]))
	}
	return responses, nil
}

func (s *liveClassService) StartLiveClass(liveClassID, instructorID string) error {
	if err := s.authorize(liveClassID, instructorID); err != nil {
		return err
	}
	return s.liveClassRepo.SetStatus(liveClassID, true, false)
}

func (s *liveClassService) EndLiveClass(liveClassID, instructorID string) error {
	if err := s.authorize(liveClassID, instructorID); err != nil {
		return err
	}
	return s.liveClassRepo.SetStatus(liveClassID, false, true)
}

func (s *liveClassService) authorize(liveClassID, instructorID string) error {
	liveClass, err := s.liveClassRepo.FindByID(liveClassID)
	if err != nil {
		return err
	}

	course, err := s.courseRepo.FindByID(liveClass.CourseID)
	if err != nil {
		return err
	}
	if course.InstructorID != instructorID {
		return apperrors.NewForbiddenError("You do not teach this course")
	}
	return nil
}

// newRoomName generates a short unique video room identifier.
func newRoomName() string {
	return fmt.Sprintf("class-%s", uuid.NewString()[:8])
}

func liveClassResponse(liveClass *models.LiveClass) *dto.LiveClassResponse {
	return &dto.LiveClassResponse{
		ID:          liveClass.ID,
		CourseID:    liveClass.CourseID,
		Title:       liveClass.Title,
		Description: liveClass.Description,
		RoomName:    liveClass.RoomName,
		StartTime:   liveClass.StartTime,
		EndTime:     liveClass.EndTime,
		IsLive:      liveClass.IsLive,
		IsCompleted: liveClass.IsCompleted,
	}
}
