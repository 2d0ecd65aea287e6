package services

import (
	"lms_backend/internal/logger"
	"lms_backend/internal/models"
	"lms_backend/internal/repositories"
	"lms_backend/internal/services/dto"
)

type ActivityService interface {
	// Record is best-effort telemetry: failures are logged, never
	// surfaced to the triggering request.
	Record(userID, action, detail string)
	List(userID string, page, pageSize int) (*dto.ActivityLogListResponse, error)
}

type activityService struct {
	activityRepo repositories.ActivityRepository
}

func NewActivityService(activityRepo repositories.ActivityRepository) ActivityService {
	return &activityService{activityRepo: activityRepo}
}

func (s *activityService) Record(userID, action, detail string) {
	entry := &models.ActivityLog{
		UserID: userID,
		Action: action,
		Detail: detail,
	}
	if err := s.activityRepo.Create(entry); err != nil {
		logger.Warn("failed to record activity", "user_id", userID, "action", action, "error", err)
	}
}

func (s *activityService) List(userID string, page, pageSize int) (*dto.ActivityLogListResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	entries, total, err := s.activityRepo.List(userID, page, pageSize)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.ActivityLogResponse, 0, len(entries))
	for i := range entries {
		e := &entries[i]
		responses = append(responses, &dto.ActivityLogResponse{
			ID:        e.ID,
			UserID:    e.UserID,
			Action:    e.Action,
			Detail:    e.Detail,
			CreatedAt: e.CreatedAt,
		})
	}

	return &dto.ActivityLogListResponse{
		Entries:  responses,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}
