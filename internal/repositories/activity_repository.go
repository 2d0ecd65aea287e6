package repositories

import (
	"gorm.io/gorm"

	"lms_backend/internal/models"
)

type ActivityRepository interface {
	Create(entry *models.ActivityLog) error
	List(userID string, page, pageSize int) ([]models.ActivityLog, int64, error)
}

type activityRepository struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) ActivityRepository {
	return &activityRepository{db: db}
}

func (r *activityRepository) Create(entry *models.ActivityLog) error {
	return r.db.Create(entry).Error
}

func (r *activityRepository) List(userID string, page, pageSize int) ([]models.ActivityLog, int64, error) {
	var entries []models.ActivityLog
	query := r.db.Model(&models.ActivityLog{})
	if userID != "" {
		query = query.Where("user_id = ?", userID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("created_at DESC").
		Limit(pageSize).Offset((page - 1) * pageSize).
		Find(&entries).Error
	return entries, total, err
}
