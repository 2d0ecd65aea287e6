package repositories

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"lms_backend/internal/models"
)

var ErrNotificationNotFound = errors.New("notification not found")

type NotificationRepository interface {
	CreateBatch(notifications []*models.Notification) error
	ListByUser(userID string, unreadOnly bool) ([]models.Notification, error)
	UnreadCount(userID string) (int64, error)
	MarkAllAsRead(userID string) error
	// DeleteByTypeAndRelatedID cascades notification cleanup when the
	// related entity is deleted (observed for quiz deletion).
	DeleteByTypeAndRelatedID(notificationType, relatedID string) error
}

type notificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) CreateBatch(notifications []*models.Notification) error {
	if len(notifications) == 0 {
		return nil
	}
	// The (user_id, type, related_id) unique index plus DO NOTHING makes
	// repeated fan-out of the same event a no-op instead of a duplicate.
	return r.db.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "type"}, {Name: "related_id"}},
			DoNothing: true,
		}).
		CreateInBatches(notifications, 100).Error
}

func (r *notificationRepository) ListByUser(userID string, unreadOnly bool) ([]models.Notification, error) {
	var notifications []models.Notification
	query := r.db.Where("user_id = ?", userID)
	if unreadOnly {
		query = query.Where("is_read = ?", false)
	}
	err := query.Order("created_at DESC").Find(&notifications).Error
	return notifications, err
}

func (r *notificationRepository) UnreadCount(userID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}

func (r *notificationRepository) MarkAllAsRead(userID string) error {
	// Set-based update: already-read rows are untouched, so the call is
	// idempotent. is_read only ever flips false -> true.
	result := r.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Updates(map[string]interface{}{
			"is_read": true,
			"read_at": time.Now(),
		})
	return result.Error
}

func (r *notificationRepository) DeleteByTypeAndRelatedID(notificationType, relatedID string) error {
	return r.db.
		Where("type = ? AND related_id = ?", notificationType, relatedID).
		Delete(&models.Notification{}).Error
}
