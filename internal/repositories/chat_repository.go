package repositories

import (
	"gorm.io/gorm"

	"lms_backend/internal/models"
)

type ChatRepository interface {
	CreateMessage(message *models.ChatMessage) error
	// ListByCourse returns every message of the course ordered by send
	// time ascending. Bulk read, no pagination.
	ListByCourse(courseID string) ([]models.ChatMessage, error)
}

type chatRepository struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) ChatRepository {
	return &chatRepository{db: db}
}

func (r *chatRepository) CreateMessage(message *models.ChatMessage) error {
	return r.db.Create(message).Error
}

func (r *chatRepository) ListByCourse(courseID string) ([]models.ChatMessage, error) {
	var messages []models.ChatMessage
	err := r.db.
		Preload("User").
		Where("course_id = ?", courseID).
		Order("sent_at ASC").
		Find(&messages).Error
	return messages, err
}
