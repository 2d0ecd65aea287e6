package repositories

import (
	"errors"

	"gorm.io/gorm"

	"lms_backend/internal/models"
)

var ErrLiveClassNotFound = errors.New("live class not found")

type LiveClassRepository interface {
	Create(liveClass *models.LiveClass) error
	FindByID(id string) (*models.LiveClass, error)
	ListByCourse(courseID string) ([]models.LiveClass, error)
	SetStatus(id string, isLive, isCompleted bool) error
}

type liveClassRepository struct {
	db *gorm.DB
}

func NewLiveClassRepository(db *gorm.DB) LiveClassRepository {
	return &liveClassRepository{db: db}
}

func (r *liveClassRepository) Create(liveClass *models.LiveClass) error {
	return r.db.Create(liveClass).Error
}

func (r *liveClassRepository) FindByID(id string) (*models.LiveClass, error) {
	var liveClass models.LiveClass
	err := r.db.First(&liveClass, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLiveClassNotFound
		}
		return nil, err
	}
	return &liveClass, nil
}

func (r *liveClassRepository) ListByCourse(courseID string) ([]models.LiveClass, error) {
	var liveClasses []models.LiveClass
	err := r.db.Where("course_id = ?", courseID).Order("start_time ASC").Find(&liveClasses).Error
	return liveClasses, err
}

func (r *liveClassRepository) SetStatus(id string, isLive, isCompleted bool) error {
	result := r.db.Model(&models.LiveClass{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_live":      isLive,
			"is_completed": isCompleted,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrLiveClassNotFound
	}
	return nil
}
