package repositories

import (
	"errors"

	"gorm.io/gorm"

	"lms_backend/internal/models"
)

var ErrMaterialNotFound = errors.New("material not found")

type MaterialRepository interface {
	Create(material *models.Material) error
	FindByID(id string) (*models.Material, error)
	ListByCourse(courseID string) ([]models.Material, error)
}

type materialRepository struct {
	db *gorm.DB
}

func NewMaterialRepository(db *gorm.DB) MaterialRepository {
	return &materialRepository{db: db}
}

func (r *materialRepository) Create(material *models.Material) error {
	return r.db.Create(material).Error
}

func (r *materialRepository) FindByID(id string) (*models.Material, error) {
	var material models.Material
	err := r.db.First(&material, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMaterialNotFound
		}
		return nil, err
	}
	return &material, nil
}

func (r *materialRepository) ListByCourse(courseID string) ([]models.Material, error) {
	var materials []models.Material
	err := r.db.Where("course_id = ?", courseID).Order("uploaded_at DESC").Find(&materials).Error
	return materials, err
}
