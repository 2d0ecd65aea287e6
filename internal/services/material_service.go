package services

import (
	"lms_backend/internal/logger"
	"lms_backend/internal/models"
	"lms_backend/internal/repositories"
	"lms_backend/internal/services/dto"
	"lms_backend/pkg/apperrors"
)

type MaterialService interface {
	// CreateMaterial stores the material and fans a notification out to
	// every enrolled student.
	CreateMaterial(instructorID string, req *dto.CreateMaterialRequest) (*dto.MaterialResponse, error)
	ListByCourse(courseID string) ([]*dto.MaterialResponse, error)
}

type materialService struct {
	materialRepo        repositories.MaterialRepository
	courseRepo          repositories.CourseRepository
	notificationService NotificationService
}

func NewMaterialService(
	materialRepo repositories.MaterialRepository,
	courseRepo repositories.CourseRepository,
	notificationService NotificationService,
) MaterialService {
	return &materialService{
		materialRepo:        materialRepo,
		courseRepo:          courseRepo,
		notificationService: notificationService,
	}
}

func (s *materialService) CreateMaterial(instructorID string, req *dto.CreateMaterialRequest) (*dto.MaterialResponse, error) {
	course, err := s.courseRepo.FindByID(req.CourseID)
	if err != nil {
		return nil, err
	}
	if course.InstructorID != instructorID {
		return nil, apperrors.NewForbiddenError("You do not teach this course")
	}

	material := &models.Material{
		CourseID:    req.CourseID,
		Title:       req.Title,
		Description: req.Description,
		FilePath:    req.FilePath,
		FileType:    req.FileType,
	}
	if err := s.materialRepo.Create(material); err != nil {
		return nil, err
	}

	event := MaterialCreated{MaterialID: material.ID, MaterialTitle: material.Title}
	if err := s.notificationService.NotifyEnrolledStudents(course.ID, event); err != nil {
		logger.Error("material notification fan-out failed", "material_id", material.ID, "error", err)
	}

	return materialResponse(material), nil
}

func (s *materialService) ListByCourse(courseID string) ([]*dto.MaterialResponse, error) {
	materials, err := s.materialRepo.ListByCourse(courseID)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.MaterialResponse, 0, len(materials))
	for i := range materials {
		responses = append(responses, materialResponse(&materials[i]))
	}
	return responses, nil
}

func materialResponse(material *models.Material) *dto.MaterialResponse {
	return &dto.MaterialResponse{
		ID:          material.ID,
		CourseID:    material.CourseID,
		Title:       material.Title,
		Description: material.Description,
		FilePath:    material.FilePath,
		FileType:    material.FileType,
		UploadedAt:  material.UploadedAt,
	}
}
