package repositories

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"lms_backend/internal/models"
)

var (
	ErrAssignmentNotFound = errors.New("assignment not found")
	ErrSubmissionNotFound = errors.New("submission not found")
)

type AssignmentRepository interface {
	Create(assignment *models.Assignment) error
	FindByID(id string) (*models.Assignment, error)
	ListByCourse(courseID string) ([]models.Assignment, error)

	CreateSubmission(submission *models.AssignmentSubmission) error
	FindSubmissionByID(id string) (*models.AssignmentSubmission, error)
	ListSubmissions(assignmentID string) ([]models.AssignmentSubmission, error)
	ListSubmissionsByStudent(studentID string) ([]models.AssignmentSubmission, error)
	GradeSubmission(id string, grade float64) error
}

type assignmentRepository struct {
	db *gorm.DB
}

func NewAssignmentRepository(db *gorm.DB) AssignmentRepository {
	return &assignmentRepository{db: db}
}

func (r *assignmentRepository) Create(assignment *models.Assignment) error {
	return r.db.Create(assignment).Error
}

func (r *assignmentRepository) FindByID(id string) (*models.Assignment, error) {
	var assignment models.Assignment
	err := r.db.First(&assignment, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssignmentNotFound
		}
		return nil, err
	}
	return &assignment, nil
}

func (r *assignmentRepository) ListByCourse(courseID string) ([]models.Assignment, error) {
	var assignments []models.Assignment
	err := r.db.Where("course_id = ?", courseID).Order("deadline ASC").Find(&assignments).Error
	return assignments, err
}

func (r *assignmentRepository) CreateSubmission(submission *models.AssignmentSubmission) error {
	if submission.SubmittedAt.IsZero() {
		submission.SubmittedAt = time.Now()
	}
	return r.db.Create(submission).Error
}

func (r *assignmentRepository) FindSubmissionByID(id string) (*models.AssignmentSubmission, error) {
	var submission models.AssignmentSubmission
	err := r.db.Preload("Student").Preload("Assignment").First(&submission, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubmissionNotFound
		}
		return nil, err
	}
	return &submission, nil
}

func (r *assignmentRepository) ListSubmissions(assignmentID string) ([]models.AssignmentSubmission, error) {
	var submissions []models.AssignmentSubmission
	err := r.db.Preload("Student").
		Where("assignment_id = ?", assignmentID).
		Order("submitted_at ASC").
		Find(&submissions).Error
	return submissions, err
}

func (r *assignmentRepository) ListSubmissionsByStudent(studentID string) ([]models.AssignmentSubmission, error) {
	var submissions []models.AssignmentSubmission
	err := r.db.Preload("Assignment").
		Where("student_id = ?", studentID).
		Order("submitted_at DESC").
		Find(&submissions).Error
	return submissions, err
}

func (r *assignmentRepository) GradeSubmission(id string, grade float64) error {
	result := r.db.Model(&models.AssignmentSubmission{}).
		Where("id = ?", id).
		Update("grade", grade)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSubmissionNotFound
	}
	return nil
}
