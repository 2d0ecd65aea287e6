package repositories

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"lms_backend/internal/models"
)

var ErrQuizNotFound = errors.New("quiz not found")

type QuizRepository interface {
	Create(quiz *models.Quiz) error
	FindByID(id string) (*models.Quiz, error)
	ListByCourse(courseID string) ([]models.Quiz, error)
	// DeleteCascade removes the quiz together with its questions,
	// submissions and notifications in one transaction.
	DeleteCascade(id string) error

	CreateSubmission(submission *models.QuizSubmission) error
	ListSubmissions(quizID string) ([]models.QuizSubmission, error)
}

type quizRepository struct {
	db *gorm.DB
}

func NewQuizRepository(db *gorm.DB) QuizRepository {
	return &quizRepository{db: db}
}

func (r *quizRepository) Create(quiz *models.Quiz) error {
	return r.db.Create(quiz).Error
}

func (r *quizRepository) FindByID(id string) (*models.Quiz, error) {
	var quiz models.Quiz
	err := r.db.Preload("Questions").First(&quiz, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuizNotFound
		}
		return nil, err
	}
	return &quiz, nil
}

func (r *quizRepository) ListByCourse(courseID string) ([]models.Quiz, error) {
	var quizzes []models.Quiz
	err := r.db.Where("course_id = ?", courseID).Order("created_at ASC").Find(&quizzes).Error
	return quizzes, err
}

func (r *quizRepository) DeleteCascade(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&models.Quiz{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrQuizNotFound
		}
		if err := tx.Where("quiz_id = ?", id).Delete(&models.QuizQuestion{}).Error; err != nil {
			return err
		}
		if err := tx.Where("quiz_id = ?", id).Delete(&models.QuizSubmission{}).Error; err != nil {
			return err
		}
		return tx.Where("type = ? AND related_id = ?", "quiz", id).
			Delete(&models.Notification{}).Error
	})
}

func (r *quizRepository) CreateSubmission(submission *models.QuizSubmission) error {
	if submission.SubmittedAt.IsZero() {
		submission.SubmittedAt = time.Now()
	}
	return r.db.Create(submission).Error
}

func (r *quizRepository) ListSubmissions(quizID string) ([]models.QuizSubmission, error) {
	var submissions []models.QuizSubmission
	err := r.db.Preload("Student").
		Where("quiz_id = ?", quizID).
		Order("submitted_at ASC").
		Find(&submissions).Error
	return submissions, err
}
