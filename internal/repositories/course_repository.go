package repositories

import (
	"errors"

	"gorm.io/gorm"

	"lms_backend/internal/models"
)

var (
	ErrCourseNotFound  = errors.New("course not found")
	ErrAlreadyEnrolled = errors.New("student already enrolled")
)

type CourseRepository interface {
	Create(course *models.Course) error
	FindByID(id string) (*models.Course, error)
	FindByIDWithContent(id string) (*models.Course, error)
	ListVisible() ([]models.Course, error)
	ListByInstructor(instructorID string) ([]models.Course, error)
	ListEnrolled(studentID string) ([]models.Course, error)

	Enroll(enrollment *models.Enrollment) error
	IsEnrolled(studentID, courseID string) (bool, error)
	// FindEnrolledUserIDs returns the distinct user ids of every student
	// enrolled in the course: the notification recipient set.
	FindEnrolledUserIDs(courseID string) ([]string, error)
}

type courseRepository struct {
	db *gorm.DB
}

func NewCourseRepository(db *gorm.DB) CourseRepository {
	return &courseRepository{db: db}
}

func (r *courseRepository) Create(course *models.Course) error {
	return r.db.Create(course).Error
}

func (r *courseRepository) FindByID(id string) (*models.Course, error) {
	var course models.Course
	err := r.db.First(&course, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}
	return &course, nil
}

func (r *courseRepository) FindByIDWithContent(id string) (*models.Course, error) {
	var course models.Course
	err := r.db.
		Preload("Instructor").
		Preload("Materials").
		Preload("Assignments").
		Preload("Quizzes").
		Preload("LiveClasses").
		First(&course, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}
	return &course, nil
}

func (r *courseRepository) ListVisible() ([]models.Course, error) {
	var courses []models.Course
	err := r.db.Where("is_visible = ?", true).Order("created_at ASC").Find(&courses).Error
	return courses, err
}

func (r *courseRepository) ListByInstructor(instructorID string) ([]models.Course, error) {
	var courses []models.Course
	err := r.db.Where("instructor_id = ?", instructorID).Order("created_at ASC").Find(&courses).Error
	return courses, err
}

func (r *courseRepository) ListEnrolled(studentID string) ([]models.Course, error) {
	var courses []models.Course
	err := r.db.
		Joins("JOIN enrollments ON enrollments.course_id = courses.id").
		Where("enrollments.student_id = ? AND courses.is_visible = ?", studentID, true).
		Order("courses.created_at ASC").
		Find(&courses).Error
	return courses, err
}

func (r *courseRepository) Enroll(enrollment *models.Enrollment) error {
	enrolled, err := r.IsEnrolled(enrollment.StudentID, enrollment.CourseID)
	if err != nil {
		return err
	}
	if enrolled {
		return ErrAlreadyEnrolled
	}
	return r.db.Create(enrollment).Error
}

func (r *courseRepository) IsEnrolled(studentID, courseID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Enrollment{}).
		Where("student_id = ? AND course_id = ?", studentID, courseID).
		Count(&count).Error
	return count > 0, err
}

func (r *courseRepository) FindEnrolledUserIDs(courseID string) ([]string, error) {
	var userIDs []string
	err := r.db.Model(&models.Enrollment{}).
		Distinct("student_id").
		Where("course_id = ?", courseID).
		Pluck("student_id", &userIDs).Error
	return userIDs, err
}
