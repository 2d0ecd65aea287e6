package database

import (
	"gorm.io/gorm"

	"lms_backend/internal/models"
)

// Migrate runs AutoMigrate for every model in dependency order.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Course{},
		&models.Enrollment{},
		&models.Material{},
		&models.Assignment{},
		&models.AssignmentSubmission{},
		&models.Quiz{},
		&models.QuizQuestion{},
		&models.QuizSubmission{},
		&models.LiveClass{},
		&models.ChatMessage{},
		&models.Notification{},
		&models.ActivityLog{},
	)
}
