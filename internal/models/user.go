package models

type UserRole string

const (
	UserRoleAdmin      UserRole = "admin"
	UserRoleInstructor UserRole = "instructor"
	UserRoleStudent    UserRole = "student"
)

type User struct {
	BaseModel
	Username     string   `gorm:"uniqueIndex;not null"`
	PasswordHash string   `gorm:"not null"`
	Role         UserRole `gorm:"type:varchar(20);not null"`
	FullName     string
	Email        string

	// Relations
	Enrollments   []Enrollment   `gorm:"foreignKey:StudentID"`
	Notifications []Notification `gorm:"foreignKey:UserID"`
}
