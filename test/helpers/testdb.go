package helpers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"lms_backend/internal/models"
)

// CreateUser inserts a user, hashing the password when it is not
// already a bcrypt hash.
func CreateUser(t *testing.T, db *gorm.DB, user *models.User) {
	if user.PasswordHash != "" && !strings.HasPrefix(user.PasswordHash, "$2a$") {
		hashed, err := bcrypt.GenerateFromPassword([]byte(user.PasswordHash), bcrypt.DefaultCost)
		require.NoError(t, err, "failed to hash test password")
		user.PasswordHash = string(hashed)
	}

	require.NoError(t, db.Create(user).Error, "failed to create test user")
}

// CreateAndLoginUser provisions a user directly in the database and
// logs in through the API, returning the bearer token.
func CreateAndLoginUser(t *testing.T, ts *TestServer, username, password string, role models.UserRole) (string, *models.User) {
	user := &models.User{
		Username:     username,
		PasswordHash: password,
		Role:         role,
		FullName:     "Test " + string(role),
		Email:        username + "@test.local",
	}
	CreateUser(t, ts.DB, user)

	loginBody := map[string]interface{}{
		"username": username,
		"password": password,
	}
	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/login", "", loginBody)
	require.Equal(t, http.StatusOK, res.StatusCode, "login should succeed, got: "+bodyStr)

	var loginResponse struct {
		Token string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &loginResponse))
	assert.NotEmpty(t, loginResponse.Token)

	return loginResponse.Token, user
}

// CreateAndLoginInstructor creates an instructor with a unique username.
func CreateAndLoginInstructor(t *testing.T, ts *TestServer) (string, *models.User) {
	username := fmt.Sprintf("instructor_%d", time.Now().UnixNano())
	return CreateAndLoginUser(t, ts, username, "password123", models.UserRoleInstructor)
}

// CreateAndLoginStudent creates a student with a unique username.
func CreateAndLoginStudent(t *testing.T, ts *TestServer) (string, *models.User) {
	username := fmt.Sprintf("student_%d", time.Now().UnixNano())
	return CreateAndLoginUser(t, ts, username, "password123", models.UserRoleStudent)
}

// CreateAndLoginAdmin creates an admin with a unique username.
func CreateAndLoginAdmin(t *testing.T, ts *TestServer) (string, *models.User) {
	username := fmt.Sprintf("admin_%d", time.Now().UnixNano())
	return CreateAndLoginUser(t, ts, username, "password123", models.UserRoleAdmin)
}

// CreateTestCourse inserts a course taught by the instructor.
func CreateTestCourse(t *testing.T, db *gorm.DB, instructorID, shortName string) models.Course {
	course := models.Course{
		FullName:     "Course " + shortName,
		ShortName:    shortName,
		Category:     "Testing",
		IsVisible:    true,
		StartDate:    time.Now(),
		InstructorID: instructorID,
	}
	require.NoError(t, db.Create(&course).Error, "failed to create test course")
	return course
}

// EnrollStudent links a student to a course directly in the database.
func EnrollStudent(t *testing.T, db *gorm.DB, studentID, courseID string) {
	enrollment := models.Enrollment{
		StudentID: studentID,
		CourseID:  courseID,
	}
	require.NoError(t, db.Create(&enrollment).Error, "failed to enroll test student")
}
