package integration_test

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lms_backend/test/helpers"
)

func TestCourse_AdminLifecycle(t *testing.T) {
	ts := GetTestServer(t)

	adminToken, _ := helpers.CreateAndLoginAdmin(t, ts)
	_, instructor := helpers.CreateAndLoginInstructor(t, ts)
	studentToken, student := helpers.CreateAndLoginStudent(t, ts)

	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/admin/courses", adminToken, map[string]interface{}{
		"full_name":     "Introduction to Databases",
		"short_name":    "DB101",
		"category":      "Computer Science",
		"summary":       "Relational fundamentals",
		"is_visible":    true,
		"start_date":    time.Now().Format(time.RFC3339),
		"instructor_id": instructor.ID,
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, bodyStr)

	var course struct {
		ID           string `json:"id"`
		ShortName    string `json:"short_name"`
		InstructorID string `json:"instructor_id"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &course))
	assert.Equal(t, "DB101", course.ShortName)
	assert.Equal(t, instructor.ID, course.InstructorID)

	// Assigning a non-instructor fails.
	res, _ = ts.SendRequest(t, http.MethodPost, "/api/v1/admin/courses", adminToken, map[string]interface{}{
		"full_name":     "Bad Course",
		"short_name":    "BAD1",
		"start_date":    time.Now().Format(time.RFC3339),
		"instructor_id": student.ID,
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	// Enroll the student, then verify double enrollment conflicts.
	res, _ = ts.SendRequest(t, http.MethodPost, "/api/v1/admin/courses/"+course.ID+"/enrollments", adminToken, map[string]interface{}{
		"student_id": student.ID,
	})
	require.Equal(t, http.StatusCreated, res.StatusCode)

	res, _ = ts.SendRequest(t, http.MethodPost, "/api/v1/admin/courses/"+course.ID+"/enrollments", adminToken, map[string]interface{}{
		"student_id": student.ID,
	})
	assert.Equal(t, http.StatusConflict, res.StatusCode)

	// The student now sees the course in their list.
	res, bodyStr = ts.SendRequest(t, http.MethodGet, "/api/v1/courses", studentToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, "DB101")
}

func TestCourse_DetailAccessControl(t *testing.T) {
	ts := GetTestServer(t)

	instructorToken, instructor := helpers.CreateAndLoginInstructor(t, ts)
	otherInstructorToken, _ := helpers.CreateAndLoginInstructor(t, ts)
	studentToken, student := helpers.CreateAndLoginStudent(t, ts)
	outsiderToken, _ := helpers.CreateAndLoginStudent(t, ts)

	course := helpers.CreateTestCourse(t, ts.DB, instructor.ID, "ACL101")
	helpers.EnrollStudent(t, ts.DB, student.ID, course.ID)

	// Owner and enrolled student can read the detail.
	res, _ := ts.SendRequest(t, http.MethodGet, "/api/v1/courses/"+course.ID, instructorToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	res, bodyStr := ts.SendRequest(t, http.MethodGet, "/api/v1/courses/"+course.ID, studentToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var detail struct {
		ShortName   string        `json:"short_name"`
		Materials   []interface{} `json:"materials"`
		Assignments []interface{} `json:"assignments"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &detail))
	assert.Equal(t, "ACL101", detail.ShortName)
	assert.NotNil(t, detail.Materials)
	assert.NotNil(t, detail.Assignments)

	// Everyone else is rejected.
	res, _ = ts.SendRequest(t, http.MethodGet, "/api/v1/courses/"+course.ID, outsiderToken, nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
	res, _ = ts.SendRequest(t, http.MethodGet, "/api/v1/courses/"+course.ID, otherInstructorToken, nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
}
