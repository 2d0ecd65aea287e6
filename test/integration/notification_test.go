package integration_test

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lms_backend/internal/models"
	"lms_backend/test/helpers"
)

func unreadCount(t *testing.T, ts *helpers.TestServer, token string) int {
	res, bodyStr := ts.SendRequest(t, http.MethodGet, "/api/v1/notifications/unread-count", token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)

	var resp struct {
		UnreadCount int `json:"unread_count"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &resp))
	return resp.UnreadCount
}

func TestNotification_MaterialFanOut(t *testing.T) {
	ts := GetTestServer(t)

	instructorToken, instructor := helpers.CreateAndLoginInstructor(t, ts)
	studentToken, student := helpers.CreateAndLoginStudent(t, ts)
	secondToken, second := helpers.CreateAndLoginStudent(t, ts)
	otherToken, _ := helpers.CreateAndLoginStudent(t, ts)
	course := helpers.CreateTestCourse(t, ts.DB, instructor.ID, "NOTIF101")
	helpers.EnrollStudent(t, ts.DB, student.ID, course.ID)
	helpers.EnrollStudent(t, ts.DB, second.ID, course.ID)

	assert.Equal(t, 0, unreadCount(t, ts, studentToken))

	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/instructor/materials", instructorToken, map[string]interface{}{
		"course_id": course.ID,
		"title":     "Lecture Notes Week 1",
		"file_path": "/files/week1.pdf",
		"file_type": "pdf",
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, bodyStr)

	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &created))

	// Every enrolled student got exactly one notification; the outsider none.
	assert.Equal(t, 1, unreadCount(t, ts, studentToken))
	assert.Equal(t, 1, unreadCount(t, ts, secondToken))
	assert.Equal(t, 0, unreadCount(t, ts, otherToken))

	res, bodyStr = ts.SendRequest(t, http.MethodGet, "/api/v1/notifications", studentToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)

	var listResp struct {
		Notifications []struct {
			Type      string `json:"type"`
			Title     string `json:"title"`
			Message   string `json:"message"`
			ActionURL string `json:"action_url"`
			IconClass string `json:"icon_class"`
			RelatedID string `json:"related_id"`
			IsRead    bool   `json:"is_read"`
		} `json:"notifications"`
		Total int `json:"total"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &listResp))
	require.Equal(t, 1, listResp.Total)

	n := listResp.Notifications[0]
	assert.Equal(t, "material", n.Type)
	assert.Equal(t, "New Material Uploaded", n.Title)
	assert.Contains(t, n.Message, "Lecture Notes Week 1")
	assert.Equal(t, "/student/courses/"+course.ID+"?tab=materials", n.ActionURL)
	assert.Equal(t, "bi bi-file-earmark-text", n.IconClass)
	assert.Equal(t, created.ID, n.RelatedID)
	assert.False(t, n.IsRead)
}

func TestNotification_FanOutIsIdempotent(t *testing.T) {
	ts := GetTestServer(t)

	_, instructor := helpers.CreateAndLoginInstructor(t, ts)
	studentToken, student := helpers.CreateAndLoginStudent(t, ts)
	course := helpers.CreateTestCourse(t, ts.DB, instructor.ID, "NOTIFIDEM")
	helpers.EnrollStudent(t, ts.DB, student.ID, course.ID)

	// Insert the same (user, type, related_id) row twice; the unique
	// index keeps the second write a no-op.
	row := &models.Notification{
		UserID:    student.ID,
		Type:      "assignment",
		Title:     "New Assignment",
		Message:   "duplicate delivery",
		RelatedID: "related-1",
	}
	require.NoError(t, ts.DB.Create(row).Error)

	dup := &models.Notification{
		UserID:    student.ID,
		Type:      "assignment",
		Title:     "New Assignment",
		Message:   "duplicate delivery",
		RelatedID: "related-1",
	}
	err := ts.DB.Exec(
		`INSERT INTO notifications (id, user_id, type, title, message, related_id, created_at, updated_at)
		 VALUES (gen_random_uuid(), ?, ?, ?, ?, ?, now(), now())
		 ON CONFLICT (user_id, type, related_id) DO NOTHING`,
		dup.UserID, dup.Type, dup.Title, dup.Message, dup.RelatedID,
	).Error
	require.NoError(t, err)

	assert.Equal(t, 1, unreadCount(t, ts, studentToken))
}

func TestNotification_MarkAllAsRead(t *testing.T) {
	ts := GetTestServer(t)

	instructorToken, instructor := helpers.CreateAndLoginInstructor(t, ts)
	studentToken, student := helpers.CreateAndLoginStudent(t, ts)
	course := helpers.CreateTestCourse(t, ts.DB, instructor.ID, "NOTIFREAD")
	helpers.EnrollStudent(t, ts.DB, student.ID, course.ID)

	for _, title := range []string{"Assignment A", "Assignment B"} {
		res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/instructor/assignments", instructorToken, map[string]interface{}{
			"course_id": course.ID,
			"title":     title,
			"deadline":  time.Now().Add(72 * time.Hour).Format(time.RFC3339),
		})
		require.Equal(t, http.StatusCreated, res.StatusCode, bodyStr)
	}
	require.Equal(t, 2, unreadCount(t, ts, studentToken))

	res, _ := ts.SendRequest(t, http.MethodPost, "/api/v1/notifications/mark-all-read", studentToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, 0, unreadCount(t, ts, studentToken))

	// Second call is a no-op.
	res, _ = ts.SendRequest(t, http.MethodPost, "/api/v1/notifications/mark-all-read", studentToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, 0, unreadCount(t, ts, studentToken))

	var readRows int64
	ts.DB.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = true AND read_at IS NOT NULL", student.ID).
		Count(&readRows)
	assert.Equal(t, int64(2), readRows)
}

func TestNotification_QuizDeleteCleansUp(t *testing.T) {
	ts := GetTestServer(t)

	instructorToken, instructor := helpers.CreateAndLoginInstructor(t, ts)
	studentToken, student := helpers.CreateAndLoginStudent(t, ts)
	course := helpers.CreateTestCourse(t, ts.DB, instructor.ID, "NOTIFQUIZ")
	helpers.EnrollStudent(t, ts.DB, student.ID, course.ID)

	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/instructor/quizzes", instructorToken, map[string]interface{}{
		"course_id": course.ID,
		"title":     "Pop Quiz",
		"questions": []map[string]string{
			{
				"text":           "2+2?",
				"option_a":       "3",
				"option_b":       "4",
				"option_c":       "5",
				"option_d":       "6",
				"correct_option": "B",
			},
		},
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, bodyStr)

	var quiz struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &quiz))
	require.Equal(t, 1, unreadCount(t, ts, studentToken))

	res, _ = ts.SendRequest(t, http.MethodDelete, "/api/v1/instructor/quizzes/"+quiz.ID, instructorToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)

	// The quiz notification disappeared with the quiz.
	assert.Equal(t, 0, unreadCount(t, ts, studentToken))

	var questionCount int64
	ts.DB.Model(&models.QuizQuestion{}).Where("quiz_id = ?", quiz.ID).Count(&questionCount)
	assert.Equal(t, int64(0), questionCount)
}
