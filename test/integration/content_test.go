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

func TestAssignment_SubmitAndGradeFlow(t *testing.T) {
	ts := GetTestServer(t)

	instructorToken, instructor := helpers.CreateAndLoginInstructor(t, ts)
	studentToken, student := helpers.CreateAndLoginStudent(t, ts)
	course := helpers.CreateTestCourse(t, ts.DB, instructor.ID, "ASGN101")
	helpers.EnrollStudent(t, ts.DB, student.ID, course.ID)

	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/instructor/assignments", instructorToken, map[string]interface{}{
		"course_id":   course.ID,
		"title":       "Essay One",
		"description": "Write about databases",
		"deadline":    time.Now().Add(7 * 24 * time.Hour).Format(time.RFC3339),
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, bodyStr)

	var assignment struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &assignment))

	// Student submits; the instructor gets a direct notification.
	res, bodyStr = ts.SendRequest(t, http.MethodPost, "/api/v1/student/assignments/"+assignment.ID+"/submissions", studentToken, map[string]interface{}{
		"answer_text": "My essay text",
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, bodyStr)

	var submission struct {
		ID    string   `json:"id"`
		Grade *float64 `json:"grade"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &submission))
	assert.Nil(t, submission.Grade)

	res, bodyStr = ts.SendRequest(t, http.MethodGet, "/api/v1/notifications", instructorToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, "New Submission Received")
	assert.Contains(t, bodyStr, "Essay One")

	// Empty submissions are rejected.
	res, _ = ts.SendRequest(t, http.MethodPost, "/api/v1/student/assignments/"+assignment.ID+"/submissions", studentToken, map[string]interface{}{})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	// Instructor grades; the student gets notified.
	res, _ = ts.SendRequest(t, http.MethodPut, "/api/v1/instructor/submissions/"+submission.ID+"/grade", instructorToken, map[string]interface{}{
		"grade": 87.5,
	})
	require.Equal(t, http.StatusOK, res.StatusCode)

	res, bodyStr = ts.SendRequest(t, http.MethodGet, "/api/v1/student/submissions", studentToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)

	var mySubmissions []struct {
		ID    string   `json:"id"`
		Grade *float64 `json:"grade"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &mySubmissions))
	require.Len(t, mySubmissions, 1)
	require.NotNil(t, mySubmissions[0].Grade)
	assert.InDelta(t, 87.5, *mySubmissions[0].Grade, 0.001)

	res, bodyStr = ts.SendRequest(t, http.MethodGet, "/api/v1/notifications", studentToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, "Assignment Graded")
}

func TestAssignment_ForeignInstructorCannotGrade(t *testing.T) {
	ts := GetTestServer(t)

	instructorToken, instructor := helpers.CreateAndLoginInstructor(t, ts)
	foreignToken, _ := helpers.CreateAndLoginInstructor(t, ts)
	studentToken, student := helpers.CreateAndLoginStudent(t, ts)
	course := helpers.CreateTestCourse(t, ts.DB, instructor.ID, "ASGNACL")
	helpers.EnrollStudent(t, ts.DB, student.ID, course.ID)

	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/instructor/assignments", instructorToken, map[string]interface{}{
		"course_id": course.ID,
		"title":     "Guarded Assignment",
		"deadline":  time.Now().Add(24 * time.Hour).Format(time.RFC3339),
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, bodyStr)
	var assignment struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &assignment))

	res, bodyStr = ts.SendRequest(t, http.MethodPost, "/api/v1/student/assignments/"+assignment.ID+"/submissions", studentToken, map[string]interface{}{
		"answer_text": "work",
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, bodyStr)
	var submission struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &submission))

	res, _ = ts.SendRequest(t, http.MethodPut, "/api/v1/instructor/submissions/"+submission.ID+"/grade", foreignToken, map[string]interface{}{
		"grade": 100,
	})
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	res, _ = ts.SendRequest(t, http.MethodGet, "/api/v1/instructor/assignments/"+assignment.ID+"/submissions", foreignToken, nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
}

func TestQuiz_TakeAndScore(t *testing.T) {
	ts := GetTestServer(t)

	instructorToken, instructor := helpers.CreateAndLoginInstructor(t, ts)
	studentToken, student := helpers.CreateAndLoginStudent(t, ts)
	course := helpers.CreateTestCourse(t, ts.DB, instructor.ID, "QUIZ101")
	helpers.EnrollStudent(t, ts.DB, student.ID, course.ID)

	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/instructor/quizzes", instructorToken, map[string]interface{}{
		"course_id":          course.ID,
		"title":              "Midterm",
		"time_limit_minutes": 15,
		"questions": []map[string]string{
			{"text": "2+2?", "option_a": "3", "option_b": "4", "option_c": "5", "option_d": "6", "correct_option": "B"},
			{"text": "Capital of France?", "option_a": "Paris", "option_b": "Rome", "option_c": "Berlin", "option_d": "Madrid", "correct_option": "A"},
		},
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, bodyStr)

	var quiz struct {
		ID            string `json:"id"`
		QuestionCount int    `json:"question_count"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &quiz))
	assert.Equal(t, 2, quiz.QuestionCount)

	// Taking view hides correct options.
	res, bodyStr = ts.SendRequest(t, http.MethodGet, "/api/v1/student/quizzes/"+quiz.ID, studentToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)
	assert.NotContains(t, bodyStr, "correct_option")

	var takeResp struct {
		Questions []struct {
			ID   string `json:"id"`
			Text string `json:"text"`
		} `json:"questions"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &takeResp))
	require.Len(t, takeResp.Questions, 2)

	// One right answer out of two scores 50.
	answers := map[string]string{}
	for _, q := range takeResp.Questions {
		if q.Text == "2+2?" {
			answers[q.ID] = "B"
		} else {
			answers[q.ID] = "C"
		}
	}
	res, bodyStr = ts.SendRequest(t, http.MethodPost, "/api/v1/student/quizzes/"+quiz.ID+"/submissions", studentToken, map[string]interface{}{
		"answers": answers,
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, bodyStr)

	var result struct {
		Score   float64 `json:"score"`
		Total   int     `json:"total"`
		Correct int     `json:"correct"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &result))
	assert.InDelta(t, 50.0, result.Score, 0.001)
	assert.Equal(t, 2, result.Total)
	assert.Equal(t, 1, result.Correct)

	// Instructor sees the stored result.
	res, bodyStr = ts.SendRequest(t, http.MethodGet, "/api/v1/instructor/quizzes/"+quiz.ID+"/results", instructorToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	var results []struct {
		Score float64 `json:"score"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &results))
	require.Len(t, results, 1)
	assert.InDelta(t, 50.0, results[0].Score, 0.001)
}

func TestLiveClass_ScheduleAndRun(t *testing.T) {
	ts := GetTestServer(t)

	instructorToken, instructor := helpers.CreateAndLoginInstructor(t, ts)
	studentToken, student := helpers.CreateAndLoginStudent(t, ts)
	course := helpers.CreateTestCourse(t, ts.DB, instructor.ID, "LIVE101")
	helpers.EnrollStudent(t, ts.DB, student.ID, course.ID)

	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/instructor/live-classes", instructorToken, map[string]interface{}{
		"course_id":  course.ID,
		"title":      "Office Hours",
		"start_time": time.Now().Add(time.Hour).Format(time.RFC3339),
		"end_time":   time.Now().Add(2 * time.Hour).Format(time.RFC3339),
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, bodyStr)

	var liveClass struct {
		ID       string `json:"id"`
		RoomName string `json:"room_name"`
		IsLive   bool   `json:"is_live"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &liveClass))
	assert.Regexp(t, `^class-[0-9a-f]{8}$`, liveClass.RoomName)
	assert.False(t, liveClass.IsLive)

	// Enrolled students are notified.
	res, bodyStr = ts.SendRequest(t, http.MethodGet, "/api/v1/notifications", studentToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, "New Live Class Scheduled")

	res, _ = ts.SendRequest(t, http.MethodPut, "/api/v1/instructor/live-classes/"+liveClass.ID+"/start", instructorToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)

	res, bodyStr = ts.SendRequest(t, http.MethodGet, "/api/v1/courses/"+course.ID, studentToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	var detail struct {
		LiveClasses []struct {
			IsLive      bool `json:"is_live"`
			IsCompleted bool `json:"is_completed"`
		} `json:"live_classes"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &detail))
	require.Len(t, detail.LiveClasses, 1)
	assert.True(t, detail.LiveClasses[0].IsLive)

	res, _ = ts.SendRequest(t, http.MethodPut, "/api/v1/instructor/live-classes/"+liveClass.ID+"/end", instructorToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)

	res, bodyStr = ts.SendRequest(t, http.MethodGet, "/api/v1/courses/"+course.ID, studentToken, nil)
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &detail))
	assert.False(t, detail.LiveClasses[0].IsLive)
	assert.True(t, detail.LiveClasses[0].IsCompleted)
}
