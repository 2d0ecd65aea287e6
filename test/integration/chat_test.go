package integration_test

import (
	"encoding/json"
	"net/http"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lms_backend/internal/models"
	"lms_backend/test/helpers"
)

func dialCourseChat(t *testing.T, ts *helpers.TestServer, token, courseID string) *websocket.Conn {
	wsURL := "ws" + strings.TrimPrefix(ts.Server.URL, "http") + "/ws/chat?token=" + token + "&course_id=" + courseID
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err, "websocket dial should succeed")

	// Registration in the hub happens just after the handshake; give the
	// run loop a moment before broadcasting at it.
	time.Sleep(50 * time.Millisecond)
	return conn
}

func readChatFrame(t *testing.T, conn *websocket.Conn) map[string]string {
	conn.SetReadDeadline(time.Now().Add(3 * time.Second))
	var frame map[string]string
	require.NoError(t, conn.ReadJSON(&frame), "should receive a broadcast frame")
	return frame
}

func TestChat_SendAndBroadcast(t *testing.T) {
	ts := GetTestServer(t)

	instructorToken, instructor := helpers.CreateAndLoginInstructor(t, ts)
	studentToken, student := helpers.CreateAndLoginStudent(t, ts)
	course := helpers.CreateTestCourse(t, ts.DB, instructor.ID, "CHAT101")
	helpers.EnrollStudent(t, ts.DB, student.ID, course.ID)

	studentConn := dialCourseChat(t, ts, studentToken, course.ID)
	defer studentConn.Close()
	instructorConn := dialCourseChat(t, ts, instructorToken, course.ID)
	defer instructorConn.Close()

	// Send over HTTP; both sockets must receive the push.
	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/chat/messages", studentToken, map[string]interface{}{
		"course_id": course.ID,
		"message":   "hello class",
	})
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)

	var sendResp struct {
		Success bool   `json:"success"`
		User    string `json:"user"`
		Message string `json:"message"`
		Time    string `json:"time"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &sendResp))
	assert.True(t, sendResp.Success)
	assert.Equal(t, student.Username, sendResp.User)
	assert.Regexp(t, regexp.MustCompile(`^\d{2}:\d{2}$`), sendResp.Time)

	for _, conn := range []*websocket.Conn{studentConn, instructorConn} {
		frame := readChatFrame(t, conn)
		assert.Equal(t, "ReceiveMessage", frame["event"])
		assert.Equal(t, student.Username, frame["user"])
		assert.Equal(t, "hello class", frame["message"])
		assert.Equal(t, sendResp.Time, frame["time"])
	}

	// The broadcast happened after the row was committed.
	var count int64
	ts.DB.Model(&models.ChatMessage{}).Where("course_id = ?", course.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestChat_SendOverWebSocket(t *testing.T) {
	ts := GetTestServer(t)

	instructorToken, instructor := helpers.CreateAndLoginInstructor(t, ts)
	course := helpers.CreateTestCourse(t, ts.DB, instructor.ID, "CHATWS")

	conn := dialCourseChat(t, ts, instructorToken, course.ID)
	defer conn.Close()

	payload, _ := json.Marshal(map[string]string{"message": "socket message"})
	require.NoError(t, conn.WriteJSON(map[string]interface{}{
		"action": "send_message",
		"data":   json.RawMessage(payload),
	}))

	frame := readChatFrame(t, conn)
	assert.Equal(t, "ReceiveMessage", frame["event"])
	assert.Equal(t, instructor.Username, frame["user"])
	assert.Equal(t, "socket message", frame["message"])

	var msg models.ChatMessage
	require.NoError(t, ts.DB.Where("course_id = ?", course.ID).First(&msg).Error)
	assert.Equal(t, "socket message", msg.Body)
	assert.Equal(t, instructor.ID, msg.UserID)
}

func TestChat_HistoryIsChronological(t *testing.T) {
	ts := GetTestServer(t)

	instructorToken, instructor := helpers.CreateAndLoginInstructor(t, ts)
	course := helpers.CreateTestCourse(t, ts.DB, instructor.ID, "CHATHIST")

	for _, text := range []string{"first", "second", "third"} {
		res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/chat/messages", instructorToken, map[string]interface{}{
			"course_id": course.ID,
			"message":   text,
		})
		require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)
		time.Sleep(10 * time.Millisecond)
	}

	res, bodyStr := ts.SendRequest(t, http.MethodGet, "/api/v1/chat/courses/"+course.ID+"/messages", instructorToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)

	var history []struct {
		User    string `json:"user"`
		Message string `json:"message"`
		SentAt  string `json:"sent_at"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &history))
	require.Len(t, history, 3)
	assert.Equal(t, "first", history[0].Message)
	assert.Equal(t, "second", history[1].Message)
	assert.Equal(t, "third", history[2].Message)
	for _, entry := range history {
		assert.Equal(t, instructor.Username, entry.User)
		assert.NotEmpty(t, entry.SentAt)
	}
}

func TestChat_Validation(t *testing.T) {
	ts := GetTestServer(t)

	instructorToken, instructor := helpers.CreateAndLoginInstructor(t, ts)
	course := helpers.CreateTestCourse(t, ts.DB, instructor.ID, "CHATVAL")

	// Whitespace-only messages are rejected before hitting the store.
	res, _ := ts.SendRequest(t, http.MethodPost, "/api/v1/chat/messages", instructorToken, map[string]interface{}{
		"course_id": course.ID,
		"message":   "   ",
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	// Unknown course yields 404.
	res, _ = ts.SendRequest(t, http.MethodPost, "/api/v1/chat/messages", instructorToken, map[string]interface{}{
		"course_id": "00000000-0000-0000-0000-000000000000",
		"message":   "hello",
	})
	assert.Equal(t, http.StatusNotFound, res.StatusCode)

	var count int64
	ts.DB.Model(&models.ChatMessage{}).Where("course_id = ?", course.ID).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestChat_SubscriptionRequiresAccess(t *testing.T) {
	ts := GetTestServer(t)

	_, instructor := helpers.CreateAndLoginInstructor(t, ts)
	outsiderToken, _ := helpers.CreateAndLoginStudent(t, ts)
	course := helpers.CreateTestCourse(t, ts.DB, instructor.ID, "CHATACL")

	wsURL := "ws" + strings.TrimPrefix(ts.Server.URL, "http") + "/ws/chat?token=" + outsiderToken + "&course_id=" + course.ID
	_, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.Error(t, err, "non-enrolled student must not join the course chat")
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// Missing token fails before any course lookup.
	wsURL = "ws" + strings.TrimPrefix(ts.Server.URL, "http") + "/ws/chat?course_id=" + course.ID
	_, resp, err = websocket.DefaultDialer.Dial(wsURL, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
