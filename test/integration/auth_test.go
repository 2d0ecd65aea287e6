package integration_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lms_backend/internal/models"
	"lms_backend/test/helpers"
)

func TestAuth_LoginFlow(t *testing.T) {
	ts := GetTestServer(t)

	username := fmt.Sprintf("login_user_%d", time.Now().UnixNano())
	token, user := helpers.CreateAndLoginUser(t, ts, username, "password123", models.UserRoleStudent)
	assert.NotEmpty(t, token)
	assert.Equal(t, username, user.Username)

	// Wrong password is rejected with 401 and no token.
	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/login", "", map[string]interface{}{
		"username": username,
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
	assert.NotContains(t, bodyStr, "access_token")

	// Unknown user gets the same answer as a wrong password.
	res, _ = ts.SendRequest(t, http.MethodPost, "/api/v1/auth/login", "", map[string]interface{}{
		"username": "no_such_user",
		"password": "password123",
	})
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}

func TestAuth_ProtectedRoutesRequireToken(t *testing.T) {
	ts := GetTestServer(t)

	res, _ := ts.SendRequest(t, http.MethodGet, "/api/v1/notifications", "", nil)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)

	res, _ = ts.SendRequest(t, http.MethodGet, "/api/v1/notifications", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}

func TestAdmin_UserProvisioning(t *testing.T) {
	ts := GetTestServer(t)

	adminToken, _ := helpers.CreateAndLoginAdmin(t, ts)
	studentToken, _ := helpers.CreateAndLoginStudent(t, ts)

	username := fmt.Sprintf("provisioned_%d", time.Now().UnixNano())
	createBody := map[string]interface{}{
		"username":  username,
		"password":  "password123",
		"role":      "instructor",
		"full_name": "Provisioned Instructor",
		"email":     username + "@test.local",
	}

	// Students cannot provision accounts.
	res, _ := ts.SendRequest(t, http.MethodPost, "/api/v1/admin/users", studentToken, createBody)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/admin/users", adminToken, createBody)
	require.Equal(t, http.StatusCreated, res.StatusCode, bodyStr)

	var created struct {
		ID   string `json:"id"`
		Role string `json:"role"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "instructor", created.Role)

	// Duplicate usernames are rejected.
	res, _ = ts.SendRequest(t, http.MethodPost, "/api/v1/admin/users", adminToken, createBody)
	assert.Equal(t, http.StatusConflict, res.StatusCode)

	// The new account can log in immediately.
	res, _ = ts.SendRequest(t, http.MethodPost, "/api/v1/auth/login", "", map[string]interface{}{
		"username": username,
		"password": "password123",
	})
	assert.Equal(t, http.StatusOK, res.StatusCode)
}
