package gin

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bmazoyer/scribe"
)

func TestTaskHandler(t *testing.T) {
	env := createRouter(t)
	_, aliceToken := env.createUser(t, "Alice", "alice@example.com")
	_, bobToken := env.createUser(t, "Bob", "bob@example.com")

	resp := env.do(t, "POST", "/api/tasks", aliceToken, map[string]string{
		"title":   "Water plants",
		"dueDate": "2024-06-01",
		"dueTime": "09:00",
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var task scribe.Task
	decodeData(t, resp, &task)
	assert.NotZero(t, task.ID)
	assert.Equal(t, scribe.TaskStatusPending, task.Status)
	assert.False(t, task.IsCompleted)

	taskURL := fmt.Sprintf("/api/tasks/%d", task.ID)

	// Completing through status flips the flag too.
	resp = env.do(t, "PUT", taskURL, aliceToken, map[string]string{"status": "completed"})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	decodeData(t, resp, &task)
	assert.True(t, task.IsCompleted)

	// And back through the flag.
	resp = env.do(t, "PUT", taskURL, aliceToken, map[string]bool{"isCompleted": false})
	require.Equal(t, http.StatusOK, resp.Code)
	decodeData(t, resp, &task)
	assert.Equal(t, scribe.TaskStatusPending, task.Status)

	resp = env.do(t, "PUT", taskURL, aliceToken, map[string]string{"status": "later"})
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	// Tasks are strictly personal.
	resp = env.do(t, "GET", "/api/tasks", bobToken, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	var tasks []scribe.Task
	decodeData(t, resp, &tasks)
	assert.Len(t, tasks, 0)

	resp = env.do(t, "PUT", taskURL, bobToken, map[string]string{"title": "Hijack"})
	assert.Equal(t, http.StatusNotFound, resp.Code)
	resp = env.do(t, "DELETE", taskURL, bobToken, nil)
	assert.Equal(t, http.StatusNotFound, resp.Code)

	resp = env.do(t, "DELETE", taskURL, aliceToken, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	resp = env.do(t, "GET", "/api/tasks", aliceToken, nil)
	decodeData(t, resp, &tasks)
	assert.Len(t, tasks, 0)
}
