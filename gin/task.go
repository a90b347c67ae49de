package gin

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/bmazoyer/scribe"
	"github.com/bmazoyer/scribe/errors"
)

type TaskHandler struct {
	Store scribe.TaskStore

	Authenticator *Authenticator
}

func (h *TaskHandler) RegisterRoutes(router *gin.Engine) {
	router.GET("/api/tasks", JSONFormatter(h.Authenticator.Authenticate(h.List)))
	router.POST("/api/tasks", JSONFormatter(h.Authenticator.Authenticate(h.Insert)))
	router.PUT("/api/tasks/:id", JSONFormatter(h.Authenticator.Authenticate(h.Update)))
	router.DELETE("/api/tasks/:id", JSONFormatter(h.Authenticator.Authenticate(h.Delete)))
}

type taskBody struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	DueDate     *string `json:"dueDate"`
	DueTime     *string `json:"dueTime"`
	Status      *string `json:"status"`
	IsCompleted *bool   `json:"isCompleted"`
}

func validStatus(status string) bool {
	switch status {
	case scribe.TaskStatusPending, scribe.TaskStatusWorking, scribe.TaskStatusCompleted:
		return true
	}
	return false
}

// applyTaskBody copies the writable fields onto the task, keeping the
// status and the completion flag in sync.
func applyTaskBody(task *scribe.Task, body taskBody) error {
	if body.Title != nil {
		task.Title = *body.Title
	}
	if body.Description != nil {
		task.Description = *body.Description
	}
	if body.Category != nil {
		task.Category = *body.Category
	}
	if body.DueDate != nil {
		task.DueDate = *body.DueDate
	}
	if body.DueTime != nil {
		task.DueTime = *body.DueTime
	}
	if body.Status != nil {
		if !validStatus(*body.Status) {
			return errors.New(fmt.Sprintf("invalid status %s", *body.Status), errors.BadRequest())
		}
		task.Status = *body.Status
		task.IsCompleted = task.Status == scribe.TaskStatusCompleted
	}
	if body.IsCompleted != nil {
		task.IsCompleted = *body.IsCompleted
		if task.IsCompleted {
			task.Status = scribe.TaskStatusCompleted
		} else if task.Status == scribe.TaskStatusCompleted {
			task.Status = scribe.TaskStatusPending
		}
	}
	return nil
}

func (h *TaskHandler) List(c *gin.Context) (interface{}, error) {
	user, err := userFromContext(c)
	if err != nil {
		return nil, err
	}

	tasks, err := h.Store.List(user.ID)
	if err != nil {
		return nil, errors.New("error listing tasks", errors.WithCause(err))
	}

	return map[string]interface{}{
		"data": tasks,
	}, nil
}

func (h *TaskHandler) Insert(c *gin.Context) (interface{}, error) {
	user, err := userFromContext(c)
	if err != nil {
		return nil, err
	}

	var body taskBody
	if err := c.BindJSON(&body); err != nil {
		return nil, errors.New("error decoding json body", errors.WithCode(http.StatusBadRequest), errors.WithCause(err))
	}

	task := scribe.Task{
		Status: scribe.TaskStatusPending,
		UserID: user.ID,
	}
	if err := applyTaskBody(&task, body); err != nil {
		return nil, err
	}

	if task.Title == "" {
		return nil, errors.New("title is required", errors.BadRequest())
	}

	if err := h.Store.Upsert(&task); err != nil {
		return nil, errors.New("error inserting task", errors.WithCause(err))
	}

	return map[string]interface{}{
		"data": task,
	}, nil
}

func (h *TaskHandler) Update(c *gin.Context) (interface{}, error) {
	user, err := userFromContext(c)
	if err != nil {
		return nil, err
	}

	task, err := h.owned(c, user.ID)
	if err != nil {
		return nil, err
	}

	var body taskBody
	if err := c.BindJSON(&body); err != nil {
		return nil, errors.New("error decoding json body", errors.WithCode(http.StatusBadRequest), errors.WithCause(err))
	}

	if err := applyTaskBody(task, body); err != nil {
		return nil, err
	}

	if err := h.Store.Upsert(task); err != nil {
		return nil, errors.New("error updating task", errors.WithCause(err))
	}

	return map[string]interface{}{
		"data": task,
	}, nil
}

func (h *TaskHandler) Delete(c *gin.Context) (interface{}, error) {
	user, err := userFromContext(c)
	if err != nil {
		return nil, err
	}

	task, err := h.owned(c, user.ID)
	if err != nil {
		return nil, err
	}

	if err := h.Store.Delete(task.ID); err != nil {
		return nil, errors.New("error deleting task", errors.WithCause(err))
	}

	return map[string]interface{}{
		"data": "ok",
	}, nil
}

func (h *TaskHandler) owned(c *gin.Context, userID int) (*scribe.Task, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return nil, errors.New("id should be an integer", errors.BadRequest())
	}

	task, err := h.Store.Get(id)
	if err != nil {
		return nil, errors.New("error retrieving task", errors.WithCause(err))
	} else if task == nil || task.UserID != userID {
		return nil, errors.New(fmt.Sprintf("Task %d not found", id), errors.NotFound())
	}

	return task, nil
}
