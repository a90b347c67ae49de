package scribe

import (
	"time"
)

// Task statuses.
const (
	TaskStatusPending   = "pending"
	TaskStatusWorking   = "working"
	TaskStatusCompleted = "completed"
)

type Task struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category"`

	DueDate string `json:"dueDate,omitempty"` // YYYY-MM-DD
	DueTime string `json:"dueTime,omitempty"` // HH:MM

	Status      string `json:"status"`
	IsCompleted bool   `json:"isCompleted"`

	UserID int `json:"userId"`

	CreatedAt time.Time `json:"createdAt"`
}

type TaskStore interface {
	Get(int) (*Task, error)
	List(userID int) ([]*Task, error)
	Upsert(*Task) error
	Delete(int) error
}
