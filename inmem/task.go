package inmem

import (
	"sync"
	"time"

	"github.com/bmazoyer/scribe"
)

type TaskStore struct {
	mu    sync.Mutex
	tasks []scribe.Task
	maxID int
}

func NewTaskStore() *TaskStore {
	return &TaskStore{
		tasks: make([]scribe.Task, 0),
	}
}

func (s *TaskStore) Get(id int) (*scribe.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, task := range s.tasks {
		if task.ID == id {
			t := task
			return &t, nil
		}
	}
	return nil, nil
}

func (s *TaskStore) List(userID int) ([]*scribe.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var tasks []*scribe.Task
	for _, task := range s.tasks {
		if task.UserID == userID {
			t := task
			tasks = append(tasks, &t)
		}
	}
	return tasks, nil
}

func (s *TaskStore) Upsert(task *scribe.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if task.ID == 0 {
		s.maxID++
		task.ID = s.maxID
		task.CreatedAt = time.Now()
	} else if task.ID > s.maxID {
		s.maxID = task.ID
	}

	for i, t := range s.tasks {
		if t.ID == task.ID {
			s.tasks[i] = *task
			return nil
		}
	}

	s.tasks = append(s.tasks, *task)
	return nil
}

func (s *TaskStore) Delete(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, t := range s.tasks {
		if t.ID == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			return nil
		}
	}
	return nil
}
