package bolt

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/boltdb/bolt"

	"github.com/bmazoyer/scribe"
)

var taskBucket = []byte("tasks")

type TaskStore struct {
	Driver *Driver
}

func (s *TaskStore) Get(id int) (*scribe.Task, error) {
	var task *scribe.Task
	err := s.Driver.store.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(taskBucket)

		data := bucket.Get(itob(id))
		if data == nil {
			return nil
		}

		task = &scribe.Task{}
		return json.Unmarshal(data, task)
	})
	if err != nil {
		return nil, err
	}

	return task, nil
}

func (s *TaskStore) List(userID int) ([]*scribe.Task, error) {
	var tasks []*scribe.Task

	err := s.Driver.store.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(taskBucket)

		c := bucket.Cursor()
		for id, data := c.First(); id != nil; id, data = c.Next() {
			var task scribe.Task
			if err := json.Unmarshal(data, &task); err != nil {
				return err
			}

			if task.UserID == userID {
				tasks = append(tasks, &task)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return tasks, nil
}

func (s *TaskStore) Upsert(task *scribe.Task) error {
	return s.Driver.store.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(taskBucket)

		if task.ID <= 0 {
			id, err := bucket.NextSequence()
			if err != nil {
				return fmt.Errorf("error incrementing id: %v", err)
			}
			task.ID = int(id)
			task.CreatedAt = time.Now()
		}

		data, err := json.Marshal(task)
		if err != nil {
			return err
		}

		return bucket.Put(itob(task.ID), data)
	})
}

func (s *TaskStore) Delete(id int) error {
	return s.Driver.store.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(taskBucket)
		return bucket.Delete(itob(id))
	})
}
