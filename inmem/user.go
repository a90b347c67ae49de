// Package inmem provides in-memory store implementations, used in tests
// and as lightweight fixtures.
package inmem

import (
	"sync"

	"github.com/bmazoyer/scribe"
)

type UserStore struct {
	mu    sync.Mutex
	users []scribe.User
	maxID int
}

func NewUserStore() *UserStore {
	return &UserStore{
		users: make([]scribe.User, 0),
	}
}

func (s *UserStore) Get(id int) (*scribe.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, user := range s.users {
		if user.ID == id {
			u := user
			return &u, nil
		}
	}
	return nil, nil
}

func (s *UserStore) GetByEmail(email string) (*scribe.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, user := range s.users {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, nil
}

func (s *UserStore) Upsert(user *scribe.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if user.ID == 0 {
		s.maxID++
		user.ID = s.maxID
	} else if user.ID > s.maxID {
		s.maxID = user.ID
	}

	for i, u := range s.users {
		if u.ID == user.ID {
			s.users[i] = *user
			return nil
		}
	}

	s.users = append(s.users, *user)
	return nil
}

func (s *UserStore) List() ([]*scribe.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := make([]*scribe.User, len(s.users))
	for i, user := range s.users {
		u := user
		users[i] = &u
	}
	return users, nil
}
