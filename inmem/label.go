package inmem

import (
	"sync"

	"github.com/bmazoyer/scribe"
)

type LabelStore struct {
	mu     sync.Mutex
	labels []scribe.Label
	maxID  int
}

func NewLabelStore() *LabelStore {
	return &LabelStore{
		labels: make([]scribe.Label, 0),
	}
}

func (s *LabelStore) Get(id int) (*scribe.Label, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, label := range s.labels {
		if label.ID == id {
			l := label
			return &l, nil
		}
	}
	return nil, nil
}

func (s *LabelStore) List(userID int) ([]*scribe.Label, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var labels []*scribe.Label
	for _, label := range s.labels {
		if label.UserID == userID {
			l := label
			labels = append(labels, &l)
		}
	}
	return labels, nil
}

func (s *LabelStore) Upsert(label *scribe.Label) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if label.ID == 0 {
		s.maxID++
		label.ID = s.maxID
	} else if label.ID > s.maxID {
		s.maxID = label.ID
	}

	for i, l := range s.labels {
		if l.ID == label.ID {
			s.labels[i] = *label
			return nil
		}
	}

	s.labels = append(s.labels, *label)
	return nil
}

func (s *LabelStore) Delete(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, l := range s.labels {
		if l.ID == id {
			s.labels = append(s.labels[:i], s.labels[i+1:]...)
			return nil
		}
	}
	return nil
}
