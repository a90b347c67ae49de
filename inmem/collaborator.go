package inmem

import (
	"sync"

	"github.com/bmazoyer/scribe"
)

type CollaboratorStore struct {
	mu      sync.Mutex
	entries []scribe.Collaborator
	maxID   int
}

func NewCollaboratorStore() *CollaboratorStore {
	return &CollaboratorStore{
		entries: make([]scribe.Collaborator, 0),
	}
}

func (s *CollaboratorStore) Get(id int) (*scribe.Collaborator, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, entry := range s.entries {
		if entry.ID == id {
			e := entry
			return &e, nil
		}
	}
	return nil, nil
}

func (s *CollaboratorStore) GetByNote(noteID int) ([]*scribe.Collaborator, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var entries []*scribe.Collaborator
	for _, entry := range s.entries {
		if entry.NoteID == noteID {
			e := entry
			entries = append(entries, &e)
		}
	}
	return entries, nil
}

func (s *CollaboratorStore) Find(noteID, userID int) (*scribe.Collaborator, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, entry := range s.entries {
		if entry.NoteID == noteID && entry.UserID == userID {
			e := entry
			return &e, nil
		}
	}
	return nil, nil
}

func (s *CollaboratorStore) ListByUser(userID int) ([]*scribe.Collaborator, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var entries []*scribe.Collaborator
	for _, entry := range s.entries {
		if entry.UserID == userID {
			e := entry
			entries = append(entries, &e)
		}
	}
	return entries, nil
}

func (s *CollaboratorStore) Upsert(entry *scribe.Collaborator) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry.ID == 0 {
		s.maxID++
		entry.ID = s.maxID
	} else if entry.ID > s.maxID {
		s.maxID = entry.ID
	}

	for i, e := range s.entries {
		if e.ID == entry.ID {
			s.entries[i] = *entry
			return nil
		}
	}

	s.entries = append(s.entries, *entry)
	return nil
}

func (s *CollaboratorStore) Delete(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, e := range s.entries {
		if e.ID == id {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return nil
		}
	}
	return nil
}

func (s *CollaboratorStore) DeleteByNote(noteID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.entries[:0]
	for _, e := range s.entries {
		if e.NoteID != noteID {
			kept = append(kept, e)
		}
	}
	s.entries = kept
	return nil
}
