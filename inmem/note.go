package inmem

import (
	"sync"
	"time"

	"github.com/bmazoyer/scribe"
)

type NoteStore struct {
	mu    sync.Mutex
	notes []scribe.Note
	maxID int
}

func NewNoteStore() *NoteStore {
	return &NoteStore{
		notes: make([]scribe.Note, 0),
	}
}

func (s *NoteStore) Get(ids ...int) ([]*scribe.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	notes := make([]*scribe.Note, 0, len(ids))
	for _, id := range ids {
		for _, note := range s.notes {
			if note.ID == id {
				n := note
				notes = append(notes, &n)
				break
			}
		}
	}
	return notes, nil
}

func (s *NoteStore) List(userID int) ([]*scribe.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var notes []*scribe.Note
	for _, note := range s.notes {
		if note.UserID == userID {
			n := note
			notes = append(notes, &n)
		}
	}
	return notes, nil
}

func (s *NoteStore) Upsert(note *scribe.Note) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if note.ID == 0 {
		s.maxID++
		note.ID = s.maxID
		note.CreatedAt = time.Now()
	} else if note.ID > s.maxID {
		s.maxID = note.ID
	}
	note.UpdatedAt = time.Now()

	for i, n := range s.notes {
		if n.ID == note.ID {
			s.notes[i] = *note
			return nil
		}
	}

	s.notes = append(s.notes, *note)
	return nil
}

func (s *NoteStore) Delete(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, n := range s.notes {
		if n.ID == id {
			s.notes = append(s.notes[:i], s.notes[i+1:]...)
			return nil
		}
	}
	return nil
}
