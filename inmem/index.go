package inmem

import (
	"strings"
	"sync"

	"github.com/bmazoyer/scribe"
)

// NoteIndex is a naive substring index. It keeps search out of the way in
// tests that exercise the handlers rather than the bleve integration.
type NoteIndex struct {
	mu    sync.Mutex
	docs  map[int]string
	order []int
}

func NewNoteIndex() *NoteIndex {
	return &NoteIndex{
		docs: make(map[int]string),
	}
}

func (s *NoteIndex) Index(note *scribe.Note) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.docs[note.ID]; !ok {
		s.order = append(s.order, note.ID)
	}
	s.docs[note.ID] = strings.ToLower(note.Title + " " + note.Content)
	return nil
}

func (s *NoteIndex) Delete(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.docs, id)
	for i, docID := range s.order {
		if docID == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *NoteIndex) Search(search scribe.NoteSearch) (scribe.NoteSearchResults, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	allowed := make(map[int]struct{}, len(search.IDs))
	for _, id := range search.IDs {
		allowed[id] = struct{}{}
	}

	q := strings.ToLower(search.Q)
	var ids []int
	for _, id := range s.order {
		if _, ok := allowed[id]; !ok {
			continue
		}
		if q == "" || strings.Contains(s.docs[id], q) {
			ids = append(ids, id)
		}
	}

	return scribe.NoteSearchResults{
		IDs: ids,
		Pagination: scribe.Pagination{
			Total:  uint64(len(ids)),
			Limit:  search.Limit,
			Offset: search.Offset,
		},
	}, nil
}
