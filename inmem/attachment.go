package inmem

import (
	"sync"
	"time"

	"github.com/bmazoyer/scribe"
)

type AttachmentStore struct {
	mu          sync.Mutex
	attachments []scribe.FileAttachment
	maxID       int
}

func NewAttachmentStore() *AttachmentStore {
	return &AttachmentStore{
		attachments: make([]scribe.FileAttachment, 0),
	}
}

func (s *AttachmentStore) Get(id int) (*scribe.FileAttachment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, att := range s.attachments {
		if att.ID == id {
			a := att
			return &a, nil
		}
	}
	return nil, nil
}

func (s *AttachmentStore) ListByNote(noteID int) ([]*scribe.FileAttachment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var attachments []*scribe.FileAttachment
	for _, att := range s.attachments {
		if att.NoteID == noteID {
			a := att
			attachments = append(attachments, &a)
		}
	}
	return attachments, nil
}

func (s *AttachmentStore) Upsert(att *scribe.FileAttachment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if att.ID == 0 {
		s.maxID++
		att.ID = s.maxID
		att.CreatedAt = time.Now()
	} else if att.ID > s.maxID {
		s.maxID = att.ID
	}

	for i, a := range s.attachments {
		if a.ID == att.ID {
			s.attachments[i] = *att
			return nil
		}
	}

	s.attachments = append(s.attachments, *att)
	return nil
}

func (s *AttachmentStore) Delete(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, a := range s.attachments {
		if a.ID == id {
			s.attachments = append(s.attachments[:i], s.attachments[i+1:]...)
			return nil
		}
	}
	return nil
}

func (s *AttachmentStore) DeleteByNote(noteID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.attachments[:0]
	for _, a := range s.attachments {
		if a.NoteID != noteID {
			kept = append(kept, a)
		}
	}
	s.attachments = kept
	return nil
}
