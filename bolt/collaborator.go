package bolt

import (
	"encoding/json"
	"fmt"

	"github.com/boltdb/bolt"

	"github.com/bmazoyer/scribe"
)

var collaboratorBucket = []byte("collaborators")

// CollaboratorStore persists the sharing entries attached to notes.
type CollaboratorStore struct {
	Driver *Driver
}

func (s *CollaboratorStore) Get(id int) (*scribe.Collaborator, error) {
	var collaborator *scribe.Collaborator
	err := s.Driver.store.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(collaboratorBucket)

		data := bucket.Get(itob(id))
		if data == nil {
			return nil
		}

		collaborator = &scribe.Collaborator{}
		return json.Unmarshal(data, collaborator)
	})
	if err != nil {
		return nil, err
	}

	return collaborator, nil
}

// GetByNote retrieves all the entries attached to noteID.
func (s *CollaboratorStore) GetByNote(noteID int) ([]*scribe.Collaborator, error) {
	var collaborators []*scribe.Collaborator

	err := s.Driver.store.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(collaboratorBucket)

		c := bucket.Cursor()
		for id, data := c.First(); id != nil; id, data = c.Next() {
			var collaborator scribe.Collaborator
			if err := json.Unmarshal(data, &collaborator); err != nil {
				return err
			}

			if collaborator.NoteID == noteID {
				collaborators = append(collaborators, &collaborator)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return collaborators, nil
}

// Find retrieves the entry for the (noteID, userID) pair, nil when the
// user is not a collaborator on the note.
func (s *CollaboratorStore) Find(noteID, userID int) (*scribe.Collaborator, error) {
	var collaborator *scribe.Collaborator

	err := s.Driver.store.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(collaboratorBucket)

		c := bucket.Cursor()
		for id, data := c.First(); id != nil; id, data = c.Next() {
			var entry scribe.Collaborator
			if err := json.Unmarshal(data, &entry); err != nil {
				return err
			}

			if entry.NoteID == noteID && entry.UserID == userID {
				collaborator = &entry
				return nil
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return collaborator, nil
}

// ListByUser retrieves all the entries granting userID access to a note.
func (s *CollaboratorStore) ListByUser(userID int) ([]*scribe.Collaborator, error) {
	var collaborators []*scribe.Collaborator

	err := s.Driver.store.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(collaboratorBucket)

		c := bucket.Cursor()
		for id, data := c.First(); id != nil; id, data = c.Next() {
			var collaborator scribe.Collaborator
			if err := json.Unmarshal(data, &collaborator); err != nil {
				return err
			}

			if collaborator.UserID == userID {
				collaborators = append(collaborators, &collaborator)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return collaborators, nil
}

func (s *CollaboratorStore) Upsert(collaborator *scribe.Collaborator) error {
	return s.Driver.store.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(collaboratorBucket)

		if collaborator.ID <= 0 {
			id, err := bucket.NextSequence()
			if err != nil {
				return fmt.Errorf("error incrementing id: %v", err)
			}
			collaborator.ID = int(id)
		}

		data, err := json.Marshal(collaborator)
		if err != nil {
			return err
		}

		return bucket.Put(itob(collaborator.ID), data)
	})
}

func (s *CollaboratorStore) Delete(id int) error {
	return s.Driver.store.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(collaboratorBucket)
		return bucket.Delete(itob(id))
	})
}

// DeleteByNote removes every entry attached to noteID.
func (s *CollaboratorStore) DeleteByNote(noteID int) error {
	return s.Driver.store.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(collaboratorBucket)

		var ids [][]byte
		c := bucket.Cursor()
		for id, data := c.First(); id != nil; id, data = c.Next() {
			var collaborator scribe.Collaborator
			if err := json.Unmarshal(data, &collaborator); err != nil {
				return err
			}

			if collaborator.NoteID == noteID {
				key := make([]byte, len(id))
				copy(key, id)
				ids = append(ids, key)
			}
		}

		for _, id := range ids {
			if err := bucket.Delete(id); err != nil {
				return err
			}
		}
		return nil
	})
}
