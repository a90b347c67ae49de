package bolt

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/boltdb/bolt"

	"github.com/bmazoyer/scribe"
)

var noteBucket = []byte("notes")

// NoteStore is used to store and retrieve notes from a bolt database.
type NoteStore struct {
	Driver *Driver
}

// Get retrieves the notes defined by ids in the database. Unknown ids are
// simply skipped.
func (s *NoteStore) Get(ids ...int) ([]*scribe.Note, error) {
	notes := make([]*scribe.Note, 0, len(ids))
	err := s.Driver.store.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(noteBucket)

		for _, id := range ids {
			data := bucket.Get(itob(id))
			if data == nil {
				continue
			}

			var note scribe.Note
			if err := json.Unmarshal(data, &note); err != nil {
				return err
			}
			notes = append(notes, &note)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return notes, nil
}

// List retrieves all the notes owned by userID.
func (s *NoteStore) List(userID int) ([]*scribe.Note, error) {
	var notes []*scribe.Note

	err := s.Driver.store.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(noteBucket)

		c := bucket.Cursor()
		for id, data := c.First(); id != nil; id, data = c.Next() {
			var note scribe.Note
			if err := json.Unmarshal(data, &note); err != nil {
				return err
			}

			if note.UserID == userID {
				notes = append(notes, &note)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return notes, nil
}

// Upsert inserts or updates a note in the database, depending on note.ID.
func (s *NoteStore) Upsert(note *scribe.Note) error {
	return s.Driver.store.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(noteBucket)

		if note.ID <= 0 {
			id, err := bucket.NextSequence()
			if err != nil {
				return fmt.Errorf("error incrementing id: %v", err)
			}
			note.ID = int(id)
			note.CreatedAt = time.Now()
		}
		note.UpdatedAt = time.Now()

		data, err := json.Marshal(note)
		if err != nil {
			return err
		}

		return bucket.Put(itob(note.ID), data)
	})
}

func (s *NoteStore) Delete(id int) error {
	return s.Driver.store.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(noteBucket)
		return bucket.Delete(itob(id))
	})
}
