package bolt

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/boltdb/bolt"

	"github.com/bmazoyer/scribe"
)

var attachmentBucket = []byte("attachments")

type AttachmentStore struct {
	Driver *Driver
}

func (s *AttachmentStore) Get(id int) (*scribe.FileAttachment, error) {
	var attachment *scribe.FileAttachment
	err := s.Driver.store.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(attachmentBucket)

		data := bucket.Get(itob(id))
		if data == nil {
			return nil
		}

		attachment = &scribe.FileAttachment{}
		return json.Unmarshal(data, attachment)
	})
	if err != nil {
		return nil, err
	}

	return attachment, nil
}

func (s *AttachmentStore) ListByNote(noteID int) ([]*scribe.FileAttachment, error) {
	var attachments []*scribe.FileAttachment

	err := s.Driver.store.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(attachmentBucket)

		c := bucket.Cursor()
		for id, data := c.First(); id != nil; id, data = c.Next() {
			var attachment scribe.FileAttachment
			if err := json.Unmarshal(data, &attachment); err != nil {
				return err
			}

			if attachment.NoteID == noteID {
				attachments = append(attachments, &attachment)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return attachments, nil
}

func (s *AttachmentStore) Upsert(attachment *scribe.FileAttachment) error {
	return s.Driver.store.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(attachmentBucket)

		if attachment.ID <= 0 {
			id, err := bucket.NextSequence()
			if err != nil {
				return fmt.Errorf("error incrementing id: %v", err)
			}
			attachment.ID = int(id)
			attachment.CreatedAt = time.Now()
		}

		data, err := json.Marshal(attachment)
		if err != nil {
			return err
		}

		return bucket.Put(itob(attachment.ID), data)
	})
}

func (s *AttachmentStore) Delete(id int) error {
	return s.Driver.store.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(attachmentBucket)
		return bucket.Delete(itob(id))
	})
}

// DeleteByNote removes every attachment of noteID.
func (s *AttachmentStore) DeleteByNote(noteID int) error {
	return s.Driver.store.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(attachmentBucket)

		var ids [][]byte
		c := bucket.Cursor()
		for id, data := c.First(); id != nil; id, data = c.Next() {
			var attachment scribe.FileAttachment
			if err := json.Unmarshal(data, &attachment); err != nil {
				return err
			}

			if attachment.NoteID == noteID {
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
