package bolt

import (
	"encoding/json"
	"fmt"

	"github.com/boltdb/bolt"

	"github.com/bmazoyer/scribe"
)

var labelBucket = []byte("labels")

type LabelStore struct {
	Driver *Driver
}

func (s *LabelStore) Get(id int) (*scribe.Label, error) {
	var label *scribe.Label
	err := s.Driver.store.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(labelBucket)

		data := bucket.Get(itob(id))
		if data == nil {
			return nil
		}

		label = &scribe.Label{}
		return json.Unmarshal(data, label)
	})
	if err != nil {
		return nil, err
	}

	return label, nil
}

func (s *LabelStore) List(userID int) ([]*scribe.Label, error) {
	var labels []*scribe.Label

	err := s.Driver.store.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(labelBucket)

		c := bucket.Cursor()
		for id, data := c.First(); id != nil; id, data = c.Next() {
			var label scribe.Label
			if err := json.Unmarshal(data, &label); err != nil {
				return err
			}

			if label.UserID == userID {
				labels = append(labels, &label)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return labels, nil
}

func (s *LabelStore) Upsert(label *scribe.Label) error {
	return s.Driver.store.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(labelBucket)

		if label.ID <= 0 {
			id, err := bucket.NextSequence()
			if err != nil {
				return fmt.Errorf("error incrementing id: %v", err)
			}
			label.ID = int(id)
		}

		data, err := json.Marshal(label)
		if err != nil {
			return err
		}

		return bucket.Put(itob(label.ID), data)
	})
}

func (s *LabelStore) Delete(id int) error {
	return s.Driver.store.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(labelBucket)
		return bucket.Delete(itob(id))
	})
}
