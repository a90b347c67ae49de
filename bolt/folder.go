package bolt

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/boltdb/bolt"

	"github.com/bmazoyer/scribe"
)

var folderBucket = []byte("folders")

type FolderStore struct {
	Driver *Driver
}

func (s *FolderStore) Get(id int) (*scribe.Folder, error) {
	var folder *scribe.Folder
	err := s.Driver.store.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(folderBucket)

		data := bucket.Get(itob(id))
		if data == nil {
			return nil
		}

		folder = &scribe.Folder{}
		return json.Unmarshal(data, folder)
	})
	if err != nil {
		return nil, err
	}

	return folder, nil
}

func (s *FolderStore) List(userID int) ([]*scribe.Folder, error) {
	var folders []*scribe.Folder

	err := s.Driver.store.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(folderBucket)

		c := bucket.Cursor()
		for id, data := c.First(); id != nil; id, data = c.Next() {
			var folder scribe.Folder
			if err := json.Unmarshal(data, &folder); err != nil {
				return err
			}

			if folder.UserID == userID {
				folders = append(folders, &folder)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return folders, nil
}

func (s *FolderStore) Upsert(folder *scribe.Folder) error {
	return s.Driver.store.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(folderBucket)

		if folder.ID <= 0 {
			id, err := bucket.NextSequence()
			if err != nil {
				return fmt.Errorf("error incrementing id: %v", err)
			}
			folder.ID = int(id)
			folder.CreatedAt = time.Now()
		}

		data, err := json.Marshal(folder)
		if err != nil {
			return err
		}

		return bucket.Put(itob(folder.ID), data)
	})
}

func (s *FolderStore) Delete(id int) error {
	return s.Driver.store.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(folderBucket)
		return bucket.Delete(itob(id))
	})
}
