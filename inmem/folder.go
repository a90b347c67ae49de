package inmem

import (
	"sync"
	"time"

	"github.com/bmazoyer/scribe"
)

type FolderStore struct {
	mu      sync.Mutex
	folders []scribe.Folder
	maxID   int
}

func NewFolderStore() *FolderStore {
	return &FolderStore{
		folders: make([]scribe.Folder, 0),
	}
}

func (s *FolderStore) Get(id int) (*scribe.Folder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, folder := range s.folders {
		if folder.ID == id {
			f := folder
			return &f, nil
		}
	}
	return nil, nil
}

func (s *FolderStore) List(userID int) ([]*scribe.Folder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var folders []*scribe.Folder
	for _, folder := range s.folders {
		if folder.UserID == userID {
			f := folder
			folders = append(folders, &f)
		}
	}
	return folders, nil
}

func (s *FolderStore) Upsert(folder *scribe.Folder) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if folder.ID == 0 {
		s.maxID++
		folder.ID = s.maxID
		folder.CreatedAt = time.Now()
	} else if folder.ID > s.maxID {
		s.maxID = folder.ID
	}

	for i, f := range s.folders {
		if f.ID == folder.ID {
			s.folders[i] = *folder
			return nil
		}
	}

	s.folders = append(s.folders, *folder)
	return nil
}

func (s *FolderStore) Delete(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, f := range s.folders {
		if f.ID == id {
			s.folders = append(s.folders[:i], s.folders[i+1:]...)
			return nil
		}
	}
	return nil
}
