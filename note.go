package scribe

import (
	"time"
)

// Note types. A link note carries a URL instead of editable content.
const (
	NoteTypeText = "text"
	NoteTypeLink = "link"
)

type Note struct {
	ID      int    `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Type    string `json:"noteType"`
	LinkURL string `json:"linkUrl,omitempty"`

	UserID   int `json:"userId"`
	FolderID int `json:"folderId,omitempty"`

	// IsShared is derived from the collaborator entries of the note. It is
	// maintained exclusively by the sharing service: true as soon as the
	// note has one collaborator, false again when the last one is revoked.
	IsShared bool `json:"isShared"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Collaborator grants a non-owner user read or write access on a note.
// There is at most one entry per (note, user) pair.
type Collaborator struct {
	ID         int    `json:"id"`
	NoteID     int    `json:"noteId"`
	UserID     int    `json:"userId"`
	Permission string `json:"permission"` // "read" or "write"
}

type Folder struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	UserID   int    `json:"userId"`
	ParentID int    `json:"parentId,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

type Label struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Color  string `json:"color,omitempty"`
	UserID int    `json:"userId"`
}

type FileAttachment struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	URL    string `json:"url"`
	Type   string `json:"type,omitempty"`
	NoteID int    `json:"noteId"`

	CreatedAt time.Time `json:"createdAt"`
}

type NoteStore interface {
	Get(...int) ([]*Note, error)
	List(userID int) ([]*Note, error)
	Upsert(*Note) error
	Delete(int) error
}

type CollaboratorStore interface {
	Get(int) (*Collaborator, error)
	GetByNote(noteID int) ([]*Collaborator, error)
	Find(noteID, userID int) (*Collaborator, error)
	ListByUser(userID int) ([]*Collaborator, error)
	Upsert(*Collaborator) error
	Delete(int) error
	DeleteByNote(noteID int) error
}

type FolderStore interface {
	Get(int) (*Folder, error)
	List(userID int) ([]*Folder, error)
	Upsert(*Folder) error
	Delete(int) error
}

type LabelStore interface {
	Get(int) (*Label, error)
	List(userID int) ([]*Label, error)
	Upsert(*Label) error
	Delete(int) error
}

type AttachmentStore interface {
	Get(int) (*FileAttachment, error)
	ListByNote(noteID int) ([]*FileAttachment, error)
	Upsert(*FileAttachment) error
	Delete(int) error
	DeleteByNote(noteID int) error
}

type NoteSearch struct {
	IDs []int  `json:"ids"`
	Q   string `json:"q"`

	Limit  uint64 `json:"limit"`
	Offset uint64 `json:"offset"`
}

type Pagination struct {
	Total  uint64 `json:"total"`
	Limit  uint64 `json:"limit"`
	Offset uint64 `json:"offset"`
}

type NoteSearchResults struct {
	IDs        []int
	Pagination Pagination
}

type NoteIndex interface {
	Index(*Note) error
	Search(NoteSearch) (NoteSearchResults, error)
	Delete(int) error
}
