// Package access computes the effective permission of a user on a note.
// It is a pure read over the stores: every mutating endpoint resolves the
// permission first and maps an insufficient level to a 403, an absent one
// to a 404.
package access

import (
	"fmt"

	"github.com/bmazoyer/scribe"
	"github.com/bmazoyer/scribe/errors"
)

// Permission is the effective access level of a user on a note. Levels are
// ordered: None < Read < Write < Owner.
type Permission int

const (
	None Permission = iota
	Read
	Write
	Owner
)

func (p Permission) String() string {
	switch p {
	case Owner:
		return "owner"
	case Write:
		return "write"
	case Read:
		return "read"
	}
	return "none"
}

// CanRead reports whether the permission allows viewing the note.
func (p Permission) CanRead() bool {
	return p >= Read
}

// CanWrite reports whether the permission allows mutating the note content.
// Structural fields (folder, sharing state) remain owner-only.
func (p Permission) CanWrite() bool {
	return p >= Write
}

// FromString maps the stored collaborator permission to a Permission.
func FromString(s string) Permission {
	switch s {
	case "write":
		return Write
	case "read":
		return Read
	}
	return None
}

type Resolver struct {
	Notes         scribe.NoteStore
	Collaborators scribe.CollaboratorStore
}

// Resolve returns the permission of user userID on note noteID, along with
// the note itself. A missing note is a 404 error; an existing note the user
// has no entry for resolves to None without error.
func (r *Resolver) Resolve(noteID, userID int) (Permission, *scribe.Note, error) {
	notes, err := r.Notes.Get(noteID)
	if err != nil {
		return None, nil, errors.New(
			fmt.Sprintf("error retrieving note %d", noteID),
			errors.WithCause(err),
		)
	} else if len(notes) == 0 {
		return None, nil, errNoteNotFound(noteID)
	}
	note := notes[0]

	if note.UserID == userID {
		return Owner, note, nil
	}

	collab, err := r.Collaborators.Find(noteID, userID)
	if err != nil {
		return None, nil, errors.New(
			fmt.Sprintf("error retrieving collaborators of note %d", noteID),
			errors.WithCause(err),
		)
	} else if collab == nil {
		return None, note, nil
	}

	return FromString(collab.Permission), note, nil
}

func errNoteNotFound(id int) error {
	return errors.New(fmt.Sprintf("Note %d not found", id), errors.NotFound())
}
