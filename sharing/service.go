// Package sharing manages the collaborator entries of notes. It is the
// only place allowed to flip a note's IsShared flag, which is a cache of
// "the note has at least one collaborator".
package sharing

import (
	"fmt"
	"net/http"

	"github.com/bmazoyer/scribe"
	"github.com/bmazoyer/scribe/errors"
)

// Entry is a collaborator entry with the target user resolved, as exposed
// over the API.
type Entry struct {
	ID         int    `json:"id"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	Permission string `json:"permission"`
}

type Service struct {
	notes         scribe.NoteStore
	collaborators scribe.CollaboratorStore
	users         scribe.UserStore
}

func NewService(notes scribe.NoteStore, collaborators scribe.CollaboratorStore, users scribe.UserStore) *Service {
	return &Service{
		notes:         notes,
		collaborators: collaborators,
		users:         users,
	}
}

// Grant shares a note with the user identified by email. Only the owner of
// the note can grant. An absent permission defaults to read. Granting twice
// for the same user overwrites the permission instead of duplicating the
// entry. The first grant marks the note as shared.
func (s *Service) Grant(ownerID, noteID int, email, permission string) (Entry, error) {
	if permission == "" {
		permission = "read"
	}
	if permission != "read" && permission != "write" {
		return Entry{}, errors.New(
			fmt.Sprintf("invalid permission %q", permission),
			errors.BadRequest(),
		)
	}

	note, err := s.ownedNote(ownerID, noteID)
	if err != nil {
		return Entry{}, err
	}

	target, err := s.users.GetByEmail(email)
	if err != nil {
		return Entry{}, errors.New("error retrieving user", errors.WithCause(err))
	} else if target == nil {
		return Entry{}, errors.New(
			fmt.Sprintf("no user with email %s", email),
			errors.NotFound(),
		)
	}

	if target.ID == ownerID {
		return Entry{}, errors.New("cannot share a note with yourself", errors.BadRequest())
	}

	entry, err := s.collaborators.Find(noteID, target.ID)
	if err != nil {
		return Entry{}, errors.New("error retrieving collaborators", errors.WithCause(err))
	}

	if entry == nil {
		entry = &scribe.Collaborator{NoteID: noteID, UserID: target.ID}
	}
	entry.Permission = permission
	if err := s.collaborators.Upsert(entry); err != nil {
		return Entry{}, errors.New("error saving collaborator", errors.WithCause(err))
	}

	if !note.IsShared {
		note.IsShared = true
		if err := s.notes.Upsert(note); err != nil {
			return Entry{}, errors.New("error marking note as shared", errors.WithCause(err))
		}
	}

	return Entry{
		ID:         entry.ID,
		Email:      target.Email,
		Name:       target.Name,
		Permission: entry.Permission,
	}, nil
}

// Revoke removes a collaborator entry from a note. Only the owner can
// revoke, and the entry must belong to the note. Revoking the last entry
// marks the note as not shared anymore.
func (s *Service) Revoke(ownerID, noteID, collabID int) error {
	note, err := s.ownedNote(ownerID, noteID)
	if err != nil {
		return err
	}

	entry, err := s.collaborators.Get(collabID)
	if err != nil {
		return errors.New("error retrieving collaborator", errors.WithCause(err))
	} else if entry == nil || entry.NoteID != noteID {
		return errors.New(
			fmt.Sprintf("no collaborator %d on note %d", collabID, noteID),
			errors.NotFound(),
		)
	}

	if err := s.collaborators.Delete(entry.ID); err != nil {
		return errors.New("error deleting collaborator", errors.WithCause(err))
	}

	remaining, err := s.collaborators.GetByNote(noteID)
	if err != nil {
		return errors.New("error counting collaborators", errors.WithCause(err))
	}

	if len(remaining) == 0 && note.IsShared {
		note.IsShared = false
		if err := s.notes.Upsert(note); err != nil {
			return errors.New("error marking note as not shared", errors.WithCause(err))
		}
	}

	return nil
}

// List returns the collaborator entries of a note, with users resolved.
// Only the owner can list. Entries whose user vanished are skipped.
func (s *Service) List(ownerID, noteID int) ([]Entry, error) {
	if _, err := s.ownedNote(ownerID, noteID); err != nil {
		return nil, err
	}

	collabs, err := s.collaborators.GetByNote(noteID)
	if err != nil {
		return nil, errors.New("error retrieving collaborators", errors.WithCause(err))
	}

	entries := make([]Entry, 0, len(collabs))
	for _, collab := range collabs {
		user, err := s.users.Get(collab.UserID)
		if err != nil {
			return nil, errors.New("error retrieving user", errors.WithCause(err))
		} else if user == nil {
			continue
		}

		entries = append(entries, Entry{
			ID:         collab.ID,
			Email:      user.Email,
			Name:       user.Name,
			Permission: collab.Permission,
		})
	}

	return entries, nil
}

// ownedNote loads the note and checks ownership. The disclosure policy is
// the same as everywhere else: a note the caller cannot see at all answers
// 404, a note the caller can see but does not own answers 403.
func (s *Service) ownedNote(ownerID, noteID int) (*scribe.Note, error) {
	notes, err := s.notes.Get(noteID)
	if err != nil {
		return nil, errors.New("error retrieving note", errors.WithCause(err))
	} else if len(notes) == 0 {
		return nil, errors.New(fmt.Sprintf("Note %d not found", noteID), errors.NotFound())
	}

	note := notes[0]
	if note.UserID == ownerID {
		return note, nil
	}

	collab, err := s.collaborators.Find(noteID, ownerID)
	if err != nil {
		return nil, errors.New("error retrieving collaborators", errors.WithCause(err))
	} else if collab == nil {
		return nil, errors.New(fmt.Sprintf("Note %d not found", noteID), errors.NotFound())
	}

	return nil, errors.New(
		fmt.Sprintf("only the owner of note %d can manage its sharing", noteID),
		errors.WithCode(http.StatusForbidden),
	)
}
