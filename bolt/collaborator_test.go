package bolt

import (
	"reflect"
	"testing"

	"github.com/bmazoyer/scribe"
)

func TestCollaboratorStore(t *testing.T) {
	driver, f := createDriver(t)
	defer f()
	store := &CollaboratorStore{Driver: driver}

	entries := []*scribe.Collaborator{
		{NoteID: 1, UserID: 2, Permission: "read"},
		{NoteID: 1, UserID: 3, Permission: "write"},
		{NoteID: 2, UserID: 2, Permission: "read"},
	}
	for _, entry := range entries {
		if err := store.Upsert(entry); err != nil {
			t.Fatal("error inserting:", err)
		} else if entry.ID == 0 {
			t.Fatal("expected id to be set on insert")
		}
	}

	byNote, err := store.GetByNote(1)
	if err != nil {
		t.Fatal("error getting by note:", err)
	} else if !reflect.DeepEqual(byNote, entries[:2]) {
		t.Fatalf("incorrect entries retrieved: expected %+v got %+v", entries[:2], byNote)
	}

	byUser, err := store.ListByUser(2)
	if err != nil {
		t.Fatal("error listing by user:", err)
	} else if len(byUser) != 2 {
		t.Fatalf("incorrect number of entries retrieved: expected 2 got %d", len(byUser))
	}

	found, err := store.Find(1, 3)
	if err != nil {
		t.Fatal("error finding:", err)
	} else if !reflect.DeepEqual(found, entries[1]) {
		t.Fatalf("incorrect entry retrieved: expected %+v got %+v", entries[1], found)
	}

	found, err = store.Find(2, 3)
	if err != nil {
		t.Fatal("error finding:", err)
	} else if found != nil {
		t.Fatalf("expected no entry, got %+v", found)
	}
}

func TestCollaboratorStore_Update(t *testing.T) {
	driver, f := createDriver(t)
	defer f()
	store := &CollaboratorStore{Driver: driver}

	entry := scribe.Collaborator{NoteID: 1, UserID: 2, Permission: "read"}
	if err := store.Upsert(&entry); err != nil {
		t.Fatal("error inserting:", err)
	}

	entry.Permission = "write"
	if err := store.Upsert(&entry); err != nil {
		t.Fatal("error updating:", err)
	}

	entries, err := store.GetByNote(1)
	if err != nil {
		t.Fatal("error getting by note:", err)
	} else if len(entries) != 1 {
		t.Fatalf("incorrect number of entries retrieved: expected 1 got %d", len(entries))
	} else if entries[0].Permission != "write" {
		t.Fatalf("incorrect permission retrieved: expected write got %s", entries[0].Permission)
	}
}

func TestCollaboratorStore_Delete(t *testing.T) {
	driver, f := createDriver(t)
	defer f()
	store := &CollaboratorStore{Driver: driver}

	entries := []*scribe.Collaborator{
		{NoteID: 1, UserID: 2, Permission: "read"},
		{NoteID: 1, UserID: 3, Permission: "write"},
		{NoteID: 2, UserID: 2, Permission: "read"},
	}
	for _, entry := range entries {
		if err := store.Upsert(entry); err != nil {
			t.Fatal("error inserting:", err)
		}
	}

	if err := store.Delete(entries[0].ID); err != nil {
		t.Fatal("error deleting:", err)
	}

	byNote, err := store.GetByNote(1)
	if err != nil {
		t.Fatal("error getting by note:", err)
	} else if len(byNote) != 1 {
		t.Fatalf("incorrect number of entries retrieved: expected 1 got %d", len(byNote))
	}

	if err := store.DeleteByNote(1); err != nil {
		t.Fatal("error deleting by note:", err)
	}

	byNote, err = store.GetByNote(1)
	if err != nil {
		t.Fatal("error getting by note:", err)
	} else if len(byNote) != 0 {
		t.Fatalf("incorrect number of entries retrieved: expected 0 got %d", len(byNote))
	}

	byNote, err = store.GetByNote(2)
	if err != nil {
		t.Fatal("error getting by note:", err)
	} else if len(byNote) != 1 {
		t.Fatalf("incorrect number of entries retrieved: expected 1 got %d", len(byNote))
	}
}
