package bolt

import (
	"io/ioutil"
	"os"
	"reflect"
	"testing"
	"time"

	"github.com/bmazoyer/scribe"
)

func createDriver(t *testing.T) (*Driver, func()) {
	tmpFile, err := ioutil.TempFile("", "")
	if err != nil {
		t.Fatal("could not create tmp file:", err)
	}

	filename := tmpFile.Name()
	driver := &Driver{}
	if err := driver.Open(filename); err != nil {
		os.Remove(filename)
		t.Fatalf("could not open bolt on file %s: %v", filename, err)
	}

	return driver, func() {
		driver.Close()
		os.Remove(filename)
	}
}

// clearTimes drops the timestamps so the structs can be compared with
// reflect.DeepEqual after a JSON round trip.
func clearTimes(notes ...*scribe.Note) {
	for _, note := range notes {
		note.CreatedAt = time.Time{}
		note.UpdatedAt = time.Time{}
	}
}

func TestNoteStore_Insert_Get(t *testing.T) {
	driver, f := createDriver(t)
	defer f()
	store := &NoteStore{Driver: driver}

	note := scribe.Note{Title: "Test", Content: "content", Type: scribe.NoteTypeText, UserID: 1}
	if err := store.Upsert(&note); err != nil {
		t.Fatal("error inserting:", err)
	}

	if note.ID == 0 {
		t.Fatal("expected id to be set on insert")
	} else if note.CreatedAt.IsZero() {
		t.Fatal("expected creation time to be set on insert")
	}

	notes, err := store.Get(note.ID)
	if err != nil {
		t.Fatal("error getting:", err)
	} else if len(notes) != 1 {
		t.Fatalf("incorrect number of notes retrieved: expected 1 got %d", len(notes))
	}

	clearTimes(&note, notes[0])
	if !reflect.DeepEqual(*notes[0], note) {
		t.Fatalf("incorrect note retrieved: expected %+v got %+v", note, *notes[0])
	}

	notes, err = store.Get(note.ID + 1)
	if err != nil {
		t.Fatal("error getting:", err)
	} else if len(notes) != 0 {
		t.Fatalf("incorrect number of notes retrieved: expected 0 got %d", len(notes))
	}
}

func TestNoteStore_Update(t *testing.T) {
	driver, f := createDriver(t)
	defer f()
	store := &NoteStore{Driver: driver}

	note := scribe.Note{Title: "Test", UserID: 1}
	if err := store.Upsert(&note); err != nil {
		t.Fatal("error inserting:", err)
	}

	note.Title = "Updated"
	note.IsShared = true
	if err := store.Upsert(&note); err != nil {
		t.Fatal("error updating:", err)
	}

	notes, err := store.Get(note.ID)
	if err != nil {
		t.Fatal("error getting:", err)
	} else if len(notes) != 1 {
		t.Fatalf("incorrect number of notes retrieved: expected 1 got %d", len(notes))
	}

	clearTimes(&note, notes[0])
	if !reflect.DeepEqual(*notes[0], note) {
		t.Fatalf("incorrect note retrieved: expected %+v got %+v", note, *notes[0])
	}
}

func TestNoteStore_Delete(t *testing.T) {
	driver, f := createDriver(t)
	defer f()
	store := &NoteStore{Driver: driver}

	note := scribe.Note{Title: "Test", UserID: 1}
	if err := store.Upsert(&note); err != nil {
		t.Fatal("error inserting:", err)
	}

	if err := store.Delete(note.ID); err != nil {
		t.Fatal("error deleting:", err)
	}

	notes, err := store.Get(note.ID)
	if err != nil {
		t.Fatal("error getting:", err)
	} else if len(notes) != 0 {
		t.Fatalf("incorrect number of notes retrieved: expected 0 got %d", len(notes))
	}
}

func TestNoteStore_List(t *testing.T) {
	driver, f := createDriver(t)
	defer f()
	store := &NoteStore{Driver: driver}

	notes := []*scribe.Note{
		{Title: "Mine", UserID: 1},
		{Title: "Mine too", UserID: 1},
		{Title: "Someone else's", UserID: 2},
	}
	for _, note := range notes {
		if err := store.Upsert(note); err != nil {
			t.Fatal("error inserting:", err)
		}
	}

	retrieved, err := store.List(1)
	if err != nil {
		t.Fatal("error listing:", err)
	} else if len(retrieved) != 2 {
		t.Fatalf("incorrect number of notes retrieved: expected 2 got %d", len(retrieved))
	}

	clearTimes(notes...)
	clearTimes(retrieved...)
	if !reflect.DeepEqual(retrieved, notes[:2]) {
		t.Fatalf("incorrect notes retrieved: expected %+v got %+v", notes[:2], retrieved)
	}
}
