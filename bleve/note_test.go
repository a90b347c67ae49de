package bleve

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/bmazoyer/scribe"
)

func createIndex(t *testing.T) (*NoteIndex, func()) {
	dir, err := ioutil.TempDir("", "")
	if err != nil {
		t.Fatal("could not create tmp dir:", err)
	}

	index := &NoteIndex{}
	if err := index.Open(filepath.Join(dir, "index")); err != nil {
		os.RemoveAll(dir)
		t.Fatal("error creating index:", err)
	}

	return index, func() {
		if err := index.Close(); err != nil {
			t.Log(err)
		}
		if err := os.RemoveAll(dir); err != nil {
			t.Log(err)
		}
	}
}

func TestNoteIndex_Search(t *testing.T) {
	index, f := createIndex(t)
	defer f()

	notes := []*scribe.Note{
		{ID: 1, Title: "Groceries", Content: "apples and flour"},
		{ID: 2, Title: "Meeting notes", Content: "quarterly planning"},
		{ID: 3, Title: "Recipes", Content: "apple pie with flour"},
		{ID: 4, Title: "Planning", Content: "summer holidays"},
	}
	for _, note := range notes {
		if err := index.Index(note); err != nil {
			t.Fatal("error indexing", note.ID, err)
		}
	}

	var tts = map[string]struct {
		Search   scribe.NoteSearch
		Expected []int
	}{
		"match in content": {
			Search:   scribe.NoteSearch{Q: "apple"},
			Expected: []int{1, 3},
		},
		"match in title": {
			Search:   scribe.NoteSearch{Q: "planning"},
			Expected: []int{2, 4},
		},
		"restricted to ids": {
			Search:   scribe.NoteSearch{Q: "planning", IDs: []int{4}},
			Expected: []int{4},
		},
		"no match": {
			Search:   scribe.NoteSearch{Q: "submarine"},
			Expected: []int{},
		},
		"empty query lists everything": {
			Search:   scribe.NoteSearch{},
			Expected: []int{1, 2, 3, 4},
		},
	}

	for name, tt := range tts {
		results, err := index.Search(tt.Search)
		if err != nil {
			t.Fatalf("%s: error searching: %v", name, err)
		} else if !reflect.DeepEqual(results.IDs, tt.Expected) {
			t.Fatalf("%s: incorrect ids: expected %v got %v", name, tt.Expected, results.IDs)
		}
	}
}

func TestNoteIndex_Delete(t *testing.T) {
	index, f := createIndex(t)
	defer f()

	note := scribe.Note{ID: 1, Title: "Groceries", Content: "apples"}
	if err := index.Index(&note); err != nil {
		t.Fatal("error indexing:", err)
	}

	if err := index.Delete(note.ID); err != nil {
		t.Fatal("error deleting:", err)
	}

	results, err := index.Search(scribe.NoteSearch{Q: "apples"})
	if err != nil {
		t.Fatal("error searching:", err)
	} else if len(results.IDs) != 0 {
		t.Fatalf("incorrect ids: expected none got %v", results.IDs)
	}
}
