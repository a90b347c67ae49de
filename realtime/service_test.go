package realtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bmazoyer/scribe"
	"github.com/bmazoyer/scribe/access"
	"github.com/bmazoyer/scribe/inmem"
	"github.com/bmazoyer/scribe/log"
)

func strptr(s string) *string { return &s }

func newTestService(t *testing.T) (*Service, scribe.NoteStore) {
	notes := inmem.NewNoteStore()
	collaborators := inmem.NewCollaboratorStore()

	err := notes.Upsert(&scribe.Note{ID: 42, Title: "Pinned", Content: "draft", UserID: 1})
	require.NoError(t, err)
	err = collaborators.Upsert(&scribe.Collaborator{NoteID: 42, UserID: 2, Permission: "read"})
	require.NoError(t, err)

	resolver := &access.Resolver{Notes: notes, Collaborators: collaborators}
	return NewService(notes, resolver, false, log.New("test")), notes
}

func TestService_Join(t *testing.T) {
	service, _ := newTestService(t)
	alice := &recorderConn{userID: 1}
	bob := &recorderConn{userID: 2}

	service.Handle(alice, Event{Name: EventJoinDocument, DocumentID: 42, UserID: 1})
	service.Handle(bob, Event{Name: EventJoinDocument, DocumentID: 42, UserID: 2})

	// Alice learns about Bob, Bob is not notified about himself.
	events := alice.Events()
	require.Len(t, events, 1)
	assert.Equal(t, EventUserJoined, events[0].Name)
	assert.Equal(t, 2, events[0].UserID)
	assert.Len(t, bob.Events(), 0)

	// Missing document id drops the event.
	service.Handle(alice, Event{Name: EventJoinDocument, UserID: 1})
	assert.Equal(t, 0, service.Rooms().Size(0))
}

func TestService_JoinRequireReadAccess(t *testing.T) {
	notes := inmem.NewNoteStore()
	collaborators := inmem.NewCollaboratorStore()
	require.NoError(t, notes.Upsert(&scribe.Note{ID: 42, UserID: 1}))

	resolver := &access.Resolver{Notes: notes, Collaborators: collaborators}
	service := NewService(notes, resolver, true, log.New("test"))

	owner := &recorderConn{userID: 1}
	stranger := &recorderConn{userID: 3}

	service.Join(42, 1, owner)
	service.Join(42, 3, stranger)

	assert.Equal(t, 1, service.Rooms().Size(42))
	assert.Len(t, owner.Events(), 0)
}

func TestService_Leave(t *testing.T) {
	service, _ := newTestService(t)
	alice := &recorderConn{userID: 1}
	bob := &recorderConn{userID: 2}

	service.Join(42, 1, alice)
	service.Join(42, 2, bob)
	service.Handle(bob, Event{Name: EventLeaveDocument, DocumentID: 42, UserID: 2})

	events := alice.Events()
	require.Len(t, events, 2)
	assert.Equal(t, EventUserLeft, events[1].Name)
	assert.Equal(t, 2, events[1].UserID)
	assert.Equal(t, 1, service.Rooms().Size(42))
}

func TestService_Edit(t *testing.T) {
	service, notes := newTestService(t)
	alice := &recorderConn{userID: 1}
	bob := &recorderConn{userID: 2}

	service.Join(42, 1, alice)
	service.Join(42, 2, bob)

	service.Handle(bob, Event{
		Name:       EventEditDocument,
		DocumentID: 42,
		UserID:     2,
		Content:    strptr("live text"),
	})

	// The edit reaches Alice but not Bob, and is not persisted.
	events := alice.Events()
	require.Len(t, events, 2)
	assert.Equal(t, EventDocumentUpdated, events[1].Name)
	require.NotNil(t, events[1].Content)
	assert.Equal(t, "live text", *events[1].Content)
	assert.Len(t, bob.Events(), 1)

	saved, err := notes.Get(42)
	require.NoError(t, err)
	assert.Equal(t, "draft", saved[0].Content)

	// An edit without content is dropped.
	service.Handle(bob, Event{Name: EventEditDocument, DocumentID: 42, UserID: 2})
	assert.Len(t, alice.Events(), 2)
}

func TestService_Save(t *testing.T) {
	service, notes := newTestService(t)
	alice := &recorderConn{userID: 1}
	bob := &recorderConn{userID: 2}

	service.Join(42, 1, alice)
	service.Join(42, 2, bob)

	service.Handle(bob, Event{
		Name:       EventSaveDocument,
		DocumentID: 42,
		Content:    strptr("hello"),
	})

	saved, err := notes.Get(42)
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Equal(t, "hello", saved[0].Content)

	// Everybody in the room hears about the save, the saver included.
	aliceEvents := alice.Events()
	require.Len(t, aliceEvents, 2)
	assert.Equal(t, EventDocumentSaved, aliceEvents[1].Name)
	bobEvents := bob.Events()
	require.Len(t, bobEvents, 2)
	assert.Equal(t, EventDocumentSaved, bobEvents[1].Name)

	// Saving a note that does not exist is silent.
	service.Handle(bob, Event{Name: EventSaveDocument, DocumentID: 99, Content: strptr("lost")})
	assert.Len(t, bob.Events(), 2)
}

func TestService_Disconnect(t *testing.T) {
	service, _ := newTestService(t)
	alice := &recorderConn{userID: 1}
	bob := &recorderConn{userID: 2}

	service.Join(42, 1, alice)
	service.Join(42, 2, bob)
	service.Disconnect(bob)

	// No presence event without an explicit leave.
	assert.Len(t, alice.Events(), 1)
	assert.Equal(t, 1, service.Rooms().Size(42))
}
