// Package realtime coordinates the live co-editing rooms. One room per
// open document, fan-out of edit and presence events to the room, and an
// explicit save event that bridges the in-memory state back to the note
// store.
//
// The channel is fire-and-forget by contract: an event that cannot be
// handled (missing fields, unknown note) is dropped without any failure
// notification to the sender. Edits are a pure transport relay with no
// merge logic; concurrent saves race at the store and the last commit
// wins.
package realtime

import (
	"github.com/bmazoyer/scribe"
	"github.com/bmazoyer/scribe/access"
	"github.com/bmazoyer/scribe/log"
)

type Service struct {
	rooms    *Registry
	notes    scribe.NoteStore
	resolver *access.Resolver
	logger   log.Logger

	// requireReadAccess re-checks read permission before admitting a
	// connection to a room. Off by default: the historical trust model
	// admits any authenticated connection that knows a document id.
	requireReadAccess bool
}

func NewService(notes scribe.NoteStore, resolver *access.Resolver, requireReadAccess bool, logger log.Logger) *Service {
	return &Service{
		rooms:             NewRegistry(),
		notes:             notes,
		resolver:          resolver,
		requireReadAccess: requireReadAccess,
		logger:            logger,
	}
}

// Rooms exposes the registry, mainly for the transport layer to drop
// disconnected connections.
func (s *Service) Rooms() *Registry {
	return s.rooms
}

// Handle dispatches a client event. Unknown events are dropped.
func (s *Service) Handle(conn Connection, event Event) {
	switch event.Name {
	case EventJoinDocument:
		s.Join(event.DocumentID, event.UserID, conn)
	case EventLeaveDocument:
		s.Leave(event.DocumentID, event.UserID, conn)
	case EventEditDocument:
		s.Edit(event.DocumentID, event.UserID, event.Content, conn)
	case EventSaveDocument:
		s.Save(event.DocumentID, event.Content)
	default:
		s.logger.Debugf("dropping unknown event %q", event.Name)
	}
}

// Join adds the connection to the document room and notifies the other
// members. The user id broadcast is the one from the payload, a display
// hint; the permission check, when enabled, uses the authenticated user
// behind the connection.
func (s *Service) Join(documentID, userID int, conn Connection) {
	if documentID == 0 {
		return
	}

	if s.requireReadAccess && s.resolver != nil {
		perm, _, err := s.resolver.Resolve(documentID, conn.UserID())
		if err != nil || !perm.CanRead() {
			s.logger.Debugf("refusing user %d on document %d", conn.UserID(), documentID)
			return
		}
	}

	s.rooms.Join(documentID, conn)
	s.rooms.Broadcast(documentID, Event{
		Name:   EventUserJoined,
		UserID: userID,
	}, conn)
}

// Leave removes the connection from the room and notifies the remaining
// members.
func (s *Service) Leave(documentID, userID int, conn Connection) {
	if documentID == 0 {
		return
	}

	s.rooms.Leave(documentID, conn)
	s.rooms.Broadcast(documentID, Event{
		Name:   EventUserLeft,
		UserID: userID,
	}, conn)
}

// Edit relays a live edit to the other members of the room. It never
// touches the store: durability only comes from Save.
func (s *Service) Edit(documentID, userID int, content *string, sender Connection) {
	if documentID == 0 || content == nil {
		return
	}

	s.rooms.Broadcast(documentID, Event{
		Name:       EventDocumentUpdated,
		DocumentID: documentID,
		UserID:     userID,
		Content:    content,
	}, sender)
}

// Save commits the document content to the note store and tells the whole
// room, saver included. A save on a note that vanished is dropped.
func (s *Service) Save(documentID int, content *string) {
	if documentID == 0 || content == nil {
		return
	}

	notes, err := s.notes.Get(documentID)
	if err != nil {
		s.logger.Errorf("error retrieving note %d on save: %v", documentID, err)
		return
	} else if len(notes) == 0 {
		return
	}

	note := notes[0]
	note.Content = *content
	if err := s.notes.Upsert(note); err != nil {
		s.logger.Errorf("error saving note %d: %v", documentID, err)
		return
	}

	s.rooms.Broadcast(documentID, Event{
		Name:       EventDocumentSaved,
		DocumentID: documentID,
	}, nil)
}

// Disconnect silently drops the connection from every room. Presence
// notifications only follow explicit leave events.
func (s *Service) Disconnect(conn Connection) {
	s.rooms.Drop(conn)
}
