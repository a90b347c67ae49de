package realtime

// Client-emitted events.
const (
	EventJoinDocument  = "join_document"
	EventLeaveDocument = "leave_document"
	EventEditDocument  = "edit_document"
	EventSaveDocument  = "save_document"
)

// Server-emitted events.
const (
	EventUserJoined      = "user_joined"
	EventUserLeft        = "user_left"
	EventDocumentUpdated = "document_updated"
	EventDocumentSaved   = "document_saved"
)

// Event is the wire format of the collaboration channel, both directions.
// Content is a pointer so that a missing content can be told apart from an
// empty document.
type Event struct {
	Name       string  `json:"event"`
	DocumentID int     `json:"document_id,omitempty"`
	UserID     int     `json:"user_id,omitempty"`
	Content    *string `json:"content,omitempty"`
}

// Connection is the handle the router fans events out to. UserID is the
// authenticated user behind the connection, not the display hint carried
// in event payloads.
type Connection interface {
	Send(Event) error
	UserID() int
}
