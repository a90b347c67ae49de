package realtime

import (
	"sync"
)

// Registry holds the collaboration rooms of the process: document id to
// the set of connections currently in the room. Rooms are purely
// in-memory; an empty room and no room are the same thing.
type Registry struct {
	mu    sync.Mutex
	rooms map[int]map[Connection]struct{}
}

func NewRegistry() *Registry {
	return &Registry{
		rooms: make(map[int]map[Connection]struct{}),
	}
}

func (r *Registry) Join(documentID int, conn Connection) {
	r.mu.Lock()
	defer r.mu.Unlock()

	room, ok := r.rooms[documentID]
	if !ok {
		room = make(map[Connection]struct{})
		r.rooms[documentID] = room
	}
	room[conn] = struct{}{}
}

func (r *Registry) Leave(documentID int, conn Connection) {
	r.mu.Lock()
	defer r.mu.Unlock()

	room, ok := r.rooms[documentID]
	if !ok {
		return
	}

	delete(room, conn)
	if len(room) == 0 {
		delete(r.rooms, documentID)
	}
}

// Drop removes the connection from every room it joined, typically when
// the transport notices the disconnection.
func (r *Registry) Drop(conn Connection) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for documentID, room := range r.rooms {
		delete(room, conn)
		if len(room) == 0 {
			delete(r.rooms, documentID)
		}
	}
}

// Size returns the number of connections currently in the room.
func (r *Registry) Size(documentID int) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.rooms[documentID])
}

// Broadcast sends the event to every member of the room, except the
// excluded connection if any. The registry lock is held during the sends
// so that a connection that left never receives a late fan-out. Send
// errors are ignored: the channel is fire-and-forget and a broken
// connection is reaped by its own transport.
func (r *Registry) Broadcast(documentID int, event Event, except Connection) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for conn := range r.rooms[documentID] {
		if conn == except {
			continue
		}
		_ = conn.Send(event)
	}
}
