package realtime

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

type recorderConn struct {
	userID int

	mu     sync.Mutex
	events []Event
}

func (c *recorderConn) UserID() int { return c.userID }

func (c *recorderConn) Send(event Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, event)
	return nil
}

func (c *recorderConn) Events() []Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	events := make([]Event, len(c.events))
	copy(events, c.events)
	return events
}

func TestRegistry(t *testing.T) {
	registry := NewRegistry()
	alice := &recorderConn{userID: 1}
	bob := &recorderConn{userID: 2}

	registry.Join(1, alice)
	registry.Join(1, bob)
	registry.Join(2, alice)
	assert.Equal(t, 2, registry.Size(1))
	assert.Equal(t, 1, registry.Size(2))

	registry.Broadcast(1, Event{Name: EventUserJoined, UserID: 2}, bob)
	assert.Len(t, alice.Events(), 1)
	assert.Len(t, bob.Events(), 0)

	registry.Leave(1, bob)
	assert.Equal(t, 1, registry.Size(1))

	// Departed connections never receive late fan-out.
	registry.Broadcast(1, Event{Name: EventUserLeft, UserID: 2}, nil)
	assert.Len(t, bob.Events(), 0)
	assert.Len(t, alice.Events(), 2)

	registry.Drop(alice)
	assert.Equal(t, 0, registry.Size(1))
	assert.Equal(t, 0, registry.Size(2))
}
