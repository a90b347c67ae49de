package gin

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bmazoyer/scribe"
	"github.com/bmazoyer/scribe/realtime"
)

func dialRealtime(t *testing.T, srv *httptest.Server, token string) *websocket.Conn {
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/ws?access_token=" + strings.TrimPrefix(token, "bearer ")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err, "could not dial websocket")
	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) realtime.Event {
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var event realtime.Event
	require.NoError(t, conn.ReadJSON(&event))
	return event
}

func TestRealtimeHandler_Authentication(t *testing.T) {
	env := createRouter(t)
	srv := httptest.NewServer(env.router)
	defer srv.Close()

	base := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/ws"

	var tts = map[string]string{
		"no token":  base,
		"bad token": base + "?access_token=not.a.token",
	}
	for name, url := range tts {
		conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
		require.Error(t, err, name)
		if conn != nil {
			conn.Close()
		}
		require.NotNil(t, resp, name)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, name)
	}
}

func TestRealtimeHandler_Session(t *testing.T) {
	env := createRouter(t)
	alice, aliceToken := env.createUser(t, "Alice", "alice@example.com")
	bob, bobToken := env.createUser(t, "Bob", "bob@example.com")

	note := &scribe.Note{Title: "Doc", Content: "draft", UserID: alice.ID}
	require.NoError(t, env.stores.Notes.Upsert(note))

	srv := httptest.NewServer(env.router)
	defer srv.Close()

	aliceConn := dialRealtime(t, srv, aliceToken)
	defer aliceConn.Close()
	bobConn := dialRealtime(t, srv, bobToken)

	join := realtime.Event{Name: realtime.EventJoinDocument, DocumentID: note.ID, UserID: alice.ID}
	require.NoError(t, aliceConn.WriteJSON(join))
	require.Eventually(t, func() bool {
		return env.rt.Rooms().Size(note.ID) == 1
	}, 2*time.Second, 10*time.Millisecond, "alice never joined the room")

	join.UserID = bob.ID
	require.NoError(t, bobConn.WriteJSON(join))

	// Alice hears about Bob.
	event := readEvent(t, aliceConn)
	assert.Equal(t, realtime.EventUserJoined, event.Name)
	assert.Equal(t, bob.ID, event.UserID)

	// Bob's live edit reaches Alice, untouched by the store.
	content := "live text"
	require.NoError(t, bobConn.WriteJSON(realtime.Event{
		Name:       realtime.EventEditDocument,
		DocumentID: note.ID,
		UserID:     bob.ID,
		Content:    &content,
	}))
	event = readEvent(t, aliceConn)
	assert.Equal(t, realtime.EventDocumentUpdated, event.Name)
	require.NotNil(t, event.Content)
	assert.Equal(t, "live text", *event.Content)

	// A save persists and is echoed to the whole room.
	saved := "saved text"
	require.NoError(t, bobConn.WriteJSON(realtime.Event{
		Name:       realtime.EventSaveDocument,
		DocumentID: note.ID,
		Content:    &saved,
	}))
	event = readEvent(t, aliceConn)
	assert.Equal(t, realtime.EventDocumentSaved, event.Name)
	event = readEvent(t, bobConn)
	assert.Equal(t, realtime.EventDocumentSaved, event.Name)

	stored, err := env.stores.Notes.Get(note.ID)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "saved text", stored[0].Content)

	// Closing the transport drains Bob from the room, silently.
	bobConn.Close()
	require.Eventually(t, func() bool {
		return env.rt.Rooms().Size(note.ID) == 1
	}, 2*time.Second, 10*time.Millisecond, "transport close never drained the room")

	aliceConn.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	var left realtime.Event
	assert.Error(t, aliceConn.ReadJSON(&left), "no presence event on a bare disconnect")
}
