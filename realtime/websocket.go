package realtime

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/bmazoyer/scribe/log"
)

// writeWait bounds how long a single frame write may block. Broadcasts run
// under the registry lock, so a peer that stops reading must fail its Send
// instead of holding every room up until its TCP connection dies.
var writeWait = 10 * time.Second

// Conn adapts a gorilla websocket connection. Writes are serialized with
// a mutex since gorilla only supports one concurrent writer.
type Conn struct {
	ws     *websocket.Conn
	userID int

	writeMu sync.Mutex
}

func NewConn(ws *websocket.Conn, userID int) *Conn {
	return &Conn{ws: ws, userID: userID}
}

func (c *Conn) UserID() int { return c.userID }

func (c *Conn) Send(event Event) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	c.ws.SetWriteDeadline(time.Now().Add(writeWait))
	return c.ws.WriteJSON(event)
}

func (c *Conn) Close() error {
	return c.ws.Close()
}

// Serve reads events from the connection and feeds them to the service
// until the connection drops. It always cleans the connection out of the
// rooms on exit.
func Serve(service *Service, conn *Conn, logger log.Logger) {
	defer service.Disconnect(conn)
	defer conn.Close()

	for {
		var event Event
		if err := conn.ws.ReadJSON(&event); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Debugf("websocket closed for user %d: %v", conn.userID, err)
			}
			return
		}

		service.Handle(conn, event)
	}
}
