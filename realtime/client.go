package realtime

import (
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"resto-live/utils"
)

const sendBuffer = 16

// WSClient adapts a websocket connection to the Subscriber interface.
// Frames are queued on a buffered channel and written by a dedicated
// pump goroutine, so a slow connection never blocks a publish.
type WSClient struct {
	id   string
	conn *websocket.Conn
	send chan []byte
}

func NewWSClient(conn *websocket.Conn) *WSClient {
	return &WSClient{
		id:   uuid.NewString(),
		conn: conn,
		send: make(chan []byte, sendBuffer),
	}
}

func (c *WSClient) ID() string { return c.id }

func (c *WSClient) Deliver(frame []byte) bool {
	select {
	case c.send <- frame:
		return true
	default:
		return false
	}
}

// WritePump drains the send queue onto the wire. It returns when the
// queue is closed or a write fails; the caller unregisters afterwards.
func (c *WSClient) WritePump() {
	for frame := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
			if utils.ErrorLogger != nil {
				utils.ErrorLogger.Printf("error writing to subscriber %s: %v", c.id, err)
			}
			return
		}
	}
}

// Close shuts the send queue and the underlying connection.
func (c *WSClient) Close() {
	close(c.send)
	c.conn.Close()
}
