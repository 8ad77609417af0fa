package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"resto-live/realtime"
	"resto-live/utils"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type WSController struct {
	Hub *realtime.Hub
}

func NewWSController(hub *realtime.Hub) *WSController {
	return &WSController{Hub: hub}
}

// Subscribe -> upgrade to websocket and join the broadcast set.
// Inbound frames are discarded: the push channel is one-way and a
// client can only mutate state through the HTTP surface.
func (wc *WSController) Subscribe(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		if utils.ErrorLogger != nil {
			utils.ErrorLogger.Printf("websocket upgrade failed: %v", err)
		}
		return
	}

	client := realtime.NewWSClient(conn)
	wc.Hub.Register(client)
	go client.WritePump()

	// Read loop exists only to detect disconnect.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	// Unregister before Close so no publish can race the send queue.
	wc.Hub.Unregister(client)
	client.Close()
}
