package websocket

import (
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// ServeWs handles websocket requests from the peer, subscribing the
// connection to one assessment stream.
func ServeWs(hub *Hub, c *websocket.Conn, streamID uuid.UUID) {
	client := &Client{Hub: hub, Conn: c, StreamID: streamID, Send: make(chan []byte, 256)}
	client.Hub.register <- client

	// Allow collection of memory referenced by the caller by doing all work in
	// new goroutines.
	go client.writePump()
	client.readPump() // Run readPump in current goroutine (handler)
}
