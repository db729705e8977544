package ws

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// WebSocket connection constants
const (
	// writeWait: maximum time to write one message. Exceeding it closes
	// the connection (likely a network problem).
	writeWait = 10 * time.Second

	// pongWait: maximum time to wait for a client heartbeat.
	// 3 missed heartbeats = 30s × 3 = 90s; after that the client is
	// considered gone.
	pongWait = 90 * time.Second

	// maxMessageSize: largest message (bytes) a client may send.
	// WebSocket messages stay small here; large data goes over HTTP.
	maxMessageSize = 4096

	// sendBufferSize: buffer size of each client's send channel.
	// A full buffer means a slow client, which gets disconnected.
	sendBufferSize = 256
)

// Client represents a single WebSocket connection.
//
// Two goroutines per connection:
// - ReadPump: reads messages coming from the client
// - WritePump: writes Hub messages out to the client
//
// Why two? gorilla/websocket supports only one concurrent reader and one
// concurrent writer; split goroutines keep them from blocking each other.
type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	userID string
	// send buffers the messages destined for this client. The Hub does
	// `client.send <- data`, WritePump reads it back out.
	send chan []byte
	mu   sync.Mutex // guards conn.WriteMessage calls
}

// ReadPump reads and handles messages from the WebSocket connection.
//
// Runs as a goroutine until the connection closes, then unregisters the
// client from the Hub and cleans up.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)

	// If no message arrives within the deadline, Read fails. Every
	// heartbeat renews the deadline.
	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		log.Printf("[ws] failed to set read deadline for user %s: %v", c.userID, err)
		return
	}

	for {
		_, rawMessage, err := c.conn.ReadMessage()
		if err != nil {
			// Connection closed or errored — ReadPump ends.
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[ws] unexpected close for user %s: %v", c.userID, err)
			}
			return
		}

		var event Event
		if err := json.Unmarshal(rawMessage, &event); err != nil {
			log.Printf("[ws] invalid message from user %s: %v", c.userID, err)
			continue
		}

		c.handleEvent(event)
	}
}

// handleEvent dispatches an incoming client event by kind.
func (c *Client) handleEvent(event Event) {
	switch event.Op {
	case OpHeartbeat:
		// Heartbeat received — renew the deadline and acknowledge.
		if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			log.Printf("[ws] failed to set read deadline for user %s: %v", c.userID, err)
			return
		}
		c.sendEvent(Event{Op: OpHeartbeatAck})

	default:
		log.Printf("[ws] unknown op from user %s: %s", c.userID, event.Op)
	}
}

// sendEvent serializes an event and queues it on the send channel.
func (c *Client) sendEvent(event Event) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("[ws] failed to marshal event for user %s: %v", c.userID, err)
		return
	}

	select {
	case c.send <- data:
	default:
		// Buffer full — drop the event rather than block ReadPump.
		log.Printf("[ws] send buffer full for user %s, dropping event %s", c.userID, event.Op)
	}
}

// WritePump writes messages from the Hub out to the WebSocket connection.
//
// Runs as a goroutine; waits on the send channel and writes to the socket.
func (c *Client) WritePump() {
	defer c.conn.Close()

	for {
		message, ok := <-c.send
		if !ok {
			// Channel closed — the Hub removed this client
			c.writeMessage(websocket.CloseMessage, nil)
			return
		}

		if err := c.writeMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}
}

// writeMessage writes to the WebSocket under the mutex.
// gorilla/websocket forbids concurrent writes on one conn.
func (c *Client) writeMessage(messageType int, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return c.conn.WriteMessage(messageType, data)
}
