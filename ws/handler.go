package ws

import (
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/irisedu/iris/pkg/token"
)

// TokenValidator is the interface the WebSocket handler uses to verify
// access tokens.
//
// Why not depend on services.AuthService directly? To avoid a circular
// dependency: services use ws.EventPublisher for broadcasting, so
// ws → services would close a cycle.
//
// Interface Segregation: the handler needs nothing but token
// verification, so it declares only that. The auth service satisfies
// this interface implicitly.
type TokenValidator interface {
	Verify(raw string) (*token.Claims, error)
}

// upgrader promotes an HTTP connection to a WebSocket connection.
//
// A WebSocket starts as plain HTTP and turns, via "upgrade", into a
// persistent bidirectional connection.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// CheckOrigin should verify the domain in production. For now every
	// origin is allowed (development).
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Handler serves WebSocket connection requests.
type Handler struct {
	hub            *Hub
	tokenValidator TokenValidator
}

// NewHandler creates a new WebSocket handler.
func NewHandler(hub *Hub, tokenValidator TokenValidator) *Handler {
	return &Handler{
		hub:            hub,
		tokenValidator: tokenValidator,
	}
}

// HandleConnection upgrades the HTTP request and registers the client.
//
// Browsers cannot set custom headers on WebSocket connects, so the token
// travels as a URL query parameter:
//
//	ws://server/ws?token=JWT_TOKEN
//
// Flow:
// 1. Read the token from the query
// 2. Verify it (JWT signature check)
// 3. HTTP → WebSocket upgrade
// 4. Create the client, register it with the Hub
// 5. Start the ReadPump and WritePump goroutines
func (h *Handler) HandleConnection(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("token")
	if raw == "" {
		http.Error(w, "missing token", http.StatusUnauthorized)
		return
	}

	claims, err := h.tokenValidator.Verify(raw)
	if err != nil {
		http.Error(w, "invalid token", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[ws] upgrade failed for user %s: %v", claims.UserID, err)
		return
	}

	client := &Client{
		hub:    h.hub,
		conn:   conn,
		userID: claims.UserID,
		send:   make(chan []byte, sendBufferSize),
	}

	h.hub.register <- client

	// WritePump runs in its own goroutine; ReadPump stays on this one and
	// blocks until the connection closes, keeping the HTTP handler alive.
	go client.WritePump()

	client.sendEvent(Event{Op: OpReady, Data: ReadyData{UserID: claims.UserID}})
	client.ReadPump()
}
