// Package ws manages WebSocket connections and real-time event delivery.
//
// Architecture:
// - Hub: central structure managing every connection (Observer pattern)
// - Client: represents a single WebSocket connection
// - Event: the message format exchanged between client and server
//
// Event flow:
// 1. Something happens server-side (issue assigned, cycle started, ...)
// 2. A service calls the Hub's BroadcastToUser method
// 3. The Hub forwards the event to every connection of that user
// 4. Each client's WritePump writes the event to the WebSocket
package ws

// Event represents a single message sent over the WebSocket.
//
// Op (operation): the event kind — "notification_create", "heartbeat", etc.
// Data: payload specific to the event — a notification object, etc.
// Seq (sequence number): increasing counter stamped on every outbound event.
// Clients track seq to detect lost events: seq 7 right after seq 5 means
// event 6 never arrived.
type Event struct {
	Op   string `json:"op"`
	Data any    `json:"d,omitempty"`
	Seq  int64  `json:"seq,omitempty"`
}

// Client → Server operations
const (
	OpHeartbeat = "heartbeat" // sent every 30s by the client — "still here" signal
)

// Server → Client operations
const (
	OpReady              = "ready"               // first event after connecting
	OpHeartbeatAck       = "heartbeat_ack"       // reply to a heartbeat
	OpNotificationCreate = "notification_create" // a new notification was created
	OpIssueUpdate        = "issue_update"        // an issue changed status/priority/assignee
	OpCycleStart         = "cycle_start"         // a new cycle began
)

// ReadyData is the payload of the "ready" event.
type ReadyData struct {
	UserID string `json:"userId"`
}
