package events

import "time"

// ProtocolVersion is the wire protocol version spoken between the daemon
// and its clients. Bump when the message shape changes.
const ProtocolVersion = 1

// EventType indicates what kind of change occurred
type EventType string

const (
	EventIssueChanged   EventType = "issue_changed"
	EventStandupStarted EventType = "standup_started"
	EventStandupEnded   EventType = "standup_ended"
	EventPing           EventType = "ping"
	EventPong           EventType = "pong"
)

// Event represents a change notification for a project's board
type Event struct {
	Type       EventType `json:"type"`
	ProjectKey string    `json:"project_key"` // Which project changed; empty means all projects
	Timestamp  time.Time `json:"timestamp"`
	SequenceID int64     `json:"sequence_id"` // Monotonically increasing, for duplicate filtering
}

// SubscribeMessage is sent by clients to subscribe to a project's updates
type SubscribeMessage struct {
	ProjectKey string `json:"project_key"` // "" = all projects
}

// Message wraps events and control messages for the wire protocol
type Message struct {
	Version   int               `json:"version"`
	Type      string            `json:"type"` // "event", "subscribe", "ping", "pong"
	Event     *Event            `json:"event,omitempty"`
	Subscribe *SubscribeMessage `json:"subscribe,omitempty"`
}
