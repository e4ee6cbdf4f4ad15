package events

import (
	"time"

	"github.com/gorilla/websocket"
)

// Event kinds pushed to subscribed dashboards.
const (
	EventReservationCreated   = "reservation_created"
	EventReservationUpdated   = "reservation_updated"
	EventReservationCancelled = "reservation_cancelled"
	EventIncidentReported     = "incident_reported"
	EventIncidentResolved     = "incident_resolved"
)

// Event is a single feed message.
type Event struct {
	Type      string      `json:"type"`
	EntityID  uint        `json:"entityId"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// Client is one connected subscriber.
type Client struct {
	ID       string
	Conn     *websocket.Conn
	Send     chan Event
	LastPong time.Time
}

// Broadcaster is the narrow interface services use to publish events.
type Broadcaster interface {
	Broadcast(event Event)
}
