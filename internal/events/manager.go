package events

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Manager fans mutation events out to connected WebSocket clients. Slow
// clients are dropped rather than allowed to block the feed.
type Manager struct {
	clients    map[string]*Client
	register   chan *Client
	unregister chan *Client
	broadcast  chan Event
	mutex      sync.RWMutex
	upgrader   websocket.Upgrader
	done       chan struct{}
	closeOnce  sync.Once
}

func NewManager() *Manager {
	return &Manager{
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan Event, 256),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// Cross-origin policy is handled by the CORS middleware; the
				// handshake itself carries the session cookie.
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		done: make(chan struct{}),
	}
}

// Upgrader exposes the websocket upgrader to the HTTP handler.
func (m *Manager) Upgrader() *websocket.Upgrader {
	return &m.upgrader
}

// Start begins the manager's event loop.
func (m *Manager) Start() {
	go m.run()
}

// Stop shuts the manager down and closes every client connection.
func (m *Manager) Stop() {
	m.closeOnce.Do(func() {
		close(m.done)
	})

	m.mutex.Lock()
	for id, client := range m.clients {
		close(client.Send)
		if client.Conn != nil {
			client.Conn.Close()
		}
		delete(m.clients, id)
	}
	m.mutex.Unlock()
}

func (m *Manager) run() {
	for {
		select {
		case client := <-m.register:
			m.mutex.Lock()
			m.clients[client.ID] = client
			m.mutex.Unlock()
			go m.writePump(client)

		case client := <-m.unregister:
			m.mutex.Lock()
			if _, ok := m.clients[client.ID]; ok {
				delete(m.clients, client.ID)
				close(client.Send)
				if client.Conn != nil {
					client.Conn.Close()
				}
			}
			m.mutex.Unlock()

		case event := <-m.broadcast:
			m.dispatch(event)

		case <-m.done:
			return
		}
	}
}

// RegisterClient attaches a new subscriber.
func (m *Manager) RegisterClient(clientID string, conn *websocket.Conn) {
	client := &Client{
		ID:       clientID,
		Conn:     conn,
		Send:     make(chan Event, 64),
		LastPong: time.Now(),
	}
	m.register <- client
}

// UnregisterClient detaches a subscriber.
func (m *Manager) UnregisterClient(clientID string) {
	m.mutex.RLock()
	client, exists := m.clients[clientID]
	m.mutex.RUnlock()

	if exists {
		m.unregister <- client
	}
}

// Broadcast queues an event for delivery. When the queue is full the event is
// dropped; the feed is advisory, the database is the source of truth.
func (m *Manager) Broadcast(event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	select {
	case m.broadcast <- event:
	default:
		log.Printf("Event feed full, dropping %s for entity %d", event.Type, event.EntityID)
	}
}

// ConnectedClients returns the number of attached subscribers.
func (m *Manager) ConnectedClients() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.clients)
}

func (m *Manager) dispatch(event Event) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	for id, client := range m.clients {
		select {
		case client.Send <- event:
		default:
			// Client cannot keep up; drop it inline (the run loop owns this
			// call, so going through the unregister channel would deadlock).
			delete(m.clients, id)
			close(client.Send)
			if client.Conn != nil {
				client.Conn.Close()
			}
		}
	}
}

func (m *Manager) writePump(client *Client) {
	for event := range client.Send {
		if err := client.Conn.WriteJSON(event); err != nil {
			log.Printf("Event write to client %s failed: %v", client.ID, err)
			m.UnregisterClient(client.ID)
			return
		}
	}
}
