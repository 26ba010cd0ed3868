// Package websocket fans board progress events out to connected clients
package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"

	"decorlens/infrastructure/metrics"
	"decorlens/pkg/logger"
)

const sendBuffer = 16

// Message is the envelope written to clients
type Message struct {
	Type      string      `json:"type"`
	Room      string      `json:"room"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// Conn is the subset of a websocket connection the manager writes to
type Conn interface {
	WriteJSON(v interface{}) error
	Close() error
}

type Client struct {
	ID   uuid.UUID
	Room string

	conn      Conn
	send      chan Message
	closeOnce sync.Once
}

// Bus relays messages between API instances
type Bus interface {
	Publish(ctx context.Context, msg Message) error
	StartForwarder(ctx context.Context, onMsg func(Message)) error
}

// Manager tracks clients per room. Rooms are board ids.
type Manager struct {
	mu      sync.RWMutex
	rooms   map[string]map[*Client]bool
	clients map[Conn]*Client

	bus     Bus
	metrics *metrics.Metrics
}

func NewManager(m *metrics.Metrics) *Manager {
	return &Manager{
		rooms:   make(map[string]map[*Client]bool),
		clients: make(map[Conn]*Client),
		metrics: m,
	}
}

// UseBus routes Publish through bus and delivers everything it forwards locally
func (m *Manager) UseBus(ctx context.Context, bus Bus) error {
	if err := bus.StartForwarder(ctx, m.Broadcast); err != nil {
		return err
	}
	m.mu.Lock()
	m.bus = bus
	m.mu.Unlock()
	return nil
}

func (m *Manager) RegisterClient(conn Conn, room string) *Client {
	client := &Client{
		ID:   uuid.New(),
		Room: room,
		conn: conn,
		send: make(chan Message, sendBuffer),
	}

	m.mu.Lock()
	m.clients[conn] = client
	if room != "" {
		if m.rooms[room] == nil {
			m.rooms[room] = make(map[*Client]bool)
		}
		m.rooms[room][client] = true
	}
	m.mu.Unlock()

	m.metrics.WebSocketConnected()
	go m.writePump(client)

	logger.WebSocket("client_registered", "Client joined room", map[string]interface{}{
		"client_id": client.ID.String(),
		"room":      room,
	})
	return client
}

func (m *Manager) UnregisterClient(conn Conn) {
	m.mu.Lock()
	client, ok := m.clients[conn]
	if ok {
		delete(m.clients, conn)
		if subs, exists := m.rooms[client.Room]; exists {
			delete(subs, client)
			if len(subs) == 0 {
				delete(m.rooms, client.Room)
			}
		}
	}
	m.mu.Unlock()

	if !ok {
		return
	}
	client.closeOnce.Do(func() { close(client.send) })
	m.metrics.WebSocketDisconnected()

	logger.WebSocket("client_unregistered", "Client left room", map[string]interface{}{
		"client_id": client.ID.String(),
		"room":      client.Room,
	})
}

// Publish implements services.EventPublisher
func (m *Manager) Publish(room, event string, payload interface{}) {
	msg := Message{Type: event, Room: room, Data: payload, Timestamp: time.Now()}

	m.mu.RLock()
	bus := m.bus
	m.mu.RUnlock()

	if bus != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		err := bus.Publish(ctx, msg)
		if err == nil {
			return
		}
		logger.WebSocketError("bus_publish_failed", "Falling back to local delivery", err, map[string]interface{}{"room": room})
	}
	m.Broadcast(msg)
}

// Broadcast delivers msg to local clients in its room. Slow clients drop messages.
func (m *Manager) Broadcast(msg Message) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for client := range m.rooms[msg.Room] {
		select {
		case client.send <- msg:
		default:
			logger.Warn(logger.CategoryWebSocket, "message_dropped", "Outbound buffer full", map[string]interface{}{
				"client_id": client.ID.String(),
				"room":      msg.Room,
			})
		}
	}
}

// HandleMessage answers client frames. Only {"type":"ping"} is understood.
func (m *Manager) HandleMessage(conn Conn, data []byte) {
	var in struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &in); err != nil || in.Type != "ping" {
		return
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	client, ok := m.clients[conn]
	if !ok {
		return
	}

	select {
	case client.send <- Message{Type: "pong", Room: client.Room, Timestamp: time.Now()}:
	default:
	}
}

func (m *Manager) RoomSize(room string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.rooms[room])
}

func (m *Manager) ClientCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.clients)
}

func (m *Manager) writePump(client *Client) {
	for msg := range client.send {
		if err := client.conn.WriteJSON(msg); err != nil {
			logger.WebSocketError("write_failed", "WebSocket write error", err, map[string]interface{}{
				"client_id": client.ID.String(),
			})
			_ = client.conn.Close()
			return
		}
	}
}
