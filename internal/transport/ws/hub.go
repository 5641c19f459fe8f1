package ws

import (
	"encoding/json"
	"log"
	"sync"
)

// MessageType defines the type of WebSocket message
type MessageType string

// Generation-progress message types
const (
	MsgGenerationStarted MessageType = "generation_started"
	MsgExamGenerated     MessageType = "exam_generated"
	MsgGenerationFailed  MessageType = "generation_failed"
	MsgSubjectReady      MessageType = "subject_ready"
)

// Message is the WebSocket envelope format
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Connection represents one admin WebSocket connection
type Connection struct {
	Send chan []byte
	Hub  *Hub
}

// Hub fans generation-progress events out to every connected admin client.
type Hub struct {
	conns map[*Connection]bool
	mu    sync.RWMutex

	register   chan *Connection
	unregister chan *Connection
	broadcast  chan *Message
}

// NewHub creates a new WebSocket hub
func NewHub() *Hub {
	h := &Hub{
		conns:      make(map[*Connection]bool),
		register:   make(chan *Connection),
		unregister: make(chan *Connection),
		broadcast:  make(chan *Message, 256),
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		select {
		case conn := <-h.register:
			h.mu.Lock()
			h.conns[conn] = true
			h.mu.Unlock()
			log.Printf("Admin connected to generation feed (%d watching)", h.watcherCount())

		case conn := <-h.unregister:
			h.mu.Lock()
			if h.conns[conn] {
				delete(h.conns, conn)
				close(conn.Send)
			}
			h.mu.Unlock()
			log.Printf("Admin disconnected from generation feed (%d watching)", h.watcherCount())

		case msg := <-h.broadcast:
			data, _ := json.Marshal(msg)
			h.mu.RLock()
			for conn := range h.conns {
				select {
				case conn.Send <- data:
				default:
					// Drop message if buffer full
				}
			}
			h.mu.RUnlock()
		}
	}
}

func (h *Hub) watcherCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}

// Register adds a connection
func (h *Hub) Register(conn *Connection) {
	h.register <- conn
}

// Unregister removes a connection
func (h *Hub) Unregister(conn *Connection) {
	h.unregister <- conn
}

// Broadcast sends an event to all connected admins (implements
// service.Broadcaster).
func (h *Hub) Broadcast(msgType string, payload interface{}) {
	data, _ := json.Marshal(payload)
	h.broadcast <- &Message{
		Type:    MessageType(msgType),
		Payload: data,
	}
}
