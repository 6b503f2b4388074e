package ws

import (
	"encoding/json"
	"sync"

	"gamedesk/pkg/logger"
)

// MessageType defines the type of WebSocket message
type MessageType string

const (
	MsgFloorSnapshot MessageType = "floor_snapshot"
	MsgBillSettled   MessageType = "bill_settled"
	MsgError         MessageType = "error"
)

// Message is the WebSocket envelope format
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Hub manages the staff dashboard connections
type Hub struct {
	conns map[*Connection]bool

	mu sync.RWMutex

	register   chan *Connection
	unregister chan *Connection
	broadcast  chan *Message

	log logger.Logger
}

// Connection represents one staff dashboard
type Connection struct {
	StaffID string
	Send    chan []byte
	Hub     *Hub
}

// NewHub creates a new WebSocket hub
func NewHub(log logger.Logger) *Hub {
	h := &Hub{
		conns:      make(map[*Connection]bool),
		register:   make(chan *Connection),
		unregister: make(chan *Connection),
		broadcast:  make(chan *Message, 256),
		log:        log,
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
			h.log.Info("staff dashboard connected", "staffId", conn.StaffID)

		case conn := <-h.unregister:
			h.mu.Lock()
			if h.conns[conn] {
				delete(h.conns, conn)
				close(conn.Send)
				h.log.Info("staff dashboard disconnected", "staffId", conn.StaffID)
			}
			h.mu.Unlock()

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

// Register adds a connection
func (h *Hub) Register(conn *Connection) {
	h.register <- conn
}

// Unregister removes a connection
func (h *Hub) Unregister(conn *Connection) {
	h.unregister <- conn
}

// BroadcastToStaff sends a message to every connected dashboard (implements
// service.Broadcaster)
func (h *Hub) BroadcastToStaff(msgType string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		h.log.Warn("dropping unmarshalable broadcast", "type", msgType, "error", err)
		return
	}
	h.broadcast <- &Message{
		Type:    MessageType(msgType),
		Payload: data,
	}
}
