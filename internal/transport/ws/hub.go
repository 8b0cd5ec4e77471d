package ws

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/uripeled2/classroom-participation-app/internal/protocol"
)

// Connection represents one live WebSocket connection. ID doubles as the
// transport address the router targets deliveries at.
type Connection struct {
	ID   string
	Send chan []byte
}

// Hub tracks live connections by connection ID. It keeps no room or role
// bookkeeping: recipient sets are decided by the router from room data and
// arrive here as plain connection IDs.
type Hub struct {
	mu    sync.RWMutex
	conns map[string]*Connection
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		conns: make(map[string]*Connection),
	}
}

func (h *Hub) register(conn *Connection) {
	h.mu.Lock()
	h.conns[conn.ID] = conn
	h.mu.Unlock()
	log.Printf("connection %s registered", conn.ID)
}

func (h *Hub) unregister(conn *Connection) {
	h.mu.Lock()
	if existing, ok := h.conns[conn.ID]; ok && existing == conn {
		delete(h.conns, conn.ID)
		close(conn.Send)
		log.Printf("connection %s unregistered", conn.ID)
	}
	h.mu.Unlock()
}

// Send delivers an envelope to one connection (implements
// service.Sender). Unknown recipients and full buffers drop the message;
// delivery is fire-and-forget.
func (h *Hub) Send(connID string, env *protocol.Envelope) {
	data, err := json.Marshal(env)
	if err != nil {
		log.Printf("encode %s: %v", env.Type, err)
		return
	}

	// The buffered send must stay under the lock: unregister closes the
	// channel under the write lock, so this can never race the close.
	h.mu.RLock()
	defer h.mu.RUnlock()
	conn, ok := h.conns[connID]
	if !ok {
		return
	}

	select {
	case conn.Send <- data:
	default:
		// Drop message if buffer full
	}
}

// Count returns the number of live connections.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}
