package ws

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"sharebnb/internal/entities"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Hub tracks live connections per user id. Emit is best-effort: events for
// users without a connection are dropped, never queued.
type Hub struct {
	mu          sync.Mutex
	subscribers map[string][]*websocket.Conn
}

func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[string][]*websocket.Conn),
	}
}

// Subscribe upgrades the request and keeps the connection registered for
// userID until the client disconnects. Blocks for the connection lifetime.
func (h *Hub) Subscribe(w http.ResponseWriter, r *http.Request, userID string) error {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	h.mu.Lock()
	h.subscribers[userID] = append(h.subscribers[userID], conn)
	h.mu.Unlock()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	h.mu.Lock()
	conns := h.subscribers[userID]
	remaining := make([]*websocket.Conn, 0, len(conns))
	for _, c := range conns {
		if c != conn {
			remaining = append(remaining, c)
		}
	}
	if len(remaining) == 0 {
		delete(h.subscribers, userID)
	} else {
		h.subscribers[userID] = remaining
	}
	h.mu.Unlock()

	// the read loop only exits once the peer is gone; a close error here
	// is not worth reporting to the handler
	conn.Close()
	return nil
}

// EmitToUser pushes one event to every connection of userID. Connections
// that fail to write are dropped.
func (h *Hub) EmitToUser(userID string, event entities.LiveUpdate) {
	payload, err := json.Marshal(event)
	if err != nil {
		logrus.WithField("error", err).Error("Could not marshal live update")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	conns := h.subscribers[userID]
	if len(conns) == 0 {
		return
	}

	alive := conns[:0]
	for _, conn := range conns {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err == nil {
			alive = append(alive, conn)
		} else {
			conn.Close()
		}
	}
	if len(alive) == 0 {
		delete(h.subscribers, userID)
	} else {
		h.subscribers[userID] = alive
	}
}

// ConnectedUsers reports how many users currently hold a connection.
func (h *Hub) ConnectedUsers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subscribers)
}
