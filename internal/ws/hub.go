package ws

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"

	"tribune/internal/models"
	"tribune/internal/observability"
)

// Hub maintains the live-timeline rooms: one room for the global timeline
// and one per group.
type Hub struct {
	globalConns map[*websocket.Conn]bool
	groupRooms  map[int]map[*websocket.Conn]bool
	mu          sync.RWMutex
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		globalConns: make(map[*websocket.Conn]bool),
		groupRooms:  make(map[int]map[*websocket.Conn]bool),
	}
}

// AddGlobalClient subscribes a connection to the global timeline.
func (h *Hub) AddGlobalClient(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.globalConns[conn] = true
}

// RemoveGlobalClient drops a global-timeline subscription.
func (h *Hub) RemoveGlobalClient(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.globalConns, conn)
}

// AddGroupClient subscribes a connection to one group's timeline.
func (h *Hub) AddGroupClient(groupID int, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.groupRooms[groupID]; !ok {
		h.groupRooms[groupID] = make(map[*websocket.Conn]bool)
	}
	h.groupRooms[groupID][conn] = true
}

// RemoveGroupClient drops a group-timeline subscription.
func (h *Hub) RemoveGroupClient(groupID int, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if conns, ok := h.groupRooms[groupID]; ok {
		delete(conns, conn)
		if len(conns) == 0 {
			delete(h.groupRooms, groupID)
		}
	}
}

// BroadcastPost pushes a freshly created post to the global room and, when
// the post belongs to a group, to that group's room.
func (h *Hub) BroadcastPost(post models.PostView, groupID int) {
	event := models.PostEvent{Type: "post", Post: &post}
	payload, _ := json.Marshal(event)

	h.mu.RLock()
	global := make([]*websocket.Conn, 0, len(h.globalConns))
	for conn := range h.globalConns {
		global = append(global, conn)
	}
	var grouped []*websocket.Conn
	if groupID > 0 {
		for conn := range h.groupRooms[groupID] {
			grouped = append(grouped, conn)
		}
	}
	h.mu.RUnlock()

	for _, conn := range global {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			log.Printf("websocket write error: %v", err)
			conn.Close()
			h.RemoveGlobalClient(conn)
			observability.IncWSEvent("global", "write_error")
			continue
		}
		observability.IncWSEvent("global", "post")
	}
	for _, conn := range grouped {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			log.Printf("websocket write error: %v", err)
			conn.Close()
			h.RemoveGroupClient(groupID, conn)
			observability.IncWSEvent("group", "write_error")
			continue
		}
		observability.IncWSEvent("group", "post")
	}
}
