package models

import (
	"sync"

	"github.com/bytedance/sonic"
	"github.com/gorilla/websocket"

	"github.com/moyoez/statusboard/tool"
	"github.com/moyoez/statusboard/types"
)

// Hub holds WebSocket connections keyed to dashboard sessions.
// Implements types.NotifyHub.
type Hub struct {
	mu      sync.RWMutex
	writeMu sync.Mutex
	conns   map[*websocket.Conn]string
}

var _ types.NotifyHub = (*Hub)(nil)

// NewHub creates a new notify hub.
func NewHub() *Hub {
	return &Hub{
		conns: make(map[*websocket.Conn]string),
	}
}

// Register adds a WebSocket connection for sessionId.
func (h *Hub) Register(sessionId string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[conn] = sessionId
}

// Unregister removes a WebSocket connection from the hub.
func (h *Hub) Unregister(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.conns, conn)
}

// Count returns the number of connections registered for sessionId.
func (h *Hub) Count(sessionId string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	n := 0
	for _, id := range h.conns {
		if id == sessionId {
			n++
		}
	}
	return n
}

// Broadcast sends the notification as JSON to every connection of sessionId.
func (h *Hub) Broadcast(sessionId string, notification *types.Notification) {
	if notification == nil {
		return
	}
	payload, err := sonic.Marshal(notification)
	if err != nil {
		tool.DefaultLogger.Errorf("[Hub] Failed to encode notification: %v", err)
		return
	}

	h.mu.RLock()
	conns := make([]*websocket.Conn, 0, len(h.conns))
	for c, id := range h.conns {
		if id == sessionId {
			conns = append(conns, c)
		}
	}
	h.mu.RUnlock()

	// gorilla connections allow one concurrent writer
	h.writeMu.Lock()
	defer h.writeMu.Unlock()
	for _, conn := range conns {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			tool.DefaultLogger.Debugf("[Hub] Dropping connection for session %s: %v", sessionId, err)
		}
	}
}
