// Package notify fans dashboard notifications out to the websocket hub and,
// when configured, to a local unix socket listener.
package notify

import (
	"encoding/binary"
	"fmt"
	"io"
	"net"
	"sync"
	"time"

	"github.com/bytedance/sonic"

	"github.com/moyoez/statusboard/tool"
	"github.com/moyoez/statusboard/types"
)

// MaxPayloadSize caps a single unix socket notification.
const MaxPayloadSize = 32 * 1024 // 32KB

var (
	// UnixSocketTimeout is the timeout for Unix socket operations
	UnixSocketTimeout = 3 * time.Second

	mu         sync.RWMutex
	hub        types.NotifyHub
	socketPath string
)

// SetHub installs the websocket hub. A nil hub disables websocket delivery.
func SetHub(h types.NotifyHub) {
	mu.Lock()
	defer mu.Unlock()
	hub = h
}

// SetSocketPath enables unix socket delivery; empty disables it.
func SetSocketPath(path string) {
	mu.Lock()
	defer mu.Unlock()
	socketPath = path
}

// NotifyWSEnabled reports whether pages should open the websocket.
func NotifyWSEnabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return hub != nil
}

// Dispatch delivers a notification for one dashboard session.
func Dispatch(sessionId string, notification *types.Notification) {
	mu.RLock()
	h, path := hub, socketPath
	mu.RUnlock()

	if h != nil {
		h.Broadcast(sessionId, notification)
	}
	if path != "" && notification.Type == types.NotifyTypeCountsUpdated {
		go func() {
			if err := SendNotification(notification, path); err != nil {
				tool.DefaultLogger.Warnf("[Notify] %v", err)
			}
		}()
	}
}

// CountsUpdated builds the notification sent after a redraw.
func CountsUpdated(fileName string, counts types.Counts, generation uint64) *types.Notification {
	return &types.Notification{
		Type:    types.NotifyTypeCountsUpdated,
		Title:   "Status summary updated",
		Message: fmt.Sprintf("%s: %d success, %d failed", fileName, counts.Success, counts.Failed),
		Data: map[string]any{
			"fileName":     fileName,
			"successCount": counts.Success,
			"failedCount":  counts.Failed,
			"generation":   generation,
		},
	}
}

// VisibilityToggled builds the notification sent after the table is shown or hidden.
func VisibilityToggled(visible bool) *types.Notification {
	return &types.Notification{
		Type: types.NotifyTypeVisibilityToggled,
		Data: map[string]any{"visible": visible},
	}
}

// SendNotification writes a length-prefixed JSON notification to a unix socket
// and reads an optional JSON reply.
func SendNotification(notification *types.Notification, path string) error {
	payload, err := sonic.Marshal(notification)
	if err != nil {
		return fmt.Errorf("failed to serialize notification data: %w", err)
	}
	if len(payload) > MaxPayloadSize {
		return fmt.Errorf("notification payload too large: %d bytes (max %d)", len(payload), MaxPayloadSize)
	}

	conn, err := net.DialTimeout("unix", path, UnixSocketTimeout)
	if err != nil {
		return fmt.Errorf("failed to connect to Unix socket %s: %w", path, err)
	}
	defer func() {
		if err := conn.Close(); err != nil {
			tool.DefaultLogger.Errorf("Failed to close Unix socket connection: %v", err)
		}
	}()

	if err := conn.SetDeadline(time.Now().Add(UnixSocketTimeout)); err != nil {
		tool.DefaultLogger.Errorf("Failed to set deadline: %v", err)
	}

	// 4 byte little-endian length, then the payload
	lengthBuf := make([]byte, 4)
	binary.LittleEndian.PutUint32(lengthBuf, uint32(len(payload)))
	if _, err := conn.Write(lengthBuf); err != nil {
		return fmt.Errorf("failed to write length to Unix socket: %w", err)
	}
	if _, err := conn.Write(payload); err != nil {
		return fmt.Errorf("failed to write payload to Unix socket: %w", err)
	}

	buf := make([]byte, 4096)
	n, err := conn.Read(buf)
	if err != nil && err != io.EOF {
		return fmt.Errorf("failed to read response from Unix socket: %w", err)
	}
	if n > 0 {
		var response map[string]any
		if err := sonic.Unmarshal(buf[:n], &response); err != nil {
			tool.DefaultLogger.Debugf("Unix socket response (raw): %s", string(buf[:n]))
		} else if errMsg, ok := response["error"].(string); ok && errMsg != "" {
			return fmt.Errorf("server returned error: %s", errMsg)
		}
	}

	tool.DefaultLogger.Infof("[UnixSocket] Notification sent: %s - %s", notification.Type, notification.Title)
	return nil
}
