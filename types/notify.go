package types

const (
	NotifyTypeCountsUpdated     = "counts_updated"
	NotifyTypeVisibilityToggled = "visibility_toggled"
)

// Notification represents a notification message structure
type Notification struct {
	Type    string         `json:"type,omitempty"`    // Notification type, e.g. "counts_updated"
	Title   string         `json:"title,omitempty"`   // Notification title
	Message string         `json:"message,omitempty"` // Notification message/content
	Data    map[string]any `json:"data,omitempty"`    // Additional data fields
}

// NotifyHub is implemented by the websocket hub; the notify package only needs Broadcast.
type NotifyHub interface {
	Broadcast(sessionId string, notification *Notification)
}
