package types

// ConfigResponse is the JSON shape for GET /api/config. Key material is never echoed.
type ConfigResponse struct {
	Address             string `json:"address"`
	Port                int    `json:"port"`
	Protocol            string `json:"protocol"`
	MaxUploadBytes      int64  `json:"max_upload_bytes"`
	ChartScale          int    `json:"chart_scale"`
	ChartFormat         string `json:"chart_format"`
	SessionTTLSeconds   int    `json:"session_ttl_seconds"`
	UploadRatePerMinute int    `json:"upload_rate_per_minute"`
	NotifySocketEnabled bool   `json:"notify_socket_enabled"`
}
