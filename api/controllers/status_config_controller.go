package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/moyoez/statusboard/notify"
	"github.com/moyoez/statusboard/tool"
	"github.com/moyoez/statusboard/types"
)

// UserStatus returns server status for the web UI (running, notify_ws_enabled).
// GET /api/status
func UserStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"running":           true,
		"notify_ws_enabled": notify.NotifyWSEnabled(),
	})
}

// UserConfigGet returns the effective config without key material.
// GET /api/config
func UserConfigGet(c *gin.Context) {
	cfg := tool.GetCurrentConfig()
	c.JSON(http.StatusOK, types.ConfigResponse{
		Address:             cfg.Address,
		Port:                cfg.Port,
		Protocol:            cfg.Protocol,
		MaxUploadBytes:      cfg.MaxUploadBytes,
		ChartScale:          cfg.ChartScale,
		ChartFormat:         cfg.ChartFormat,
		SessionTTLSeconds:   cfg.SessionTTLSeconds,
		UploadRatePerMinute: cfg.UploadRatePerMinute,
		NotifySocketEnabled: cfg.NotifySocket != "",
	})
}
