package models

import (
	"sync"
	"time"

	ttlworker "github.com/FloatTech/ttl"

	"github.com/moyoez/statusboard/chart"
	"github.com/moyoez/statusboard/sheet"
	"github.com/moyoez/statusboard/tool"
	"github.com/moyoez/statusboard/types"
	"github.com/moyoez/statusboard/view"
)

// Session is one browser's dashboard: its view and the chart slot the view draws into.
type Session struct {
	Id    string
	View  *view.View
	Chart *chart.Slot
}

var (
	sessionMu      sync.Mutex
	sessionOptions = sessionConfig{
		ttl:         time.Duration(tool.DefaultSessionTTLSeconds) * time.Second,
		maxBytes:    tool.DefaultMaxUploadBytes,
		chartScale:  tool.DefaultChartScale,
		chartFormat: tool.DefaultChartFormat,
	}
	sessions = newSessionCache(sessionOptions.ttl)
)

type sessionConfig struct {
	ttl         time.Duration
	maxBytes    int64
	chartScale  int
	chartFormat string
}

// newSessionCache releases a session's chart whenever the cache drops it: expiry, Delete or Destroy.
func newSessionCache(ttl time.Duration) *ttlworker.Cache[string, *Session] {
	return ttlworker.NewCacheOn(ttl, [4]func(string, *Session){
		nil,
		nil,
		func(id string, s *Session) {
			_ = s.Chart.Close()
			tool.DefaultLogger.Debugf("[Session] Released dashboard session %s", id)
		},
		nil,
	})
}

// ConfigureSessions applies config to sessions created from now on and drops existing ones.
func ConfigureSessions(cfg *types.AppConfig) {
	sessionMu.Lock()
	defer sessionMu.Unlock()
	sessionOptions = sessionConfig{
		ttl:         time.Duration(cfg.SessionTTLSeconds) * time.Second,
		maxBytes:    cfg.MaxUploadBytes,
		chartScale:  cfg.ChartScale,
		chartFormat: cfg.ChartFormat,
	}
	sessions.Destroy()
	sessions = newSessionCache(sessionOptions.ttl)
}

// MaxUploadBytes is the per-upload byte limit sessions enforce.
func MaxUploadBytes() int64 {
	sessionMu.Lock()
	defer sessionMu.Unlock()
	return sessionOptions.maxBytes
}

// GetOrCreateSession returns the session for id, creating a fresh dashboard on first use.
func GetOrCreateSession(id string) *Session {
	sessionMu.Lock()
	defer sessionMu.Unlock()
	if s := sessions.Get(id); s != nil {
		return s
	}
	slot := chart.NewSlot(chart.NewRenderer(sessionOptions.chartScale, sessionOptions.chartFormat))
	s := &Session{
		Id:    id,
		View:  view.New(sheet.Decode, slot, sessionOptions.maxBytes),
		Chart: slot,
	}
	sessions.Set(id, s)
	tool.DefaultLogger.Debugf("[Session] Created dashboard session %s", id)
	return s
}
