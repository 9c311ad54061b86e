package api

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/moyoez/statusboard/api/controllers"
	"github.com/moyoez/statusboard/api/middlewares"
	"github.com/moyoez/statusboard/api/models"
	"github.com/moyoez/statusboard/tool"
	"github.com/moyoez/statusboard/types"
)

//go:embed templates/*.html
var templatesFS embed.FS

const PageTitle = "Job Status Dashboard"

// Server represents the dashboard HTTP server
type Server struct {
	cfg    *types.AppConfig
	hub    *models.Hub
	engine *gin.Engine
	server *http.Server
	mu     sync.RWMutex
}

// NewServer creates a dashboard server. A nil hub disables the /ws route.
func NewServer(cfg *types.AppConfig, hub *models.Hub) *Server {
	return &Server{
		cfg: cfg,
		hub: hub,
	}
}

// Addr is the host:port the server listens on.
func (s *Server) Addr() string {
	return net.JoinHostPort(s.cfg.Address, strconv.Itoa(s.cfg.Port))
}

func (s *Server) setupRoutes() *gin.Engine {
	if tool.IsDebug() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	if tool.IsDebug() {
		engine.Use(gin.Logger())
	}
	engine.Use(gin.Recovery())
	// ClientIP must come from the socket, never from forwarding headers
	_ = engine.SetTrustedProxies(nil)
	engine.SetHTMLTemplate(template.Must(template.New("").ParseFS(templatesFS, "templates/*.html")))

	engine.Use(middlewares.OnlyAllowLocal)
	engine.Use(middlewares.Session(s.cfg.SessionTTLSeconds))

	dashboardCtrl := controllers.NewDashboardController(PageTitle)

	engine.GET("/", dashboardCtrl.HandleIndex)
	engine.POST("/upload", middlewares.UploadRateLimit(s.cfg.UploadRatePerMinute), dashboardCtrl.HandleUpload)
	engine.POST("/toggle", dashboardCtrl.HandleToggle)
	engine.GET("/chart", controllers.HandleChart)
	if s.hub != nil {
		engine.GET("/ws", controllers.HandleNotifyWS(s.hub))
	}

	self := engine.Group("/api")
	{
		self.GET("/summary", dashboardCtrl.HandleSummary) // Counts, visibility and file name of the caller's session
		self.GET("/status", controllers.UserStatus)       // Running and notify_ws_enabled for the page
		self.GET("/config", controllers.UserConfigGet)
	}

	return engine
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	if !tool.IsLoopbackHost(s.cfg.Address) {
		return fmt.Errorf("refusing to listen on non-loopback address %q", s.cfg.Address)
	}
	engine := s.setupRoutes()

	s.mu.Lock()
	s.engine = engine
	s.server = &http.Server{
		Addr:              s.Addr(),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.mu.Unlock()

	tool.DefaultLogger.Infof("Starting dashboard on %s://%s", s.cfg.Protocol, s.Addr())

	var err error
	if s.cfg.Protocol == "https" {
		tlsConfig, tlsErr := tool.LoadTLSConfig(s.cfg)
		if tlsErr != nil {
			return tlsErr
		}
		s.mu.Lock()
		s.server.TLSConfig = tlsConfig
		s.mu.Unlock()

		tool.DefaultLogger.Infof("TLS certificate configured for HTTPS")
		err = s.server.ListenAndServeTLS("", "")
	} else {
		err = s.server.ListenAndServe()
	}
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown stops accepting requests and waits for in-flight ones.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.RLock()
	srv := s.server
	s.mu.RUnlock()
	if srv == nil {
		return nil
	}
	return srv.Shutdown(ctx)
}
