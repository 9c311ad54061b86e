package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/moyoez/statusboard/api"
	"github.com/moyoez/statusboard/api/models"
	"github.com/moyoez/statusboard/notify"
	"github.com/moyoez/statusboard/tool"
	"github.com/moyoez/statusboard/tui"
)

func main() {
	cfg := tool.SetFlags()
	appCfg, err := tool.LoadConfig(cfg.UseConfigPath)
	if err != nil {
		tool.DefaultLogger.Fatalf("%v", err)
	}
	tool.ApplyFlags(&appCfg, cfg)
	tool.SetCurrentConfig(&appCfg)

	// initialize logger
	tool.InitLogger()
	tool.SetLogMode(cfg.Log)

	if cfg.UseTUI {
		// the alt screen owns the terminal
		tool.SetLogMode("none")
		if err := tui.Run(cfg.UseFile); err != nil {
			tool.DefaultLogger.Fatalf("Terminal dashboard failed: %v", err)
		}
		return
	}

	models.ConfigureSessions(&appCfg)
	hub := models.NewHub()
	notify.SetHub(hub)
	notify.SetSocketPath(appCfg.NotifySocket)

	apiServer := api.NewServer(&appCfg, hub)
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := apiServer.Start(); err != nil {
			tool.DefaultLogger.Fatalf("API server startup failed: %v", err)
		}
	}()

	<-ctx.Done()
	tool.DefaultLogger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := apiServer.Shutdown(shutdownCtx); err != nil {
		tool.DefaultLogger.Warnf("Shutdown: %v", err)
	}
}
