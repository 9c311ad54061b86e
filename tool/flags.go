package tool

import (
	"flag"
	"os"

	"github.com/moyoez/statusboard/types"
)

// SetFlags parses CLI flags and returns the override config.
func SetFlags() types.Config {
	return parseFlags(flag.CommandLine, os.Args[1:])
}

func parseFlags(fs *flag.FlagSet, args []string) types.Config {
	var cfg types.Config
	fs.StringVar(&cfg.Log, "log", "", "log mode: dev|prod|none")
	fs.StringVar(&cfg.UseConfigPath, "useConfigPath", "", "override config file path")
	fs.StringVar(&cfg.UseAddress, "useAddress", "", "override listen address (loopback only is accepted)")
	fs.IntVar(&cfg.UsePort, "usePort", 0, "override listen port")
	fs.BoolVar(&cfg.UseHttps, "useHttps", false, "serve over https with a self-signed certificate")
	fs.BoolVar(&cfg.UseTUI, "tui", false, "run the terminal front end instead of the web server")
	fs.StringVar(&cfg.UseFile, "useFile", "", "spreadsheet to open on start (terminal front end)")
	fs.BoolVar(&cfg.SkipNotify, "skipNotify", false, "do not write notifications to the unix socket")
	_ = fs.Parse(args)
	return cfg
}

// ApplyFlags merges CLI overrides into the loaded config.
func ApplyFlags(appCfg *types.AppConfig, flags types.Config) {
	if flags.UseAddress != "" {
		appCfg.Address = flags.UseAddress
	}
	if flags.UsePort > 0 {
		appCfg.Port = flags.UsePort
	}
	if flags.UseHttps {
		appCfg.Protocol = "https"
	}
	if flags.SkipNotify {
		appCfg.NotifySocket = ""
	}
}
