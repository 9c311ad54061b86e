package tool

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/moyoez/statusboard/types"
)

var (
	ConfigPath    = "config.yaml" // be aware that it can be changed, default to ./config.yaml
	CurrentConfig types.AppConfig
)

const (
	DefaultAddress             = "127.0.0.1"
	DefaultPort                = 8080
	DefaultMaxUploadBytes      = 10 << 20 // 10MB
	DefaultChartScale          = 2
	DefaultChartFormat         = "png"
	DefaultSessionTTLSeconds   = 3600
	DefaultUploadRatePerMinute = 30
)

func defaultConfig() types.AppConfig {
	return types.AppConfig{
		Address:             DefaultAddress, // loopback only, the dashboard is a single-user tool.
		Port:                DefaultPort,
		Protocol:            "http",
		MaxUploadBytes:      DefaultMaxUploadBytes,
		ChartScale:          DefaultChartScale, // 300x200 surface times scale
		ChartFormat:         DefaultChartFormat,
		SessionTTLSeconds:   DefaultSessionTTLSeconds,
		UploadRatePerMinute: DefaultUploadRatePerMinute,
	}
}

// DefaultConfig returns a copy of the built-in configuration.
func DefaultConfig() types.AppConfig {
	return defaultConfig()
}

func LoadConfig(path string) (types.AppConfig, error) {
	if path == "" {
		path = ConfigPath
	}
	ConfigPath = path

	cfg := defaultConfig()

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			if writeErr := writeDefaultConfig(path, cfg); writeErr != nil {
				return cfg, fmt.Errorf("config file not found, and failed to generate default config: %w", writeErr)
			}
			DefaultLogger.Infof("Created new config file: %s", path)
			CurrentConfig = cfg
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}
	if info.IsDir() {
		return cfg, fmt.Errorf("config file path is a directory: %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file: %w", err)
	}
	normalizeConfig(&cfg)

	CurrentConfig = cfg
	return cfg, nil
}

// normalizeConfig replaces zero or out of range values with defaults.
func normalizeConfig(cfg *types.AppConfig) {
	if cfg.Address == "" {
		cfg.Address = DefaultAddress
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		DefaultLogger.Warnf("Invalid port %d in config, using %d", cfg.Port, DefaultPort)
		cfg.Port = DefaultPort
	}
	if cfg.Protocol != "https" {
		cfg.Protocol = "http"
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = DefaultMaxUploadBytes
	}
	if cfg.ChartScale <= 0 {
		cfg.ChartScale = DefaultChartScale
	}
	if cfg.ChartFormat != "svg" {
		cfg.ChartFormat = DefaultChartFormat
	}
	if cfg.SessionTTLSeconds <= 0 {
		cfg.SessionTTLSeconds = DefaultSessionTTLSeconds
	}
	if cfg.UploadRatePerMinute < 0 {
		cfg.UploadRatePerMinute = DefaultUploadRatePerMinute
	}
}

func writeDefaultConfig(path string, cfg types.AppConfig) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func GetCurrentConfig() *types.AppConfig {
	return &CurrentConfig
}

// SetCurrentConfig replaces the in-memory config without touching the file (flag overrides stay runtime-only).
func SetCurrentConfig(cfg *types.AppConfig) {
	if cfg == nil {
		return
	}
	CurrentConfig = *cfg
}

// PersistTLSCert stores a generated certificate in config.yaml. Only certPEM and keyPEM
// are written; the rest of the file is reloaded from disk so flag overrides are never saved.
func PersistTLSCert(certPEM, keyPEM string) error {
	onDisk := defaultConfig()
	data, err := os.ReadFile(ConfigPath)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &onDisk); err != nil {
			return fmt.Errorf("failed to parse config file: %w", err)
		}
	case !os.IsNotExist(err):
		return fmt.Errorf("failed to read config file: %w", err)
	}
	onDisk.CertPEM = certPEM
	onDisk.KeyPEM = keyPEM
	if err := writeDefaultConfig(ConfigPath, onDisk); err != nil {
		return fmt.Errorf("failed to persist certificate: %w", err)
	}

	CurrentConfig.CertPEM = certPEM
	CurrentConfig.KeyPEM = keyPEM
	return nil
}
