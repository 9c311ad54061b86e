package tool

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/moyoez/statusboard/types"
)

func TestLoadTLSConfigGeneratesOnce(t *testing.T) {
	withConfigPath(t, filepath.Join(t.TempDir(), "config.yaml"))
	cfg := DefaultConfig()

	tlsCfg, err := LoadTLSConfig(&cfg)
	if err != nil {
		t.Fatalf("LoadTLSConfig: %v", err)
	}
	if len(tlsCfg.Certificates) != 1 {
		t.Fatalf("expected one certificate, got %d", len(tlsCfg.Certificates))
	}
	if cfg.CertPEM == "" || cfg.KeyPEM == "" {
		t.Fatal("certificate was not stored in config")
	}

	certPEM := cfg.CertPEM
	_, _, generated, err := GetOrCreateTLSCertFromConfig(&cfg)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if generated || cfg.CertPEM != certPEM {
		t.Error("stored certificate should be reused")
	}
}

func TestInvalidStoredCertificateIsReplaced(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CertPEM = "not a certificate"
	cfg.KeyPEM = "not a key"
	_, _, generated, err := GetOrCreateTLSCertFromConfig(&cfg)
	if err != nil {
		t.Fatalf("GetOrCreateTLSCertFromConfig: %v", err)
	}
	if !generated {
		t.Error("invalid certificate should be regenerated")
	}
}

func TestGeneratedCertificateDoesNotSaveFlagOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	withConfigPath(t, path)
	if err := os.WriteFile(path, []byte("port: 8181\nnotifySocket: /tmp/sb.sock\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	flags := parseFlags(flag.NewFlagSet("test", flag.ContinueOnError), []string{"-useHttps", "-skipNotify", "-usePort", "9999"})
	ApplyFlags(&cfg, flags)

	if _, err := LoadTLSConfig(&cfg); err != nil {
		t.Fatalf("LoadTLSConfig: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var saved types.AppConfig
	if err := yaml.Unmarshal(data, &saved); err != nil {
		t.Fatalf("saved config unreadable: %v", err)
	}
	if saved.Protocol == "https" || saved.Port != 8181 || saved.NotifySocket != "/tmp/sb.sock" {
		t.Errorf("flag overrides leaked into config file: protocol=%q port=%d notifySocket=%q",
			saved.Protocol, saved.Port, saved.NotifySocket)
	}
	if saved.CertPEM != cfg.CertPEM || saved.KeyPEM != cfg.KeyPEM {
		t.Error("generated certificate was not saved")
	}
	if GetCurrentConfig().CertPEM != cfg.CertPEM {
		t.Error("in-memory config should carry the certificate")
	}
}
