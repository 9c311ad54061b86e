package types

// AppConfig represents the application configuration loaded from config file
type AppConfig struct {
	Address             string `yaml:"address"`
	Port                int    `yaml:"port"`
	Protocol            string `yaml:"protocol"`
	MaxUploadBytes      int64  `yaml:"maxUploadBytes"`
	ChartScale          int    `yaml:"chartScale"`
	ChartFormat         string `yaml:"chartFormat"`
	SessionTTLSeconds   int    `yaml:"sessionTTLSeconds"`
	UploadRatePerMinute int    `yaml:"uploadRatePerMinute"`
	NotifySocket        string `yaml:"notifySocket,omitempty"`
	CertPEM             string `yaml:"certPEM,omitempty"`
	KeyPEM              string `yaml:"keyPEM,omitempty"`
}

// Config holds runtime overrides from CLI flags
type Config struct {
	Log           string
	UseConfigPath string
	UseAddress    string
	UsePort       int
	UseHttps      bool   // if true, serve the dashboard over https with a self-signed certificate.
	UseTUI        bool   // if true, run the terminal front end instead of the web server.
	UseFile       string // spreadsheet opened on start (terminal front end only).
	SkipNotify    bool   // if true, do not write notifications to the unix socket.
}
