package config

// Config holds all application configuration values.
// Defaults are set in DefaultConfig() and can be overridden via dotfile.
// NOTE: Values in config files override defaults, including explicit zero values.
// Missing keys are left at their default values.
type Config struct {
	Features  FeaturesConfig  `json:"features"`
	Analytics AnalyticsConfig `json:"analytics"`
	UI        UIConfig        `json:"ui"`
	Content   ContentConfig   `json:"content"`
	Server    ServerConfig    `json:"server"`
	Log       LogConfig       `json:"log"`
}

// FeaturesConfig gates whole subsystems.
type FeaturesConfig struct {
	ContextMenu       bool `json:"context_menu"`       // Default: true
	KeyboardShortcuts bool `json:"keyboard_shortcuts"` // Default: true
	Analytics         bool `json:"analytics"`          // Default: true
}

type AnalyticsConfig struct {
	// Environment must be "production" for events to leave the process.
	Environment   string `json:"environment"`    // Default: "development"
	MeasurementID string `json:"measurement_id"` // Default: "" (tracking disabled)
	APISecret     string `json:"api_secret"`
	CollectorURL  string `json:"collector_url"`  // Default: GA4 measurement protocol endpoint
	QueueSize     int    `json:"queue_size"`     // Default: 256
	TimeoutMs     int    `json:"timeout_ms"`     // Default: 2000
	MetricsPrefix string `json:"metrics_prefix"` // Default: "portfolio"
}

type UIConfig struct {
	ToastDurationMs int    `json:"toast_duration_ms"` // Default: 3000
	MaxToasts       int    `json:"max_toasts"`        // Default: 5
	ScrollThreshold int    `json:"scroll_threshold"`  // Default: 150
	RowHeight       int    `json:"row_height"`        // Default: 16 (scroll units per viewport row)
	FrameIntervalMs int    `json:"frame_interval_ms"` // Default: 16
	MaxContentWidth int    `json:"max_content_width"` // Default: 96
	MarkdownStyle   string `json:"markdown_style"`    // Default: "dark"
	EnableMouse     bool   `json:"enable_mouse"`      // Default: true
	EnableAltScreen bool   `json:"enable_alt_screen"` // Default: true
}

type ContentConfig struct {
	// Path to a YAML content file. Empty uses the embedded content.
	Path  string `json:"path"`
	Watch bool   `json:"watch"` // Default: false
}

type ServerConfig struct {
	SSHAddr        string `json:"ssh_addr"`         // Default: ":2222"
	HostKeyPath    string `json:"host_key_path"`    // Default: "" (resolved under the config dir)
	MetricsAddr    string `json:"metrics_addr"`     // Default: ":9090"
	IdleTimeoutSec int    `json:"idle_timeout_sec"` // Default: 600
	MaxSessions    int    `json:"max_sessions"`     // Default: 64
}

type LogConfig struct {
	Level string `json:"level"` // Default: "info"
	// File receives logs in local TUI mode. Empty disables logging there.
	File string `json:"file"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Features: FeaturesConfig{
			ContextMenu:       true,
			KeyboardShortcuts: true,
			Analytics:         true,
		},
		Analytics: AnalyticsConfig{
			Environment:   "development",
			CollectorURL:  "https://www.google-analytics.com/mp/collect",
			QueueSize:     256,
			TimeoutMs:     2000,
			MetricsPrefix: "portfolio",
		},
		UI: UIConfig{
			ToastDurationMs: 3000,
			MaxToasts:       5,
			ScrollThreshold: 150,
			RowHeight:       16,
			FrameIntervalMs: 16,
			MaxContentWidth: 96,
			MarkdownStyle:   "dark",
			EnableMouse:     true,
			EnableAltScreen: true,
		},
		Server: ServerConfig{
			SSHAddr:        ":2222",
			MetricsAddr:    ":9090",
			IdleTimeoutSec: 600,
			MaxSessions:    64,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
