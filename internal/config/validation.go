package config

import (
	"fmt"
	"strings"
)

var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// validMarkdownStyles are glamour's standard style names.
var validMarkdownStyles = map[string]bool{
	"ascii":       true,
	"dark":        true,
	"dracula":     true,
	"light":       true,
	"notty":       true,
	"pink":        true,
	"tokyo-night": true,
}

// Validate checks config values for correctness.
// Returns an error listing every invalid value.
func (c *Config) Validate() error {
	var errs []string

	// UI timing
	if c.UI.ToastDurationMs < 1 {
		errs = append(errs, "ui.toast_duration_ms must be >= 1")
	}
	if c.UI.MaxToasts < 1 {
		errs = append(errs, "ui.max_toasts must be >= 1")
	}
	if c.UI.ScrollThreshold < 0 {
		errs = append(errs, "ui.scroll_threshold must be >= 0")
	}
	if c.UI.RowHeight < 1 {
		errs = append(errs, "ui.row_height must be >= 1")
	}
	if c.UI.FrameIntervalMs < 1 {
		errs = append(errs, "ui.frame_interval_ms must be >= 1")
	}
	if c.UI.MaxContentWidth < 20 {
		errs = append(errs, "ui.max_content_width must be >= 20")
	}
	if !validMarkdownStyles[c.UI.MarkdownStyle] {
		errs = append(errs, fmt.Sprintf("ui.markdown_style %q is not a known style", c.UI.MarkdownStyle))
	}

	// Content
	if c.Content.Watch && strings.TrimSpace(c.Content.Path) == "" {
		errs = append(errs, "content.watch requires content.path")
	}

	// Analytics
	if c.Analytics.QueueSize < 1 {
		errs = append(errs, "analytics.queue_size must be >= 1")
	}
	if c.Analytics.TimeoutMs < 1 {
		errs = append(errs, "analytics.timeout_ms must be >= 1")
	}
	if c.Analytics.Environment != "production" && c.Analytics.Environment != "development" {
		errs = append(errs, "analytics.environment must be \"production\" or \"development\"")
	}
	if c.Analytics.MeasurementID != "" && strings.TrimSpace(c.Analytics.CollectorURL) == "" {
		errs = append(errs, "analytics.collector_url is required when analytics.measurement_id is set")
	}

	// Server
	if strings.TrimSpace(c.Server.SSHAddr) == "" {
		errs = append(errs, "server.ssh_addr must not be empty")
	}
	if c.Server.IdleTimeoutSec < 0 {
		errs = append(errs, "server.idle_timeout_sec must be >= 0")
	}
	if c.Server.MaxSessions < 1 {
		errs = append(errs, "server.max_sessions must be >= 1")
	}

	// Log
	if !validLogLevels[c.Log.Level] {
		errs = append(errs, "log.level must be one of debug, info, warn, error")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed: %v", errs)
	}

	return nil
}
