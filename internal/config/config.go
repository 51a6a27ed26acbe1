// Package config provides configuration types and defaults for enrol.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/zjrosen/enrol/internal/log"
)

// Config holds all configuration options for enrol.
type Config struct {
	UI      UIConfig      `mapstructure:"ui"`
	Theme   ThemeConfig   `mapstructure:"theme"`
	Tracing TracingConfig `mapstructure:"tracing"`
}

// UIConfig holds user interface configuration options.
type UIConfig struct {
	ShowHelp      bool `mapstructure:"show_help"`      // Expand the full help footer on start
	ConfirmDelete bool `mapstructure:"confirm_delete"` // Ask before removing a row (default: true)
	ToastSeconds  int  `mapstructure:"toast_seconds"`  // How long notifications stay visible
}

// ToastDuration returns ToastSeconds as a duration, falling back to the
// default when unset.
func (u UIConfig) ToastDuration() time.Duration {
	if u.ToastSeconds <= 0 {
		return DefaultToastSeconds * time.Second
	}
	return time.Duration(u.ToastSeconds) * time.Second
}

// ThemeConfig overrides the semantic colors. Empty values keep the
// built-in adaptive palette.
type ThemeConfig struct {
	Muted   string `mapstructure:"muted"`   // hints, placeholders, borders
	Error   string `mapstructure:"error"`   // inline validation messages
	Success string `mapstructure:"success"` // toasts, submit button
}

// TracingConfig holds distributed tracing configuration.
type TracingConfig struct {
	// Enabled controls whether tracing is active.
	// Default: false
	Enabled bool `mapstructure:"enabled"`

	// Exporter selects the trace export backend.
	// Options: "none", "file", "stdout", "otlp"
	// Default: "file"
	Exporter string `mapstructure:"exporter"`

	// FilePath is the output file for "file" exporter.
	// Default: ~/.config/enrol/traces/traces.jsonl
	FilePath string `mapstructure:"file_path"`

	// OTLPEndpoint is the collector endpoint for "otlp" exporter.
	// Default: "localhost:4317"
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`

	// SampleRate controls trace sampling (0.0 to 1.0).
	// Default: 1.0
	SampleRate float64 `mapstructure:"sample_rate"`

	// ServiceName is reported as the OpenTelemetry service.name resource.
	// Default: "enrol"
	ServiceName string `mapstructure:"service_name"`
}

// DefaultToastSeconds is used when ui.toast_seconds is zero.
const DefaultToastSeconds = 3

// DefaultTracesFilePath returns the default path for trace file export.
// Returns ~/.config/enrol/traces/traces.jsonl or empty string if home dir unavailable.
func DefaultTracesFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "enrol", "traces", "traces.jsonl")
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		UI: UIConfig{
			ShowHelp:      false,
			ConfirmDelete: true,
			ToastSeconds:  DefaultToastSeconds,
		},
		Tracing: TracingConfig{
			Enabled:      false,
			Exporter:     "file",
			FilePath:     "", // Derived from home dir at runtime
			OTLPEndpoint: "localhost:4317",
			SampleRate:   1.0,
			ServiceName:  "enrol",
		},
	}
}

// Validate checks the whole configuration.
func Validate(cfg Config) error {
	if err := ValidateUI(cfg.UI); err != nil {
		return err
	}
	if err := ValidateTheme(cfg.Theme); err != nil {
		return err
	}
	return ValidateTracing(cfg.Tracing)
}

// ValidateUI checks UI options.
func ValidateUI(ui UIConfig) error {
	if ui.ToastSeconds < 0 {
		return fmt.Errorf("ui.toast_seconds must not be negative, got %d", ui.ToastSeconds)
	}
	return nil
}

var hexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// ValidateTheme checks that every color override is a hex color.
func ValidateTheme(theme ThemeConfig) error {
	for key, value := range map[string]string{
		"muted":   theme.Muted,
		"error":   theme.Error,
		"success": theme.Success,
	} {
		if value != "" && !hexColor.MatchString(value) {
			return fmt.Errorf("theme.%s must be a hex color like \"#FF8787\", got %q", key, value)
		}
	}
	return nil
}

// ValidateTracing checks tracing configuration values.
func ValidateTracing(tracing TracingConfig) error {
	if tracing.SampleRate < 0.0 || tracing.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", tracing.SampleRate)
	}

	if tracing.Exporter != "" {
		switch tracing.Exporter {
		case "none", "file", "stdout", "otlp":
		default:
			return fmt.Errorf("tracing.exporter must be \"none\", \"file\", \"stdout\", or \"otlp\", got %q", tracing.Exporter)
		}
	}

	// Only validate path requirements when tracing is enabled
	if tracing.Enabled {
		if tracing.Exporter == "file" && tracing.FilePath == "" {
			return fmt.Errorf("tracing.file_path is required when exporter is \"file\"")
		}
		if tracing.Exporter == "otlp" && tracing.OTLPEndpoint == "" {
			return fmt.Errorf("tracing.otlp_endpoint is required when exporter is \"otlp\"")
		}
	}

	return nil
}

// DefaultConfigTemplate returns the commented YAML written on first run.
func DefaultConfigTemplate() string {
	return `# enrol configuration

ui:
  # Expand the full key help footer on start (toggle with ?)
  show_help: false
  # Ask for confirmation before removing a registered user
  confirm_delete: true
  # Seconds a notification stays on screen
  toast_seconds: 3

# Color overrides as hex values. Leave empty for the terminal-adaptive palette.
theme:
  muted: ""
  error: ""
  success: ""

tracing:
  enabled: false
  # none, file, stdout or otlp
  exporter: file
  # Defaults to ~/.config/enrol/traces/traces.jsonl
  file_path: ""
  otlp_endpoint: localhost:4317
  sample_rate: 1.0
  service_name: enrol
`
}

// WriteDefaultConfig creates a config file with default settings.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
