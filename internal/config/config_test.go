package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	require.True(t, cfg.UI.ConfirmDelete)
	require.False(t, cfg.UI.ShowHelp)
	require.Equal(t, DefaultToastSeconds, cfg.UI.ToastSeconds)
	require.False(t, cfg.Tracing.Enabled)
	require.Equal(t, "file", cfg.Tracing.Exporter)
	require.Equal(t, "enrol", cfg.Tracing.ServiceName)
	require.NoError(t, Validate(cfg))
}

func TestToastDuration(t *testing.T) {
	require.Equal(t, 5*time.Second, UIConfig{ToastSeconds: 5}.ToastDuration())
	require.Equal(t, DefaultToastSeconds*time.Second, UIConfig{}.ToastDuration())
}

func TestValidateUI(t *testing.T) {
	require.NoError(t, ValidateUI(UIConfig{ToastSeconds: 0}))

	err := ValidateUI(UIConfig{ToastSeconds: -1})
	require.ErrorContains(t, err, "ui.toast_seconds")
}

func TestValidateTheme(t *testing.T) {
	tests := []struct {
		name    string
		theme   ThemeConfig
		wantErr string
	}{
		{"empty", ThemeConfig{}, ""},
		{"six digit", ThemeConfig{Error: "#FF8787"}, ""},
		{"three digit", ThemeConfig{Muted: "#888"}, ""},
		{"named color", ThemeConfig{Success: "green"}, "theme.success"},
		{"missing hash", ThemeConfig{Muted: "888888"}, "theme.muted"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTheme(tt.theme)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestValidateTracing(t *testing.T) {
	tests := []struct {
		name    string
		tracing TracingConfig
		wantErr string
	}{
		{"defaults", Defaults().Tracing, ""},
		{"sample rate too high", TracingConfig{SampleRate: 1.5}, "sample_rate"},
		{"sample rate negative", TracingConfig{SampleRate: -0.1}, "sample_rate"},
		{"unknown exporter", TracingConfig{Exporter: "jaeger", SampleRate: 1}, "tracing.exporter"},
		{"file without path", TracingConfig{Enabled: true, Exporter: "file", SampleRate: 1}, "file_path"},
		{"file without path disabled", TracingConfig{Exporter: "file", SampleRate: 1}, ""},
		{"otlp without endpoint", TracingConfig{Enabled: true, Exporter: "otlp", SampleRate: 1}, "otlp_endpoint"},
		{"stdout", TracingConfig{Enabled: true, Exporter: "stdout", SampleRate: 0.5}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTracing(tt.tracing)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestValidate_StopsAtFirstError(t *testing.T) {
	cfg := Defaults()
	cfg.UI.ToastSeconds = -2
	cfg.Tracing.Exporter = "bogus"

	err := Validate(cfg)
	require.ErrorContains(t, err, "ui.toast_seconds")
}

func TestDefaultTracesFilePath(t *testing.T) {
	path := DefaultTracesFilePath()
	if path == "" {
		t.Skip("no home directory")
	}
	require.True(t, strings.HasSuffix(path, filepath.Join("enrol", "traces", "traces.jsonl")))
}

func TestWriteDefaultConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "nested", "config.yaml")

	require.NoError(t, WriteDefaultConfig(configPath))

	info, err := os.Stat(configPath)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestDefaultConfigTemplate_MatchesDefaults(t *testing.T) {
	v := viper.New()
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(strings.NewReader(DefaultConfigTemplate())))

	var cfg Config
	require.NoError(t, v.Unmarshal(&cfg))

	want := Defaults()
	require.Equal(t, want.UI, cfg.UI)
	require.Equal(t, want.Theme, cfg.Theme)
	require.Equal(t, want.Tracing, cfg.Tracing)
}
