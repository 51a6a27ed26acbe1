// Package cmd wires the command line, configuration and the TUI together.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/enrol/internal/app"
	"github.com/zjrosen/enrol/internal/config"
	"github.com/zjrosen/enrol/internal/log"
	"github.com/zjrosen/enrol/internal/registry"
	"github.com/zjrosen/enrol/internal/tracing"
	"github.com/zjrosen/enrol/internal/ui/styles"
	"github.com/zjrosen/enrol/internal/watcher"
)

func init() {
	// Query the background color before the program owns stdin, otherwise
	// the OSC 11 reply can land in a text input.
	_ = lipgloss.HasDarkBackground()
}

const (
	localConfigPath = ".enrol/config.yaml"
	debugEnv        = "ENROL_DEBUG"
	defaultLogFile  = "debug.log"
	shutdownTimeout = 5 * time.Second
)

var (
	version   = "dev"
	cfgFile   string
	debugFlag bool
	logFile   string
	traceFlag bool
)

var rootCmd = &cobra.Command{
	Use:   "enrol",
	Short: "A terminal user registration form",
	Long: `A terminal form for registering users. Entries are validated as you go,
listed in a table, and can be removed after confirmation. Nothing is
persisted: the list lives for the length of the session.`,
	Version:      version,
	SilenceUsage: true,
	RunE:         runApp,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ./.enrol/config.yaml or ~/.config/enrol/config.yaml)")
	rootCmd.Flags().BoolVarP(&debugFlag, "debug", "d", false,
		"write debug logs and enable the log overlay (ctrl+x); also "+debugEnv+"=1")
	rootCmd.Flags().StringVar(&logFile, "log-file", defaultLogFile,
		"debug log destination")
	rootCmd.Flags().BoolVar(&traceFlag, "trace", false,
		"enable tracing regardless of tracing.enabled")
}

// loadConfig reads configuration into a fresh viper instance. An explicit
// path must exist. Without one, the local then the user config is used, and
// a default file is written when neither exists. It returns the config and
// the file it came from ("" when running on defaults alone).
func loadConfig(explicit string) (config.Config, string, error) {
	v := viper.New()
	setDefaults(v)

	path := explicit
	if path == "" {
		path = findConfig()
	}

	if path == "" {
		path = localConfigPath
		if err := config.WriteDefaultConfig(path); err != nil {
			log.Warn(log.CatConfig, "running without a config file", "error", err)
			path = ""
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return config.Config{}, "", fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	var cfg config.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return config.Config{}, "", fmt.Errorf("decoding config: %w", err)
	}
	return cfg, path, nil
}

func setDefaults(v *viper.Viper) {
	d := config.Defaults()
	v.SetDefault("ui.show_help", d.UI.ShowHelp)
	v.SetDefault("ui.confirm_delete", d.UI.ConfirmDelete)
	v.SetDefault("ui.toast_seconds", d.UI.ToastSeconds)
	v.SetDefault("tracing.enabled", d.Tracing.Enabled)
	v.SetDefault("tracing.exporter", d.Tracing.Exporter)
	v.SetDefault("tracing.file_path", d.Tracing.FilePath)
	v.SetDefault("tracing.otlp_endpoint", d.Tracing.OTLPEndpoint)
	v.SetDefault("tracing.sample_rate", d.Tracing.SampleRate)
	v.SetDefault("tracing.service_name", d.Tracing.ServiceName)
}

// findConfig returns the first existing config file in lookup order:
// ./.enrol/config.yaml, then ~/.config/enrol/config.yaml.
func findConfig() string {
	candidates := []string{localConfigPath}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".config", "enrol", "config.yaml"))
	}
	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return c
		}
	}
	return ""
}

func debugEnabled() bool {
	return debugFlag || os.Getenv(debugEnv) != ""
}

func runApp(_ *cobra.Command, _ []string) error {
	debug := debugEnabled()
	if debug {
		cleanup, err := log.Init(logFile)
		if err != nil {
			return err
		}
		defer cleanup()
		log.Info(log.CatApp, "enrol starting", "version", version, "log", logFile)
	}

	cfg, cfgPath, err := loadConfig(cfgFile)
	if err != nil {
		return err
	}
	if traceFlag {
		cfg.Tracing.Enabled = true
	}
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	styles.ApplyTheme(cfg.Theme.Muted, cfg.Theme.Error, cfg.Theme.Success)

	provider, err := tracing.NewProvider(cfg.Tracing)
	if err != nil {
		return fmt.Errorf("starting tracing: %w", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := provider.Shutdown(ctx); err != nil {
			log.ErrorErr(log.CatTrace, "tracing shutdown failed", err)
		}
	}()

	zone.NewGlobal()
	defer zone.Close()

	reg := registry.New()
	defer reg.Close()

	opts := app.Options{
		Config:     cfg,
		ConfigPath: cfgPath,
		Registry:   reg,
		Tracer:     provider.Tracer(),
		Debug:      debug,
	}
	if w := watchConfig(cfgPath); w != nil {
		defer func() { _ = w.Stop() }()
		opts.ConfigChanges = w.Broker()
		opts.Reload = func() (config.Config, error) {
			cfg, _, err := loadConfig(cfgPath)
			return cfg, err
		}
	}

	model := app.New(opts)
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err = p.Run()
	err = errors.Join(err, model.Close())
	if err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	log.Info(log.CatApp, "enrol exiting", "registered", reg.Len())
	return nil
}

// watchConfig starts a watcher on path. Live reload is optional, so
// failures are logged and yield nil.
func watchConfig(path string) *watcher.Watcher {
	if path == "" {
		return nil
	}
	w, err := watcher.New(watcher.DefaultConfig(path))
	if err != nil {
		log.Warn(log.CatConfig, "config reload disabled", "error", err)
		return nil
	}
	if err := w.Start(); err != nil {
		_ = w.Stop()
		log.Warn(log.CatConfig, "config reload disabled", "error", err)
		return nil
	}
	return w
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags).
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
