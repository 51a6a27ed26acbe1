package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/enrol/internal/config"
)

// isolate runs the test in an empty directory with an empty home.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Chdir(dir)
	return dir
}

func TestLoadConfig_ExplicitPath(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("ui:\n  confirm_delete: false\n  toast_seconds: 7\ntheme:\n  error: \"#FF0000\"\n"), 0o600))

	cfg, used, err := loadConfig(path)

	require.NoError(t, err)
	require.Equal(t, path, used)
	require.False(t, cfg.UI.ConfirmDelete)
	require.Equal(t, 7, cfg.UI.ToastSeconds)
	require.Equal(t, "#FF0000", cfg.Theme.Error)
	require.Equal(t, "file", cfg.Tracing.Exporter, "unset keys keep defaults")
}

func TestLoadConfig_MissingExplicitPath(t *testing.T) {
	dir := isolate(t)

	_, _, err := loadConfig(filepath.Join(dir, "nope.yaml"))

	require.ErrorContains(t, err, "reading config")
}

func TestLoadConfig_WritesDefaultWhenNoneFound(t *testing.T) {
	dir := isolate(t)

	cfg, used, err := loadConfig("")

	require.NoError(t, err)
	require.Equal(t, localConfigPath, used)
	require.FileExists(t, filepath.Join(dir, localConfigPath))
	require.Equal(t, config.Defaults().UI, cfg.UI)
	require.Equal(t, config.Defaults().Tracing, cfg.Tracing)
}

func TestLoadConfig_PrefersLocalOverUser(t *testing.T) {
	dir := isolate(t)
	user := filepath.Join(dir, ".config", "enrol", "config.yaml")
	require.NoError(t, os.MkdirAll(filepath.Dir(user), 0o750))
	require.NoError(t, os.WriteFile(user, []byte("ui:\n  toast_seconds: 9\n"), 0o600))

	_, used, err := loadConfig("")
	require.NoError(t, err)
	require.Equal(t, user, used)

	require.NoError(t, os.MkdirAll(".enrol", 0o750))
	require.NoError(t, os.WriteFile(localConfigPath, []byte("ui:\n  toast_seconds: 4\n"), 0o600))

	cfg, used, err := loadConfig("")
	require.NoError(t, err)
	require.Equal(t, localConfigPath, used)
	require.Equal(t, 4, cfg.UI.ToastSeconds)
}

func TestLoadConfig_InvalidValuesFailValidation(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tracing:\n  exporter: carrier-pigeon\n"), 0o600))

	cfg, _, err := loadConfig(path)
	require.NoError(t, err)

	require.Error(t, config.Validate(cfg))
}

func TestDebugEnabled(t *testing.T) {
	debugFlag = false
	t.Setenv(debugEnv, "")
	require.False(t, debugEnabled())

	t.Setenv(debugEnv, "1")
	require.True(t, debugEnabled())

	t.Setenv(debugEnv, "")
	debugFlag = true
	t.Cleanup(func() { debugFlag = false })
	require.True(t, debugEnabled())
}

func TestFlags(t *testing.T) {
	for _, name := range []string{"debug", "log-file", "trace"} {
		require.NotNil(t, rootCmd.Flags().Lookup(name), name)
	}
	require.NotNil(t, rootCmd.PersistentFlags().ShorthandLookup("c"))
	require.NotNil(t, rootCmd.Flags().ShorthandLookup("d"))
	require.Equal(t, defaultLogFile, rootCmd.Flags().Lookup("log-file").DefValue)
}

func TestSetVersion(t *testing.T) {
	old := rootCmd.Version
	t.Cleanup(func() { SetVersion(old) })

	SetVersion("1.2.3")

	require.Equal(t, "1.2.3", rootCmd.Version)
}

func TestWatchConfig(t *testing.T) {
	dir := isolate(t)

	require.Nil(t, watchConfig(""))
	require.Nil(t, watchConfig(filepath.Join(dir, "missing", "config.yaml")))

	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, config.WriteDefaultConfig(path))
	w := watchConfig(path)
	require.NotNil(t, w)
	require.NoError(t, w.Stop())
}
