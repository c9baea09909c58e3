package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(dir, "state"))
	t.Setenv(EnvConfigPath, "")
	return dir
}

func TestLoadAndGet(t *testing.T) {
	isolate(t)
	Load()

	got := Get("missing", "default")
	require.Equal(t, "default", got)
}

func TestDefaults(t *testing.T) {
	dir := isolate(t)
	Load()

	require.Equal(t, filepath.Join(dir, "config", "displaygen"), Get("config_dir", ""))
	require.Equal(t, filepath.Join(dir, "state", "displaygen"), Get("state_dir", ""))
	require.Equal(t, "display", Get("directive", ""))
	require.Equal(t, "String", Get("method_name", ""))
	require.Equal(t, "error", Get("unterminated", ""))
	require.Equal(t, "sorted", Get("field_order", ""))
	require.Equal(t, "sqlite", Get("storage_backend", ""))
	require.Equal(t, 20, GetInt("history_limit", 0))
	require.False(t, GetBool("logging_enabled", true))
}

func TestLoadingPrecedence(t *testing.T) {
	dir := isolate(t)
	configFile := filepath.Join(dir, "custom.toml")
	content := `
history_limit = 50
field_order = "discovered"
method_name = "Describe"
debug = true
`
	require.NoError(t, os.WriteFile(configFile, []byte(content), 0o644))

	t.Setenv(EnvConfigPath, configFile)
	t.Setenv("DISPLAYGEN_HISTORY_LIMIT", "7")
	Load()

	require.Equal(t, "7", Get("history_limit", ""), "environment should override config file")
	require.Equal(t, "discovered", Get("field_order", ""))
	require.Equal(t, "Describe", Get("method_name", ""))
	require.True(t, GetBool("debug", false))
}

func TestDefaultConfigFileLocation(t *testing.T) {
	dir := isolate(t)
	configDir := filepath.Join(dir, "config", "displaygen")
	require.NoError(t, os.MkdirAll(configDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "config.toml"), []byte(`unterminated = "truncate"`), 0o644))

	Load()
	require.Equal(t, "truncate", Get("unterminated", ""))
	require.Equal(t, filepath.Join(configDir, "config.toml"), Path())
}

func TestInvalidValuesFallBackToDefaults(t *testing.T) {
	isolate(t)
	t.Setenv("DISPLAYGEN_HISTORY_LIMIT", "-3")
	t.Setenv("DISPLAYGEN_FIELD_ORDER", "random")
	t.Setenv("DISPLAYGEN_STORAGE_BACKEND", "NONE")
	t.Setenv("DISPLAYGEN_METHOD_NAME", "9lives")
	t.Setenv("DISPLAYGEN_DEBUG", "yes")
	Load()

	require.Equal(t, "20", Get("history_limit", ""))
	require.Equal(t, "sorted", Get("field_order", ""))
	require.Equal(t, "none", Get("storage_backend", ""))
	require.Equal(t, "String", Get("method_name", ""))
	require.Equal(t, "true", Get("debug", ""))
}

func TestMalformedConfigFileIsIgnored(t *testing.T) {
	dir := isolate(t)
	configFile := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(configFile, []byte("history_limit = = 3"), 0o644))
	t.Setenv(EnvConfigPath, configFile)

	Load()
	require.Equal(t, "20", Get("history_limit", ""))
}

func TestSetOverridesValue(t *testing.T) {
	isolate(t)
	Load()
	Set("directive", "fmt")
	require.Equal(t, "fmt", Get("directive", ""))
}

func TestSnapshotIsSorted(t *testing.T) {
	isolate(t)
	Load()
	snap := Snapshot()
	require.NotEmpty(t, snap)
	for i := 1; i < len(snap); i++ {
		require.Less(t, snap[i-1][0], snap[i][0])
	}
}

func TestWriteSampleConfig(t *testing.T) {
	isolate(t)
	Load()

	path, written, err := WriteSampleConfig()
	require.NoError(t, err)
	require.True(t, written)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "# displaygen configuration")
	require.Contains(t, string(data), "history_limit = 20")

	_, written, err = WriteSampleConfig()
	require.NoError(t, err)
	require.False(t, written, "existing file must not be overwritten")

	Load()
	require.Equal(t, "20", Get("history_limit", ""))
}
