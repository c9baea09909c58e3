package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cristianoliveira/displaygen/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupSettingsTest(t *testing.T) string {
	t.Helper()

	tmpDir := t.TempDir()
	t.Setenv("DISPLAYGEN_CONFIG_PATH", filepath.Join(tmpDir, "none.toml"))
	t.Setenv("DISPLAYGEN_STATE_DIR", filepath.Join(tmpDir, "state"))
	config.Load()

	return filepath.Join(tmpDir, "state")
}

func TestLoadMissingSession(t *testing.T) {
	setupSettingsTest(t)

	s, err := Load()
	require.NoError(t, err)
	assert.True(t, s.IsEmpty())
}

func TestSaveAndLoad(t *testing.T) {
	stateDir := setupSettingsTest(t)

	want := Session{Template: "Hi {} {name:>8}", Values: "Ana name=Bo", Order: "discovered", Truncate: true}
	require.NoError(t, Save(want))
	assert.FileExists(t, filepath.Join(stateDir, "play.toml"))

	got, err := Load()
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.False(t, got.IsEmpty())
}

func TestPathOverride(t *testing.T) {
	tmpDir := setupSettingsTest(t)
	override := filepath.Join(tmpDir, "custom", "session.toml")
	t.Setenv("DISPLAYGEN_PLAY_SESSION_PATH", override)
	config.Load()

	assert.Equal(t, override, Path())
	require.NoError(t, Save(Session{Template: "{}"}))
	assert.FileExists(t, override)
}

func TestInvalidSession(t *testing.T) {
	stateDir := setupSettingsTest(t)

	err := Save(Session{Template: "{}", Order: "random"})
	require.ErrorContains(t, err, "invalid order value")

	require.NoError(t, os.MkdirAll(stateDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(stateDir, "play.toml"), []byte("order = \"random\"\n"), 0644))
	_, err = Load()
	require.ErrorContains(t, err, "invalid session")

	require.NoError(t, os.WriteFile(filepath.Join(stateDir, "play.toml"), []byte("template = [\n"), 0644))
	_, err = Load()
	require.ErrorContains(t, err, "failed to parse")
}
