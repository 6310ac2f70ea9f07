package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pomodoro/internal/ui/preferences"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	settings, err := LoadSettings(filepath.Join(t.TempDir(), "absent.yaml"))

	require.NoError(t, err)
	assert.Equal(t, preferences.DefaultSettings(), settings)
}

func TestSaveThenLoad(t *testing.T) {
	path := SettingsPath(filepath.Join(t.TempDir(), "pomodoro"))
	settings := preferences.DefaultSettings()
	settings.Durations.Focus = 50 * time.Minute
	settings.Durations.ShortBreak = 10 * time.Minute
	settings.LaunchAtLogin = true
	settings.IdlePause = 3 * time.Minute

	require.NoError(t, SaveSettings(path, settings))
	loaded, err := LoadSettings(path)

	require.NoError(t, err)
	assert.Equal(t, settings, loaded)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file left behind")
}

func TestLoadClampsAndFillsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	content := "focus_minutes: 90\nshort_break_minutes: 0\nlong_break_minutes: 20\nidle_pause_minutes: 500\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	settings, err := LoadSettings(path)

	require.NoError(t, err)
	assert.Equal(t, 60*time.Minute, settings.Durations.Focus)
	assert.Equal(t, 5*time.Minute, settings.Durations.ShortBreak)
	assert.Equal(t, 20*time.Minute, settings.Durations.LongBreak)
	assert.Equal(t, preferences.MaxIdlePauseMinutes*time.Minute, settings.IdlePause)
	assert.False(t, settings.LaunchAtLogin)
}

func TestLoadRejectsMalformedYaml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("focus_minutes: [1, 2\n"), 0o644))

	settings, err := LoadSettings(path)

	assert.ErrorContains(t, err, "parse settings yaml")
	assert.Equal(t, preferences.DefaultSettings(), settings)
}

func TestSaveWritesReadableKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, SaveSettings(path, preferences.DefaultSettings()))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "focus_minutes: 25")
	assert.Contains(t, string(content), "short_break_minutes: 5")
	assert.Contains(t, string(content), "long_break_minutes: 15")
	assert.Contains(t, string(content), "launch_at_login: false")
}
