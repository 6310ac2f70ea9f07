package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"pomodoro/internal/ui/preferences"
)

const settingsFileName = "settings.yaml"

type yamlSettings struct {
	FocusMinutes      int  `yaml:"focus_minutes"`
	ShortBreakMinutes int  `yaml:"short_break_minutes"`
	LongBreakMinutes  int  `yaml:"long_break_minutes"`
	LaunchAtLogin     bool `yaml:"launch_at_login"`
	IdlePauseMinutes  int  `yaml:"idle_pause_minutes"`
}

// SettingsPath returns the settings file inside an application config dir.
func SettingsPath(appConfigDir string) string {
	return filepath.Join(appConfigDir, settingsFileName)
}

// LoadSettings reads user preferences from YAML.
// If the config file does not exist, default settings are returned.
// Values outside the accepted ranges are clamped.
func LoadSettings(path string) (preferences.Settings, error) {
	settings := preferences.DefaultSettings()

	rawData, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings yaml: %w", err)
	}

	applyYamlSettings(&settings, fileData)
	return settings.Normalize(), nil
}

// SaveSettings writes user preferences to YAML, replacing the file
// atomically.
func SaveSettings(path string, settings preferences.Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	settings = settings.Normalize()
	fileData := yamlSettings{
		FocusMinutes:      minutes(settings.Durations.Focus),
		ShortBreakMinutes: minutes(settings.Durations.ShortBreak),
		LongBreakMinutes:  minutes(settings.Durations.LongBreak),
		LaunchAtLogin:     settings.LaunchAtLogin,
		IdlePauseMinutes:  minutes(settings.IdlePause),
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(path), settingsFileName+".*")
	if err != nil {
		return fmt.Errorf("create temp settings file: %w", err)
	}
	tempPath := tempFile.Name()
	if _, err := tempFile.Write(serialized); err != nil {
		_ = tempFile.Close()
		_ = os.Remove(tempPath)
		return fmt.Errorf("write settings file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("write settings file: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("replace settings file: %w", err)
	}

	return nil
}

func applyYamlSettings(settings *preferences.Settings, fileData yamlSettings) {
	if fileData.FocusMinutes > 0 {
		settings.Durations.Focus = time.Duration(fileData.FocusMinutes) * time.Minute
	}
	if fileData.ShortBreakMinutes > 0 {
		settings.Durations.ShortBreak = time.Duration(fileData.ShortBreakMinutes) * time.Minute
	}
	if fileData.LongBreakMinutes > 0 {
		settings.Durations.LongBreak = time.Duration(fileData.LongBreakMinutes) * time.Minute
	}
	if fileData.IdlePauseMinutes > 0 {
		settings.IdlePause = time.Duration(fileData.IdlePauseMinutes) * time.Minute
	}

	settings.LaunchAtLogin = fileData.LaunchAtLogin
}

func minutes(value time.Duration) int {
	return int(value / time.Minute)
}

