package preferences

import (
	"time"

	"pomodoro/internal/core/model"
)

// MaxIdlePauseMinutes bounds the inactivity threshold.
const MaxIdlePauseMinutes = 120

// Settings defines editable user preferences.
type Settings struct {
	Durations     model.Durations
	LaunchAtLogin bool

	// IdlePause pauses a running focus timer after this much inactivity.
	// Zero disables it.
	IdlePause time.Duration
}

// DefaultSettings returns the 25/5/15 minute split with auto-pause off.
func DefaultSettings() Settings {
	return Settings{
		Durations: model.DefaultDurations(),
	}
}

// Normalize clamps every field into its accepted range.
func (settings Settings) Normalize() Settings {
	settings.Durations = settings.Durations.Normalize()
	if settings.IdlePause < 0 {
		settings.IdlePause = 0
	}
	if settings.IdlePause > MaxIdlePauseMinutes*time.Minute {
		settings.IdlePause = MaxIdlePauseMinutes * time.Minute
	}
	settings.IdlePause = settings.IdlePause.Round(time.Minute)
	return settings
}

// StartFor builds the start command for category using the configured
// durations.
func (settings Settings) StartFor(category model.Category) model.Start {
	return model.StartFor(category, settings.Durations)
}
