package model

import "time"

// Duration bounds accepted from user settings.
const (
	MinMinutes = 1
	MaxMinutes = 60
)

// MaxDurationSeconds is the longest timer the engine accepts.
const MaxDurationSeconds = 24 * 60 * 60

// Durations holds the configured length of each timer category.
type Durations struct {
	Focus      time.Duration
	ShortBreak time.Duration
	LongBreak  time.Duration
}

// DefaultDurations returns the classic 25/5/15 minute pomodoro split.
func DefaultDurations() Durations {
	return Durations{
		Focus:      25 * time.Minute,
		ShortBreak: 5 * time.Minute,
		LongBreak:  15 * time.Minute,
	}
}

// For returns the configured duration of a category, or zero if the
// category is not startable.
func (durations Durations) For(category Category) time.Duration {
	switch category {
	case CategoryFocus:
		return durations.Focus
	case CategoryShortBreak:
		return durations.ShortBreak
	case CategoryLongBreak:
		return durations.LongBreak
	default:
		return 0
	}
}

// Seconds returns For(category) in whole seconds.
func (durations Durations) Seconds(category Category) int {
	return int(durations.For(category) / time.Second)
}

// Normalize rounds every duration to whole minutes and clamps it to
// [MinMinutes, MaxMinutes]. Zero or negative values fall back to defaults.
func (durations Durations) Normalize() Durations {
	defaults := DefaultDurations()
	return Durations{
		Focus:      clampMinutes(durations.Focus, defaults.Focus),
		ShortBreak: clampMinutes(durations.ShortBreak, defaults.ShortBreak),
		LongBreak:  clampMinutes(durations.LongBreak, defaults.LongBreak),
	}
}

func clampMinutes(value, fallback time.Duration) time.Duration {
	if value <= 0 {
		return fallback
	}
	minutes := int(value.Round(time.Minute) / time.Minute)
	if minutes < MinMinutes {
		minutes = MinMinutes
	}
	if minutes > MaxMinutes {
		minutes = MaxMinutes
	}
	return time.Duration(minutes) * time.Minute
}
