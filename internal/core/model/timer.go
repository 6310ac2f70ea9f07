package model

import (
	"fmt"
	"strings"
)

// Category describes what a timer is counting down for.
type Category uint8

const (
	CategoryNone Category = iota
	CategoryFocus
	CategoryShortBreak
	CategoryLongBreak
)

// Categories lists the categories a timer can be started with.
var Categories = []Category{CategoryFocus, CategoryShortBreak, CategoryLongBreak}

// String returns the category name used in settings, commands and logs.
func (category Category) String() string {
	switch category {
	case CategoryFocus:
		return "focus"
	case CategoryShortBreak:
		return "short_break"
	case CategoryLongBreak:
		return "long_break"
	case CategoryNone:
		return "none"
	default:
		return "unknown"
	}
}

// Title returns a human-readable label.
func (category Category) Title() string {
	switch category {
	case CategoryFocus:
		return "Focus"
	case CategoryShortBreak:
		return "Short break"
	case CategoryLongBreak:
		return "Long break"
	default:
		return "Timer"
	}
}

// Valid reports whether a timer can be started with this category.
func (category Category) Valid() bool {
	return category >= CategoryFocus && category <= CategoryLongBreak
}

// ParseCategory accepts the names produced by String, case-insensitively.
// Dashes are treated as underscores so "short-break" works from a shell.
func ParseCategory(value string) (Category, error) {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(value)), "-", "_")
	for _, category := range Categories {
		if category.String() == normalized {
			return category, nil
		}
	}
	return CategoryNone, fmt.Errorf("%w: %q", ErrInvalidCategory, value)
}

// Phase is the lifecycle position of the active timer.
type Phase uint8

const (
	PhaseIdle Phase = iota
	PhaseRunning
	PhasePaused
	PhaseCompleted
)

// String returns a readable phase name.
func (phase Phase) String() string {
	switch phase {
	case PhaseIdle:
		return "idle"
	case PhaseRunning:
		return "running"
	case PhasePaused:
		return "paused"
	case PhaseCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// Snapshot is the externally visible state of the single active timer.
type Snapshot struct {
	RemainingSeconds int
	TotalSeconds     int
	Phase            Phase
	Category         Category
}

// IdleSnapshot returns the state published when no timer is active.
func IdleSnapshot() Snapshot {
	return Snapshot{Phase: PhaseIdle}
}

// Active reports whether a timer exists, running or not.
func (snapshot Snapshot) Active() bool {
	return snapshot.Phase != PhaseIdle
}

// Validate checks the snapshot invariants. A non-nil error is a defect in
// whatever produced the snapshot.
func (snapshot Snapshot) Validate() error {
	if snapshot.RemainingSeconds < 0 {
		return fmt.Errorf("%w: remaining %d is negative", ErrInvalidSnapshot, snapshot.RemainingSeconds)
	}
	if snapshot.RemainingSeconds > snapshot.TotalSeconds {
		return fmt.Errorf("%w: remaining %d exceeds total %d", ErrInvalidSnapshot, snapshot.RemainingSeconds, snapshot.TotalSeconds)
	}

	switch snapshot.Phase {
	case PhaseIdle:
		if snapshot.RemainingSeconds != 0 || snapshot.TotalSeconds != 0 {
			return fmt.Errorf("%w: idle snapshot carries %d/%d seconds", ErrInvalidSnapshot, snapshot.RemainingSeconds, snapshot.TotalSeconds)
		}
	case PhaseCompleted:
		if snapshot.RemainingSeconds != 0 {
			return fmt.Errorf("%w: completed with %d seconds remaining", ErrInvalidSnapshot, snapshot.RemainingSeconds)
		}
		fallthrough
	case PhaseRunning, PhasePaused:
		if snapshot.TotalSeconds <= 0 {
			return fmt.Errorf("%w: %s timer without a total", ErrInvalidSnapshot, snapshot.Phase)
		}
		if !snapshot.Category.Valid() {
			return fmt.Errorf("%w: %s timer with category %s", ErrInvalidSnapshot, snapshot.Phase, snapshot.Category)
		}
	default:
		return fmt.Errorf("%w: unknown phase %d", ErrInvalidSnapshot, snapshot.Phase)
	}
	return nil
}

// Progress returns the elapsed fraction of the timer in [0, 1].
func (snapshot Snapshot) Progress() float64 {
	if snapshot.TotalSeconds <= 0 {
		return 0
	}
	progress := float64(snapshot.TotalSeconds-snapshot.RemainingSeconds) / float64(snapshot.TotalSeconds)
	if progress < 0 {
		return 0
	}
	if progress > 1 {
		return 1
	}
	return progress
}

// Clock formats the remaining time as MM:SS.
func (snapshot Snapshot) Clock() string {
	return FormatSeconds(snapshot.RemainingSeconds)
}

// FormatSeconds renders seconds as MM:SS. Minutes are not wrapped into hours.
func FormatSeconds(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
