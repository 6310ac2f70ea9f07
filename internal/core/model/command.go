package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Command is a request from a host shell to the timer engine. The set of
// implementations is closed: Start, Pause, Resume, Reset and Stop.
type Command interface {
	Name() string
	command()
}

// Start begins a new timer, replacing any active one.
type Start struct {
	DurationSeconds int
	Category        Category
}

// Pause freezes a running timer.
type Pause struct{}

// Resume continues a paused timer.
type Resume struct{}

// Reset restarts the current timer from its full duration.
type Reset struct{}

// Stop discards the current timer.
type Stop struct{}

func (Start) Name() string  { return "start" }
func (Pause) Name() string  { return "pause" }
func (Resume) Name() string { return "resume" }
func (Reset) Name() string  { return "reset" }
func (Stop) Name() string   { return "stop" }

func (Start) command()  {}
func (Pause) command()  {}
func (Resume) command() {}
func (Reset) command()  {}
func (Stop) command()   {}

// Validate checks the duration and category of a start request.
func (start Start) Validate() error {
	if start.DurationSeconds <= 0 {
		return fmt.Errorf("%w: %d seconds", ErrInvalidDuration, start.DurationSeconds)
	}
	if start.DurationSeconds > MaxDurationSeconds {
		return fmt.Errorf("%w: %d seconds exceeds %d", ErrInvalidDuration, start.DurationSeconds, MaxDurationSeconds)
	}
	if !start.Category.Valid() {
		return fmt.Errorf("%w: %s", ErrInvalidCategory, start.Category)
	}
	return nil
}

// StartFor builds a start request using the configured duration of category.
func StartFor(category Category, durations Durations) Start {
	return Start{
		DurationSeconds: durations.Seconds(category),
		Category:        category,
	}
}

// ParseCommand turns textual host input into a validated Command.
//
//	start <category> [seconds]
//	pause | resume | reset | stop
//
// A start without seconds uses DefaultDurations.
func ParseCommand(action string, args ...string) (Command, error) {
	return ParseCommandWith(DefaultDurations(), action, args...)
}

// ParseCommandWith is ParseCommand with the durations used by a start that
// names no seconds.
func ParseCommandWith(durations Durations, action string, args ...string) (Command, error) {
	switch strings.ToLower(strings.TrimSpace(action)) {
	case "start":
		return parseStart(durations, args)
	case "pause":
		return Pause{}, nil
	case "resume":
		return Resume{}, nil
	case "reset":
		return Reset{}, nil
	case "stop":
		return Stop{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCommand, action)
	}
}

func parseStart(durations Durations, args []string) (Command, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("%w: start needs a category", ErrInvalidCategory)
	}
	category, err := ParseCategory(args[0])
	if err != nil {
		return nil, err
	}

	start := StartFor(category, durations)
	if len(args) > 1 {
		seconds, err := strconv.Atoi(strings.TrimSpace(args[1]))
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidDuration, args[1])
		}
		start.DurationSeconds = seconds
	}

	if err := start.Validate(); err != nil {
		return nil, err
	}
	return start, nil
}
