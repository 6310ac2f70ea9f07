package trace

import (
	"time"

	"pomodoro/internal/core/model"
)

// Event is one recorded engine transition.
type Event struct {
	Timestamp time.Time      `cbor:"1,keyasint"`
	RunID     string         `cbor:"2,keyasint,omitempty"`
	Op        Op             `cbor:"3,keyasint"`
	Source    Source         `cbor:"4,keyasint"`
	Phase     model.Phase    `cbor:"5,keyasint"`
	Category  model.Category `cbor:"6,keyasint"`
	Remaining int            `cbor:"7,keyasint"`
	Total     int            `cbor:"8,keyasint"`
}

// Op names the transition that produced an Event.
type Op uint8

const (
	OpStart Op = iota
	OpPause
	OpResume
	OpReset
	OpStop
	OpComplete
	OpWakeAbsorbed
	OpWakeRearmed
)

// String returns the op name.
func (op Op) String() string {
	switch op {
	case OpStart:
		return "START"
	case OpPause:
		return "PAUSE"
	case OpResume:
		return "RESUME"
	case OpReset:
		return "RESET"
	case OpStop:
		return "STOP"
	case OpComplete:
		return "COMPLETE"
	case OpWakeAbsorbed:
		return "WAKE_ABSORBED"
	case OpWakeRearmed:
		return "WAKE_REARMED"
	default:
		return "UNKNOWN"
	}
}

// Source identifies which path triggered the transition.
type Source uint8

const (
	SourceCommand Source = iota
	SourceTick
	SourceWake
)

// String returns the source name.
func (source Source) String() string {
	switch source {
	case SourceCommand:
		return "COMMAND"
	case SourceTick:
		return "TICK"
	case SourceWake:
		return "WAKE"
	default:
		return "UNKNOWN"
	}
}
