package engine

import (
	"errors"

	"pomodoro/internal/core/clock"
)

// ErrClosed is returned by commands issued after Close.
var ErrClosed = errors.New("timer engine closed")

// WakeHandle identifies a scheduled wake.
type WakeHandle uint64

// WakeScheduler programs one-shot callbacks that fire even if the process
// was not running ticks in between, e.g. because the machine was suspended.
type WakeScheduler interface {
	// ScheduleAt arranges for fire to run once at or after at. It must not
	// call fire before returning. Delivering fire again, or after Cancel,
	// is tolerated by the engine.
	ScheduleAt(at clock.Instant, fire func()) (WakeHandle, error)

	// Cancel drops a pending wake. Unknown or already fired handles are
	// not an error.
	Cancel(handle WakeHandle) error
}

// KeepAlive prevents the host from fully suspending the process.
// Both methods must be idempotent.
type KeepAlive interface {
	Acquire() error
	Release() error
}

// NoWake is a WakeScheduler that never fires. The engine then relies on
// its tick loop alone.
type NoWake struct{}

func (NoWake) ScheduleAt(clock.Instant, func()) (WakeHandle, error) { return 0, nil }
func (NoWake) Cancel(WakeHandle) error                              { return nil }

// NoKeepAlive is a KeepAlive that does nothing.
type NoKeepAlive struct{}

func (NoKeepAlive) Acquire() error { return nil }
func (NoKeepAlive) Release() error { return nil }

var (
	_ WakeScheduler = NoWake{}
	_ KeepAlive     = NoKeepAlive{}
)
