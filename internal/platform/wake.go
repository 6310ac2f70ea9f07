package platform

import (
	"log/slog"
	"sync"
	"time"

	"pomodoro/internal/core/clock"
	"pomodoro/internal/core/engine"
)

// TimerScheduler is a portable WakeScheduler built on runtime timers.
// Runtime timers may stop counting while the machine sleeps, so a wake can
// arrive late, never early: a timer that fires before the clock reaches the
// requested instant re-arms itself for the remainder.
type TimerScheduler struct {
	clock   clock.Clock
	logger  *slog.Logger
	mu      sync.Mutex
	next    engine.WakeHandle
	pending map[engine.WakeHandle]*time.Timer
}

// NewTimerScheduler returns a scheduler measuring instants with clk.
func NewTimerScheduler(clk clock.Clock, logger *slog.Logger) *TimerScheduler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &TimerScheduler{
		clock:   clk,
		logger:  logger,
		pending: make(map[engine.WakeHandle]*time.Timer),
	}
}

// ScheduleAt arms a runtime timer for at.
func (scheduler *TimerScheduler) ScheduleAt(at clock.Instant, fire func()) (engine.WakeHandle, error) {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()

	scheduler.next++
	handle := scheduler.next
	scheduler.armLocked(handle, at, fire)
	return handle, nil
}

// Cancel stops the timer behind handle.
func (scheduler *TimerScheduler) Cancel(handle engine.WakeHandle) error {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()

	if timer, ok := scheduler.pending[handle]; ok {
		timer.Stop()
		delete(scheduler.pending, handle)
	}
	return nil
}

// Pending returns the number of armed wakes.
func (scheduler *TimerScheduler) Pending() int {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	return len(scheduler.pending)
}

func (scheduler *TimerScheduler) armLocked(handle engine.WakeHandle, at clock.Instant, fire func()) {
	delay := at.Sub(scheduler.clock.Now())
	if delay < 0 {
		delay = 0
	}
	scheduler.pending[handle] = time.AfterFunc(delay, func() {
		scheduler.expire(handle, at, fire)
	})
}

func (scheduler *TimerScheduler) expire(handle engine.WakeHandle, at clock.Instant, fire func()) {
	scheduler.mu.Lock()
	if _, ok := scheduler.pending[handle]; !ok {
		scheduler.mu.Unlock()
		return
	}
	if now := scheduler.clock.Now(); now.Before(at) {
		scheduler.logger.Debug("wake timer fired early, re-arming", "handle", handle, "early_by", at.Sub(now))
		scheduler.armLocked(handle, at, fire)
		scheduler.mu.Unlock()
		return
	}
	delete(scheduler.pending, handle)
	scheduler.mu.Unlock()

	fire()
}

var _ engine.WakeScheduler = (*TimerScheduler)(nil)
