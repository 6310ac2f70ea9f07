//go:build linux

package platform

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"golang.org/x/sys/unix"

	"pomodoro/internal/core/clock"
	"pomodoro/internal/core/engine"
)

// TimerfdScheduler arms one timerfd per wake on CLOCK_BOOTTIME_ALARM, which
// also wakes a suspended machine. Without CAP_WAKE_ALARM it uses
// CLOCK_BOOTTIME: the wake then fires on the next resume past the deadline.
type TimerfdScheduler struct {
	clock   clock.Clock
	clockID int
	logger  *slog.Logger

	mu      sync.Mutex
	next    engine.WakeHandle
	pending map[engine.WakeHandle]*os.File
}

// NewWakeScheduler returns the best wake scheduler the host supports.
func NewWakeScheduler(clk clock.Clock, logger *slog.Logger) engine.WakeScheduler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	scheduler, err := NewTimerfdScheduler(clk, logger)
	if err != nil {
		logger.Warn("timerfd unavailable, using runtime timers for wakes", "error", err)
		return NewTimerScheduler(clk, logger)
	}
	return scheduler
}

// NewTimerfdScheduler probes the alarm clock and falls back to the plain
// boot clock when the process lacks permission.
func NewTimerfdScheduler(clk clock.Clock, logger *slog.Logger) (*TimerfdScheduler, error) {
	clockID, err := probeTimerfdClock()
	if err != nil {
		return nil, err
	}
	if clockID != unix.CLOCK_BOOTTIME_ALARM {
		logger.Info("wake alarms need CAP_WAKE_ALARM, wakes will not resume a suspended machine")
	}
	return &TimerfdScheduler{
		clock:   clk,
		clockID: clockID,
		logger:  logger,
		pending: make(map[engine.WakeHandle]*os.File),
	}, nil
}

func probeTimerfdClock() (int, error) {
	var errs []error
	for _, clockID := range []int{unix.CLOCK_BOOTTIME_ALARM, unix.CLOCK_BOOTTIME} {
		fd, err := unix.TimerfdCreate(clockID, unix.TFD_CLOEXEC)
		if err != nil {
			errs = append(errs, fmt.Errorf("timerfd clock %d: %w", clockID, err))
			continue
		}
		_ = unix.Close(fd)
		return clockID, nil
	}
	return 0, errors.Join(errs...)
}

// ScheduleAt arms a relative timerfd for the time left until at.
func (scheduler *TimerfdScheduler) ScheduleAt(at clock.Instant, fire func()) (engine.WakeHandle, error) {
	delay := at.Sub(scheduler.clock.Now())
	if delay <= 0 {
		// A zero it_value disarms the timer.
		delay = time.Nanosecond
	}

	fd, err := unix.TimerfdCreate(scheduler.clockID, unix.TFD_CLOEXEC|unix.TFD_NONBLOCK)
	if err != nil {
		return 0, fmt.Errorf("timerfd create: %w", err)
	}
	spec := unix.ItimerSpec{Value: unix.NsecToTimespec(delay.Nanoseconds())}
	if err := unix.TimerfdSettime(fd, 0, &spec, nil); err != nil {
		_ = unix.Close(fd)
		return 0, fmt.Errorf("timerfd settime: %w", err)
	}
	file := os.NewFile(uintptr(fd), "wake-timerfd")

	scheduler.mu.Lock()
	scheduler.next++
	handle := scheduler.next
	scheduler.pending[handle] = file
	scheduler.mu.Unlock()

	go scheduler.wait(handle, file, fire)
	return handle, nil
}

// Cancel closes the timerfd, which unblocks and ends its waiter.
func (scheduler *TimerfdScheduler) Cancel(handle engine.WakeHandle) error {
	scheduler.mu.Lock()
	file, ok := scheduler.pending[handle]
	delete(scheduler.pending, handle)
	scheduler.mu.Unlock()

	if !ok {
		return nil
	}
	if err := file.Close(); err != nil && !errors.Is(err, os.ErrClosed) {
		return fmt.Errorf("close timerfd: %w", err)
	}
	return nil
}

// Pending returns the number of armed wakes.
func (scheduler *TimerfdScheduler) Pending() int {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	return len(scheduler.pending)
}

func (scheduler *TimerfdScheduler) wait(handle engine.WakeHandle, file *os.File, fire func()) {
	expirations := make([]byte, 8)
	_, err := file.Read(expirations)

	scheduler.mu.Lock()
	_, live := scheduler.pending[handle]
	delete(scheduler.pending, handle)
	scheduler.mu.Unlock()

	if !live {
		return
	}
	_ = file.Close()
	if err != nil {
		scheduler.logger.Warn("timerfd read failed", "handle", handle, "error", err)
		return
	}
	fire()
}

var _ engine.WakeScheduler = (*TimerfdScheduler)(nil)
